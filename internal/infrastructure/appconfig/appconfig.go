package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"task-launcher/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of an application registry file:
//
//	apps:
//	  - name: vscode
//	    executable: code
//	    process_names: [code]
type File struct {
	Apps []entity.AppEntry `yaml:"apps"`
}

// Load reads the registry file at path. An empty path or a missing file
// yields no entries.
func Load(path string) ([]entity.AppEntry, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read app registry file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) ([]entity.AppEntry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse app registry file: %w", err)
	}

	for i, app := range f.Apps {
		if app.Name == "" {
			return nil, fmt.Errorf("app #%d: name is required", i+1)
		}
		if app.Executable == "" {
			return nil, fmt.Errorf("app %q: executable is required", app.Name)
		}
	}
	return f.Apps, nil
}

// Upsert adds entry to the registry file at path, replacing an entry with
// the same name. The file is created when missing.
func Upsert(path string, entry entity.AppEntry) error {
	if strings.TrimSpace(entry.Name) == "" || strings.TrimSpace(entry.Executable) == "" {
		return fmt.Errorf("name and executable are required")
	}

	apps, err := Load(path)
	if err != nil {
		return err
	}

	replaced := false
	for i, app := range apps {
		if strings.EqualFold(app.Name, entry.Name) {
			apps[i] = entry
			replaced = true
		}
	}
	if !replaced {
		apps = append(apps, entry)
	}

	return Save(path, apps)
}

func Save(path string, apps []entity.AppEntry) error {
	data, err := yaml.Marshal(File{Apps: apps})
	if err != nil {
		return fmt.Errorf("encode app registry file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write app registry file: %w", err)
	}
	return nil
}
