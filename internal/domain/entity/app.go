package entity

import (
	"path/filepath"
	"strings"
)

// AppEntry maps a friendly name to something the OS can start and to the
// process names used when closing it.
type AppEntry struct {
	Name         string   `yaml:"name" json:"name"`
	Executable   string   `yaml:"executable" json:"executable"`
	Args         []string `yaml:"args,omitempty" json:"args,omitempty"`
	ProcessNames []string `yaml:"process_names,omitempty" json:"process_names,omitempty"`
}

// DefaultProcessName is the executable base name without extension,
// lower-cased: `C:\Windows\notepad.exe` -> "notepad".
func DefaultProcessName(executable string) string {
	base := filepath.Base(strings.ReplaceAll(executable, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base)
}
