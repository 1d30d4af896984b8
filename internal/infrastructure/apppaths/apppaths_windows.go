//go:build windows

package apppaths

import (
	"fmt"

	"task-launcher/internal/domain/entity"

	"golang.org/x/sys/windows/registry"
)

const appPathsKey = `SOFTWARE\Microsoft\Windows\CurrentVersion\App Paths`

// Discover lists the applications registered under App Paths in
// HKEY_LOCAL_MACHINE. Unreadable subkeys are skipped.
func Discover() ([]entity.AppEntry, error) {
	root, err := registry.OpenKey(registry.LOCAL_MACHINE, appPathsKey, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, fmt.Errorf("open App Paths: %w", err)
	}
	defer root.Close()

	names, err := root.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("read App Paths: %w", err)
	}

	var entries []entity.AppEntry
	for _, name := range names {
		k, err := registry.OpenKey(root, name, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		exe, _, err := k.GetStringValue("")
		k.Close()
		if err != nil {
			continue
		}
		if expanded, err := registry.ExpandString(exe); err == nil {
			exe = expanded
		}
		if entry, ok := entryFor(name, exe); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
