// Package apppaths discovers installed applications registered with the OS.
package apppaths

import (
	"path/filepath"
	"strings"

	"task-launcher/internal/domain/entity"
)

// entryFor turns an App Paths key like "WINWORD.EXE" and its default value
// into a registry entry named "winword".
func entryFor(keyName, executable string) (entity.AppEntry, bool) {
	executable = strings.Trim(strings.TrimSpace(executable), `"`)
	if executable == "" {
		return entity.AppEntry{}, false
	}

	name := strings.ToLower(strings.TrimSuffix(keyName, filepath.Ext(keyName)))
	if name == "" {
		return entity.AppEntry{}, false
	}

	return entity.AppEntry{
		Name:         name,
		Executable:   executable,
		ProcessNames: []string{entity.DefaultProcessName(executable)},
	}, true
}
