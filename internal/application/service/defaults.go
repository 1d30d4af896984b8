package service

import (
	"os"
	"regexp"

	"task-launcher/internal/domain/entity"
)

var windowsVarPattern = regexp.MustCompile(`%([A-Za-z0-9_]+)%`)

func app(name, executable string, processNames ...string) entity.AppEntry {
	return entity.AppEntry{
		Name:         name,
		Executable:   executable,
		ProcessNames: processNames,
	}
}

func appWithArgs(name, executable string, args []string, processNames ...string) entity.AppEntry {
	e := app(name, executable, processNames...)
	e.Args = args
	return e
}

// ExpandWindowsVars replaces %VAR% references with environment values.
// Unknown variables expand to an empty string.
func ExpandWindowsVars(path string) string {
	return windowsVarPattern.ReplaceAllStringFunc(path, func(m string) string {
		return os.Getenv(m[1 : len(m)-1])
	})
}
