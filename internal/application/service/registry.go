package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"task-launcher/internal/application/port/output"
	"task-launcher/internal/domain/entity"

	"github.com/agnivade/levenshtein"
)

var ErrAppNotFound = errors.New("application not found")

const (
	minPartialLen    = 3
	minFuzzyLen      = 4
	maxFuzzyDistance = 2
)

var _ output.AppRegistry = (*AppRegistryImpl)(nil)

type AppRegistryImpl struct {
	apps map[string]entity.AppEntry
}

func NewAppRegistry(entries ...entity.AppEntry) *AppRegistryImpl {
	r := &AppRegistryImpl{
		apps: make(map[string]entity.AppEntry, len(entries)),
	}
	for _, e := range entries {
		r.Add(e)
	}
	return r
}

// NewDefaultAppRegistry returns a registry seeded with the applications
// commonly installed on the current OS.
func NewDefaultAppRegistry() *AppRegistryImpl {
	return NewAppRegistry(defaultApps()...)
}

func (r *AppRegistryImpl) Add(entry entity.AppEntry) {
	entry, ok := normalizeEntry(entry)
	if !ok {
		return
	}
	r.apps[entry.Name] = entry
}

// AddMissing inserts entry only when its name is not registered yet.
func (r *AppRegistryImpl) AddMissing(entry entity.AppEntry) bool {
	entry, ok := normalizeEntry(entry)
	if !ok {
		return false
	}
	if _, exists := r.apps[entry.Name]; exists {
		return false
	}
	r.apps[entry.Name] = entry
	return true
}

// Lookup resolves a friendly name: exact key, then partial match (longest key
// wins), then the closest key by edit distance.
func (r *AppRegistryImpl) Lookup(name string) (entity.AppEntry, error) {
	query := normalizeName(name)
	if query == "" {
		return entity.AppEntry{}, fmt.Errorf("%w: empty name", ErrAppNotFound)
	}

	if app, ok := r.apps[query]; ok {
		return app, nil
	}
	if app, ok := r.partialMatch(query); ok {
		return app, nil
	}
	if app, ok := r.fuzzyMatch(query); ok {
		return app, nil
	}

	return entity.AppEntry{}, fmt.Errorf("%w: %q", ErrAppNotFound, name)
}

func (r *AppRegistryImpl) List() []entity.AppEntry {
	names := r.Names()
	result := make([]entity.AppEntry, 0, len(names))
	for _, name := range names {
		result = append(result, r.apps[name])
	}
	return result
}

func (r *AppRegistryImpl) Names() []string {
	result := make([]string, 0, len(r.apps))
	for name := range r.apps {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

func (r *AppRegistryImpl) Len() int {
	return len(r.apps)
}

func (r *AppRegistryImpl) partialMatch(query string) (entity.AppEntry, bool) {
	best := ""
	for _, name := range r.Names() {
		matched := (utf8.RuneCountInString(name) >= minPartialLen && strings.Contains(query, name)) ||
			(utf8.RuneCountInString(query) >= minPartialLen && strings.Contains(name, query))
		if !matched {
			continue
		}
		if utf8.RuneCountInString(name) > utf8.RuneCountInString(best) {
			best = name
		}
	}
	if best == "" {
		return entity.AppEntry{}, false
	}
	return r.apps[best], true
}

func (r *AppRegistryImpl) fuzzyMatch(query string) (entity.AppEntry, bool) {
	if utf8.RuneCountInString(query) < minFuzzyLen {
		return entity.AppEntry{}, false
	}

	best := ""
	bestDist := maxFuzzyDistance + 1
	for _, name := range r.Names() {
		dist := levenshtein.ComputeDistance(query, name)
		if dist < bestDist {
			best = name
			bestDist = dist
		}
	}
	if best == "" {
		return entity.AppEntry{}, false
	}
	return r.apps[best], true
}

func normalizeEntry(entry entity.AppEntry) (entity.AppEntry, bool) {
	entry.Name = normalizeName(entry.Name)
	entry.Executable = strings.TrimSpace(entry.Executable)
	if entry.Name == "" || entry.Executable == "" {
		return entry, false
	}

	names := make([]string, 0, len(entry.ProcessNames))
	for _, n := range entry.ProcessNames {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		names = append(names, entity.DefaultProcessName(entry.Executable))
	}
	entry.ProcessNames = names
	entry.Args = append([]string(nil), entry.Args...)

	return entry, true
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
