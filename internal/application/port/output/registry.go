package output

import "task-launcher/internal/domain/entity"

type AppRegistry interface {
	Lookup(name string) (entity.AppEntry, error)
	Add(entry entity.AppEntry)
	List() []entity.AppEntry
	Names() []string
}
