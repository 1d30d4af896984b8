//go:build !windows

package apppaths

import "task-launcher/internal/domain/entity"

// Discover has no system source outside Windows.
func Discover() ([]entity.AppEntry, error) {
	return nil, nil
}
