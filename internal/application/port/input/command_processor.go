package input

import (
	"context"

	"task-launcher/internal/domain/entity"
)

type CommandProcessor interface {
	Process(ctx context.Context, text string) (*entity.CommandResult, error)
}
