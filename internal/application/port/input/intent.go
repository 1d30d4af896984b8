package input

import (
	"context"

	"task-launcher/internal/domain/entity"
)

type IntentClassifier interface {
	Classify(ctx context.Context, text string) (entity.Intent, error)
}

type ActionExecutor interface {
	Execute(ctx context.Context, intent entity.Intent) string
}
