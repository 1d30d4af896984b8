package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"task-launcher/internal/application/port/input"
	"task-launcher/internal/application/port/output"
	"task-launcher/internal/domain/entity"

	"github.com/google/uuid"
)

var _ input.CommandProcessor = (*UseCase)(nil)

var ErrEmptyCommand = errors.New("empty command")

type UseCase struct {
	classifier input.IntentClassifier
	executor   input.ActionExecutor
	logger     output.LoggerPort
	newID      func() string
}

func New(classifier input.IntentClassifier, executor input.ActionExecutor, logger output.LoggerPort) *UseCase {
	return &UseCase{
		classifier: classifier,
		executor:   executor,
		logger:     logger,
		newID:      func() string { return uuid.New().String() },
	}
}

// Process classifies text and executes the resulting intent. Every failure
// short of a cancelled context is reported in the result's Response.
func (uc *UseCase) Process(ctx context.Context, text string) (*entity.CommandResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyCommand
	}

	result := &entity.CommandResult{
		ID:    uc.newID(),
		Input: text,
	}
	log := uc.logger.WithField("command_id", result.ID)
	log.Info("Command received", "text", text)
	ctx = output.ContextWithLogger(ctx, log)

	intent, err := uc.classifier.Classify(ctx, text)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Error("Classification failed", "error", err)
		result.Intent = entity.UnknownIntent()
		result.Response = fmt.Sprintf("I couldn't reach the language model: %v", err)
		return result, nil
	}

	result.Intent = intent
	result.Response = uc.executor.Execute(ctx, intent)

	log.Info("Command completed", "action", intent.Action, "target", intent.Target)
	return result, nil
}
