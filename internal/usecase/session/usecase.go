package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"task-launcher/internal/application/port/input"
	"task-launcher/internal/application/port/output"
)

type UseCase struct {
	processor input.CommandProcessor
	ui        output.UserInteractionPort
	logger    output.LoggerPort
}

func New(processor input.CommandProcessor, ui output.UserInteractionPort, logger output.LoggerPort) *UseCase {
	return &UseCase{
		processor: processor,
		ui:        ui,
		logger:    logger,
	}
}

// IsExitCommand reports whether line ends the session: "exit" or "quit" in
// any case, surrounding whitespace ignored.
func IsExitCommand(line string) bool {
	line = strings.TrimSpace(line)
	return strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit")
}

// Run reads commands until an exit keyword, end of input or cancellation.
// A failing command is shown to the user and the loop continues.
func (uc *UseCase) Run(ctx context.Context) error {
	uc.ui.ShowBanner(ctx)
	uc.logger.Info("Session started")

	commands := 0
	defer func() {
		uc.logger.Info("Session ended", "commands", commands)
	}()

	for {
		line, err := uc.ui.ReadCommand(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				uc.ui.ShowGoodbye(ctx)
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}

		if IsExitCommand(line) {
			uc.ui.ShowGoodbye(ctx)
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		commands++
		result, err := uc.processor.Process(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				uc.ui.ShowGoodbye(ctx)
				return nil
			}
			uc.logger.Error("Command failed", "error", err)
			uc.ui.ShowError(ctx, err)
			continue
		}

		uc.ui.ShowResponse(ctx, result.Response)
	}
}
