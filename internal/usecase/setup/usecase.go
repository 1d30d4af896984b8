package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"task-launcher/internal/application/port/output"
	"task-launcher/internal/infrastructure/env"
)

const DefaultModel = "gpt-4o"

var (
	ErrCancelled   = errors.New("operation cancelled")
	ErrEmptyAPIKey = errors.New("API key cannot be empty")
	ErrMissingKey  = errors.New("OPENAI_API_KEY not set in .env file")
)

type UseCase struct {
	ui  output.UserInteractionPort
	out io.Writer
}

func New(ui output.UserInteractionPort, out io.Writer) *UseCase {
	return &UseCase{ui: ui, out: out}
}

// Create asks for the API key and writes path. An existing file is only
// replaced after confirmation.
func (uc *UseCase) Create(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err == nil {
		answer, err := uc.ui.AskQuestion(ctx, "The .env file already exists. Overwrite? (y/n):")
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") {
			fmt.Fprintln(uc.out, "Operation cancelled.")
			return ErrCancelled
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	apiKey, err := uc.ui.AskQuestion(ctx, "Enter your OpenAI API key:")
	if err != nil {
		return err
	}
	if apiKey == "" {
		return ErrEmptyAPIKey
	}

	values := map[string]string{
		"OPENAI_API_KEY": apiKey,
		"OPENAI_MODEL":   DefaultModel,
	}
	if err := env.WriteFile(path, values); err != nil {
		return err
	}

	fmt.Fprintf(uc.out, ".env file created successfully at %s\n", path)
	fmt.Fprintln(uc.out, "The file contains:")
	fmt.Fprintf(uc.out, "OPENAI_API_KEY=%s\n", env.Mask(apiKey))
	fmt.Fprintf(uc.out, "OPENAI_MODEL=%s\n", DefaultModel)
	return nil
}

// Check verifies that path can be parsed and carries an API key.
func (uc *UseCase) Check(path string) error {
	values, err := env.ReadFile(path)
	if err != nil {
		return err
	}

	apiKey := strings.TrimSpace(values["OPENAI_API_KEY"])
	if apiKey == "" {
		return ErrMissingKey
	}

	model := values["OPENAI_MODEL"]
	if model == "" {
		fmt.Fprintln(uc.out, "Warning: OPENAI_MODEL not set in .env file, will use default")
		model = "default"
	}

	fmt.Fprintln(uc.out, "Environment variables loaded successfully!")
	fmt.Fprintf(uc.out, "Using API key: %s\n", env.Mask(apiKey))
	fmt.Fprintf(uc.out, "Using model: %s\n", model)
	return nil
}
