package session

import (
	"context"
	"errors"
	"io"
	"testing"

	"task-launcher/internal/domain/entity"
	"task-launcher/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedUI struct {
	lines     []string
	readErr   error
	responses []string
	errors    []error
	banner    bool
	goodbye   int
}

func (s *scriptedUI) AskQuestion(ctx context.Context, question string) (string, error) {
	return "", nil
}

func (s *scriptedUI) ReadCommand(ctx context.Context) (string, error) {
	if len(s.lines) == 0 {
		if s.readErr != nil {
			return "", s.readErr
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedUI) ShowBanner(ctx context.Context) { s.banner = true }
func (s *scriptedUI) ShowResponse(ctx context.Context, response string) { s.responses = append(s.responses, response) }
func (s *scriptedUI) ShowError(ctx context.Context, err error) { s.errors = append(s.errors, err) }
func (s *scriptedUI) ShowGoodbye(ctx context.Context) { s.goodbye++ }

type echoProcessor struct {
	texts []string
	err   error
}

func (p *echoProcessor) Process(ctx context.Context, text string) (*entity.CommandResult, error) {
	p.texts = append(p.texts, text)
	if p.err != nil {
		return nil, p.err
	}
	return &entity.CommandResult{Response: "done: " + text}, nil
}

func TestIsExitCommand(t *testing.T) {
	for _, line := range []string{"exit", "quit", "EXIT", "Quit", "  exit  ", "\tQUIT\n"} {
		assert.True(t, IsExitCommand(line), "%q should exit", line)
	}
	for _, line := range []string{"", "exit now", "quitting", "please quit", "ex it", "close"} {
		assert.False(t, IsExitCommand(line), "%q should not exit", line)
	}
}

func TestRun_StopsOnExit(t *testing.T) {
	ui := &scriptedUI{lines: []string{"open notepad", "", "exit now", "Quit", "open chrome"}}
	processor := &echoProcessor{}

	err := New(processor, ui, logger.NewNop()).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, ui.banner)
	assert.Equal(t, []string{"open notepad", "exit now"}, processor.texts)
	assert.Equal(t, []string{"done: open notepad", "done: exit now"}, ui.responses)
	assert.Equal(t, 1, ui.goodbye)
}

func TestRun_StopsOnEOF(t *testing.T) {
	ui := &scriptedUI{lines: []string{"search golang"}}
	processor := &echoProcessor{}

	require.NoError(t, New(processor, ui, logger.NewNop()).Run(context.Background()))

	assert.Equal(t, []string{"search golang"}, processor.texts)
	assert.Equal(t, 1, ui.goodbye)
}

func TestRun_ProcessorErrorsDoNotEndSession(t *testing.T) {
	ui := &scriptedUI{lines: []string{"one", "two", "exit"}}
	processor := &echoProcessor{err: errors.New("boom")}

	require.NoError(t, New(processor, ui, logger.NewNop()).Run(context.Background()))

	assert.Equal(t, []string{"one", "two"}, processor.texts)
	assert.Len(t, ui.errors, 2)
	assert.Empty(t, ui.responses)
}

func TestRun_ReadError(t *testing.T) {
	ui := &scriptedUI{readErr: errors.New("terminal gone")}

	err := New(&echoProcessor{}, ui, logger.NewNop()).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal gone")
	assert.Zero(t, ui.goodbye)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui := &scriptedUI{readErr: context.Canceled}

	require.NoError(t, New(&echoProcessor{}, ui, logger.NewNop()).Run(ctx))
	assert.Equal(t, 1, ui.goodbye)
}
