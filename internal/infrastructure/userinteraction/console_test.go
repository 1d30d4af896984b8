package userinteraction

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	lines   []string
	err     error
	prompts []string
	history []string
}

func (f *fakeReader) Prompt(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.lines) == 0 {
		if f.err != nil {
			return "", f.err
		}
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeReader) AppendHistory(item string) {
	f.history = append(f.history, item)
}

func init() {
	color.NoColor = true
}

func TestReadCommand(t *testing.T) {
	reader := &fakeReader{lines: []string{"open notepad", "  "}}
	var out bytes.Buffer
	u := newConsole(reader, &out)

	line, err := u.ReadCommand(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "open notepad", line)

	line, err = u.ReadCommand(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "  ", line)

	assert.Equal(t, []string{"open notepad"}, reader.history)
	assert.Equal(t, commandPrompt, reader.prompts[0])
}

func TestReadCommand_AbortIsEOF(t *testing.T) {
	u := newConsole(&fakeReader{err: liner.ErrPromptAborted}, io.Discard)

	_, err := u.ReadCommand(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadCommand_OtherErrors(t *testing.T) {
	boom := errors.New("boom")
	u := newConsole(&fakeReader{err: boom}, io.Discard)

	_, err := u.ReadCommand(context.Background())
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = u.ReadCommand(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAskQuestion(t *testing.T) {
	reader := &fakeReader{lines: []string{"  sk-test  "}}
	u := newConsole(reader, io.Discard)

	answer, err := u.AskQuestion(context.Background(), "OpenAI API key:")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", answer)
	assert.Equal(t, "OpenAI API key: ", reader.prompts[0])
	assert.Empty(t, reader.history)
}

func TestShowOutput(t *testing.T) {
	var out bytes.Buffer
	u := newConsole(&fakeReader{}, &out)
	ctx := context.Background()

	u.ShowBanner(ctx)
	u.ShowResponse(ctx, "Opening notepad for you.")
	u.ShowError(ctx, errors.New("boom"))
	u.ShowGoodbye(ctx)

	s := out.String()
	assert.Contains(t, s, "AI Task Launcher")
	assert.Contains(t, s, "Type 'exit' or 'quit' to end the session")
	assert.Contains(t, s, "Opening notepad for you.\n")
	assert.Contains(t, s, "An error occurred: boom\n")
	assert.Contains(t, s, "Goodbye!\n")
}

func TestShowResponse_RendersMultiline(t *testing.T) {
	var out bytes.Buffer
	u := newConsole(&fakeReader{}, &out)

	u.ShowResponse(context.Background(), "Here's what I found for 'go':\n\nGo is a language.")

	assert.Contains(t, out.String(), "Go is a language.")
}

func TestClose_WithoutTerminal(t *testing.T) {
	u := newConsole(&fakeReader{}, io.Discard)
	assert.NoError(t, u.Close())
}
