package userinteraction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"task-launcher/internal/application/port/output"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/peterh/liner"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

const commandPrompt = "How can I help you? > "

type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type ConsoleUserInteraction struct {
	reader      lineReader
	state       *liner.State
	out         io.Writer
	historyFile string
	markdown    *glamour.TermRenderer
}

// NewConsoleUserInteraction reads from the terminal with line editing and
// keeps history in historyFile when it is set.
func NewConsoleUserInteraction(historyFile string) *ConsoleUserInteraction {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	u := newConsole(state, os.Stdout)
	u.state = state
	u.historyFile = historyFile
	u.loadHistory()
	return u
}

func newConsole(reader lineReader, out io.Writer) *ConsoleUserInteraction {
	markdown, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	return &ConsoleUserInteraction{
		reader:   reader,
		out:      out,
		markdown: markdown,
	}
}

func (u *ConsoleUserInteraction) AskQuestion(ctx context.Context, question string) (string, error) {
	answer, err := u.reader.Prompt(question + " ")
	if err != nil {
		return "", fmt.Errorf("failed to read user input: %w", normalizeReadErr(err))
	}
	return strings.TrimSpace(answer), nil
}

// ReadCommand returns io.EOF when the user closes input or presses Ctrl+C.
func (u *ConsoleUserInteraction) ReadCommand(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprintln(u.out)
	line, err := u.reader.Prompt(commandPrompt)
	if err != nil {
		return "", normalizeReadErr(err)
	}

	if strings.TrimSpace(line) != "" {
		u.reader.AppendHistory(line)
	}
	return line, nil
}

func (u *ConsoleUserInteraction) ShowBanner(ctx context.Context) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintln(u.out, "=======================================")
	cyan.Fprintln(u.out, "AI Task Launcher - Your Desktop Assistant")
	cyan.Fprintln(u.out, "=======================================")

	dim := color.New(color.Faint)
	dim.Fprintln(u.out, "Type 'exit' or 'quit' to end the session")
}

// ShowResponse prints single-line answers as they are and renders longer
// ones, such as search summaries, as markdown.
func (u *ConsoleUserInteraction) ShowResponse(ctx context.Context, response string) {
	if strings.Contains(response, "\n") && u.markdown != nil {
		if rendered, err := u.markdown.Render(response); err == nil {
			fmt.Fprint(u.out, rendered)
			return
		}
	}

	green := color.New(color.FgGreen)
	green.Fprintln(u.out, response)
}

func (u *ConsoleUserInteraction) ShowError(ctx context.Context, err error) {
	red := color.New(color.FgRed)
	red.Fprintf(u.out, "An error occurred: %v\n", err)
}

func (u *ConsoleUserInteraction) ShowGoodbye(ctx context.Context) {
	fmt.Fprintln(u.out, "Goodbye!")
}

// Close saves history and restores the terminal.
func (u *ConsoleUserInteraction) Close() error {
	if u.state == nil {
		return nil
	}
	u.saveHistory()
	return u.state.Close()
}

func (u *ConsoleUserInteraction) loadHistory() {
	if u.historyFile == "" {
		return
	}
	if f, err := os.Open(u.historyFile); err == nil {
		_, _ = u.state.ReadHistory(f)
		f.Close()
	}
}

func (u *ConsoleUserInteraction) saveHistory() {
	if u.historyFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(u.historyFile), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(u.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = u.state.WriteHistory(f)
}

func normalizeReadErr(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) {
		return io.EOF
	}
	return err
}
