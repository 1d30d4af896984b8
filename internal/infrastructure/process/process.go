package process

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"task-launcher/internal/application/port/output"

	gopsprocess "github.com/shirou/gopsutil/v4/process"
)

var (
	_ output.ProcessPort       = (*Manager)(nil)
	_ output.BrowserOpenerPort = (*Manager)(nil)
)

// Process is the part of a running OS process the manager needs.
type Process interface {
	PID() int32
	Name(ctx context.Context) (string, error)
	Terminate(ctx context.Context) error
}

// Lister enumerates running processes.
type Lister func(ctx context.Context) ([]Process, error)

// Runner starts a command without waiting for it.
type Runner func(name string, args ...string) error

type Manager struct {
	list   Lister
	run    Runner
	goos   string
	selfID int32
	logger output.LoggerPort
}

type Option func(*Manager)

func WithLister(l Lister) Option {
	return func(m *Manager) { m.list = l }
}

func WithRunner(r Runner) Option {
	return func(m *Manager) { m.run = r }
}

func WithGOOS(goos string) Option {
	return func(m *Manager) { m.goos = goos }
}

func NewManager(logger output.LoggerPort, opts ...Option) *Manager {
	m := &Manager{
		list:   systemProcesses,
		run:    startDetached,
		goos:   runtime.GOOS,
		selfID: int32(os.Getpid()),
		logger: logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Start(ctx context.Context, executable string, args ...string) error {
	if strings.TrimSpace(executable) == "" {
		return fmt.Errorf("empty executable")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	output.LoggerFrom(ctx, m.logger).Info("Starting process", "executable", executable, "args", args)
	if err := m.run(executable, args...); err != nil {
		return fmt.Errorf("start %s: %w", filepath.Base(executable), err)
	}
	return nil
}

// Terminate stops every process whose name matches one of names. Matching
// ignores case and a trailing ".exe"; the assistant's own process is never
// touched.
func (m *Manager) Terminate(ctx context.Context, names []string) (int, error) {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n = normalizeProcessName(n); n != "" {
			wanted[n] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return 0, nil
	}

	procs, err := m.list(ctx)
	if err != nil {
		return 0, fmt.Errorf("list processes: %w", err)
	}

	log := output.LoggerFrom(ctx, m.logger)
	var (
		stopped int
		lastErr error
	)
	for _, p := range procs {
		if p.PID() == m.selfID {
			continue
		}
		name, err := p.Name(ctx)
		if err != nil {
			// Processes exit between listing and inspection; skip them.
			continue
		}
		if _, ok := wanted[normalizeProcessName(name)]; !ok {
			continue
		}

		if err := p.Terminate(ctx); err != nil {
			log.Warn("Terminate failed", "pid", p.PID(), "name", name, "error", err)
			lastErr = err
			continue
		}
		log.Info("Process terminated", "pid", p.PID(), "name", name)
		stopped++
	}

	if stopped == 0 && lastErr != nil {
		return 0, fmt.Errorf("terminate: %w", lastErr)
	}
	return stopped, nil
}

// OpenURL hands url to the desktop's default browser.
func (m *Manager) OpenURL(ctx context.Context, url string) error {
	name, args := openerCommand(m.goos, url)
	if err := ctx.Err(); err != nil {
		return err
	}

	output.LoggerFrom(ctx, m.logger).Info("Opening URL", "url", url)
	if err := m.run(name, args...); err != nil {
		return fmt.Errorf("open url: %w", err)
	}
	return nil
}

func openerCommand(goos, url string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		return "open", []string{url}
	default:
		return "xdg-open", []string{url}
	}
}

func normalizeProcessName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSuffix(name, ".exe")
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

type gopsutilProcess struct {
	p *gopsprocess.Process
}

func (g gopsutilProcess) PID() int32 {
	return g.p.Pid
}

func (g gopsutilProcess) Name(ctx context.Context) (string, error) {
	return g.p.NameWithContext(ctx)
}

func (g gopsutilProcess) Terminate(ctx context.Context) error {
	return g.p.TerminateWithContext(ctx)
}

func systemProcesses(ctx context.Context) ([]Process, error) {
	procs, err := gopsprocess.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		out = append(out, gopsutilProcess{p: p})
	}
	return out, nil
}
