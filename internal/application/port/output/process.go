package output

import "context"

type ProcessPort interface {
	// Start launches the executable detached from the assistant.
	Start(ctx context.Context, executable string, args ...string) error
	// Terminate stops every running process whose name matches one of names
	// and reports how many were stopped.
	Terminate(ctx context.Context, names []string) (int, error)
}

type BrowserOpenerPort interface {
	OpenURL(ctx context.Context, url string) error
}
