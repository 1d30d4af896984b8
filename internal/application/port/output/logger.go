package output

import "context"

type LoggerPort interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	WithField(key string, value any) LoggerPort
	WithFields(fields map[string]any) LoggerPort

	Close() error
}

type loggerKey struct{}

// ContextWithLogger attaches a request-scoped logger to ctx.
func ContextWithLogger(ctx context.Context, l LoggerPort) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// LoggerFrom returns the logger attached to ctx, or fallback if there is none.
func LoggerFrom(ctx context.Context, fallback LoggerPort) LoggerPort {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(LoggerPort); ok && l != nil {
			return l
		}
	}
	return fallback
}
