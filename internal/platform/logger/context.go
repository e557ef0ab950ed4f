package logger

import (
	"context"
	"log/slog"
)

// loggerContextKey is an unexported type used as the context key for loggers
// to avoid collisions with keys from other packages.
type loggerContextKey struct{}

// WithLogger returns a new context with the provided logger attached.
// Handlers attach a request-scoped logger (carrying the trace ID) so that
// downstream services log with the same correlation attributes.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// FromContext retrieves the logger from the context, if one is attached.
// The boolean result reports whether a logger was found.
func FromContext(ctx context.Context) (*slog.Logger, bool) {
	logger, ok := ctx.Value(loggerContextKey{}).(*slog.Logger)
	return logger, ok
}

// FromContextOrDefault retrieves the logger from the context, falling back
// to the provided default when the context carries none. If the default is
// also nil, slog.Default() is returned.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if logger, ok := FromContext(ctx); ok {
		return logger
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
