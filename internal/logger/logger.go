package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Text to stderr at info level until Setup is called with the loaded config.
func init() {
	Setup(os.Stderr, false, "")
}

// Setup replaces the default logger. JSON is used in production, text
// otherwise. Results are written to stdout, so logs should go elsewhere.
func Setup(w io.Writer, production bool, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if production {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
	return defaultLogger
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Context keys
type contextKey string

const (
	runIDKey   contextKey = "run_id"
	commandKey contextKey = "command"
)

// WithRunID adds a run ID to context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithCommand adds the name of the running command to context
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// RunID returns the run ID stored in ctx, if any.
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// FromContext returns a logger with context values
func FromContext(ctx context.Context) *slog.Logger {
	return With(ctx, defaultLogger)
}

// With returns l annotated with the values stored in ctx.
func With(ctx context.Context, l *slog.Logger) *slog.Logger {
	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		l = l.With("run_id", runID)
	}

	if command, ok := ctx.Value(commandKey).(string); ok && command != "" {
		l = l.With("command", command)
	}

	return l
}

// Error logs msg at error level on the default logger.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}
