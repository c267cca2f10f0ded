package graphmaps

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with graphmaps-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithIndex tags the logger with the name of the index emitting records.
func (l *Logger) WithIndex(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("index", name),
	}
}

// WithItem adds an item field to the logger.
func (l *Logger) WithItem(item Item) *Logger {
	return &Logger{
		Logger: l.Logger.With("item", int(item)),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogBuild logs a bulk rebuild of a universe or index.
func (l *Logger) LogBuild(ctx context.Context, items int) {
	l.DebugContext(ctx, "build completed",
		"items", items,
	)
}

// LogClear logs the removal of every item.
func (l *Logger) LogClear(ctx context.Context, dropped int) {
	l.DebugContext(ctx, "clear completed",
		"dropped", dropped,
	)
}

// LogEraseMany logs a batch erase.
func (l *Logger) LogEraseMany(ctx context.Context, requested int, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch erase rejected",
			"requested", requested,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch erase completed",
			"count", requested,
		)
	}
}
