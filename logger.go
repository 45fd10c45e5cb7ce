package chunkio

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with chunkio-specific context.
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
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithPattern adds the reader pattern field to the logger.
func (l *Logger) WithPattern(pattern string) *Logger {
	return &Logger{
		Logger: l.Logger.With("pattern", pattern),
	}
}

// LogLoad logs a completed load operation.
func (l *Logger) LogLoad(ctx context.Context, pattern string, chunks, rows int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"pattern", pattern,
			"chunks", chunks,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "load completed",
			"pattern", pattern,
			"chunks", chunks,
			"rows", rows,
			"duration", duration,
		)
	}
}

// LogOutOfOrder logs the recoverable out-of-order index warning emitted
// when a requested time bound cannot be sliced from an unsorted index.
func (l *Logger) LogOutOfOrder(ctx context.Context, pattern string) {
	l.WarnContext(ctx, "data index contains out-of-order timestamps, ignoring requested bounds",
		"pattern", pattern,
	)
}
