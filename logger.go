package mcvol

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with mcvol-specific context.
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
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithWorkers adds a worker count field to the logger.
func (l *Logger) WithWorkers(workers int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", workers),
	}
}

// LogGenerate logs a sample generation.
func (l *Logger) LogGenerate(ctx context.Context, n, dim int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "generate failed",
			"n", n,
			"dimension", dim,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "generate completed",
		"n", n,
		"dimension", dim,
		"elapsed", elapsed,
	)
}

// LogEstimate logs a completed or failed volume estimate.
func (l *Logger) LogEstimate(ctx context.Context, e Estimate, err error) {
	if err != nil {
		l.ErrorContext(ctx, "estimate failed",
			"n", e.Samples,
			"dimension", e.Dimension,
			"workers", e.Workers,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "estimate completed",
		"n", e.Samples,
		"dimension", e.Dimension,
		"workers", e.Workers,
		"volume", e.Volume,
		"exact", e.Exact,
		"relative_error", e.RelativeError,
		"elapsed", e.Elapsed,
	)
}

// LogShard logs a finished shard of a parallel estimate.
func (l *Logger) LogShard(ctx context.Context, shard, size, inside int, elapsed time.Duration) {
	l.DebugContext(ctx, "shard completed",
		"shard", shard,
		"size", size,
		"inside", inside,
		"elapsed", elapsed,
	)
}
