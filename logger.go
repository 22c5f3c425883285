package kdgo

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with kdgo-specific context.
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

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogBuild logs an index build.
func (l *Logger) LogBuild(ctx context.Context, points, dimension int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"points", points,
			"dimension", dimension,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "build completed",
			"points", points,
			"dimension", dimension,
			"duration", duration,
		)
	}
}

// LogSearch logs a KNN search operation.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"k", k,
			"results", resultsFound,
		)
	}
}

// LogRadiusSearch logs a radius search operation.
func (l *Logger) LogRadiusSearch(ctx context.Context, radiusSq float32, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "radius search failed",
			"radius_sq", radiusSq,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "radius search completed",
			"radius_sq", radiusSq,
			"results", resultsFound,
		)
	}
}

// LogBatchSearch logs a batch KNN search operation.
func (l *Logger) LogBatchSearch(ctx context.Context, queries, k int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch search failed",
			"queries", queries,
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch search completed",
			"queries", queries,
			"k", k,
		)
	}
}

// LogRebuild logs an index rebuild.
func (l *Logger) LogRebuild(ctx context.Context, points int, duration time.Duration) {
	l.InfoContext(ctx, "rebuild completed",
		"points", points,
		"duration", duration,
	)
}
