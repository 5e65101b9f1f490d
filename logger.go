package dashwatch

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/daryllundy/gitlab-dashwatch-sub001/cache"
)

// Logger wraps slog.Logger with dashwatch-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithInstance adds an instance id field to the logger.
func (l *Logger) WithInstance(instanceID int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("instance", instanceID),
	}
}

// WithKey adds a cache key field to the logger.
func (l *Logger) WithKey(key cache.Key) *Logger {
	return &Logger{
		Logger: l.Logger.With("key", key.String()),
	}
}

// LogCacheGet logs a cache read.
func (l *Logger) LogCacheGet(ctx context.Context, key cache.Key, hit bool) {
	l.DebugContext(ctx, "cache get",
		"key", key.String(),
		"hit", hit,
	)
}

// LogCacheSet logs a cache write.
func (l *Logger) LogCacheSet(ctx context.Context, key cache.Key) {
	l.DebugContext(ctx, "cache set",
		"key", key.String(),
	)
}

// LogWarmup logs a bulk cache load.
func (l *Logger) LogWarmup(ctx context.Context, instanceID int64, loaded int) {
	l.InfoContext(ctx, "cache warmup",
		"instance", instanceID,
		"loaded", loaded,
	)
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(ctx context.Context, query string, total int, took time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"query", query,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"query", query,
			"total", total,
			"took", took,
		)
	}
}

// LogIndexUpdate logs a push-model index mutation.
func (l *Logger) LogIndexUpdate(ctx context.Context, upserted, removed int) {
	l.DebugContext(ctx, "search index updated",
		"upserted", upserted,
		"removed", removed,
	)
}
