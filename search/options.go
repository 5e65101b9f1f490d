package search

import (
	"log/slog"
	"time"
)

// Options tunes the search engine.
type Options struct {
	// Timeout bounds the whole search pipeline. An elapsed timeout fails
	// the call with ErrTimeout; no partial result is returned.
	Timeout time.Duration
	// EnableFuzzy turns on the edit-distance fallback for query tokens
	// with no substring match.
	EnableFuzzy bool
	// MaxHistory bounds the query history; the oldest entry is dropped
	// once it is full.
	MaxHistory int
	// MaxSuggestions caps both the in-pipeline related terms and the
	// default GetSuggestions result size.
	MaxSuggestions int
	// Logger receives structured engine logs. Defaults to discarding.
	Logger *slog.Logger
}

// DefaultOptions returns the options used when none are overridden.
func DefaultOptions() Options {
	return Options{
		Timeout:        5 * time.Second,
		EnableFuzzy:    true,
		MaxHistory:     50,
		MaxSuggestions: 5,
		Logger:         slog.New(slog.DiscardHandler),
	}
}
