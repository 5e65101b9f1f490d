package search

import (
	"fmt"
	"time"
)

// ErrTimeout indicates the search pipeline exceeded its deadline. No partial
// result exists and no history or analytics were committed.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrTimeout struct {
	// Timeout is the effective bound for the call: the configured engine
	// timeout, capped by any tighter caller-supplied deadline.
	Timeout time.Duration
	cause   error
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("search timed out after %s", e.Timeout)
}

func (e *ErrTimeout) Unwrap() error { return e.cause }

// ErrSavedSearchNotFound indicates an unknown saved-search id.
type ErrSavedSearchNotFound struct {
	ID string
}

func (e *ErrSavedSearchNotFound) Error() string {
	return fmt.Sprintf("saved search not found: %s", e.ID)
}
