package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations must return an error that satisfies
// `errors.Is(err, ErrNotFound)`.
var ErrNotFound = errors.New("blob not found")

// ErrQuotaExceeded is returned by quota-limited stores when a Set would push
// total stored bytes past the configured limit.
//
// Callers treat this as a recoverable durability failure: the in-memory
// state stays authoritative and the write is dropped.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is a durable string-keyed blob store.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores the blob under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error
	// Remove deletes the blob under key. Removing a missing key is not an
	// error.
	Remove(ctx context.Context, key string) error
	// Close releases any resources held by the store.
	Close() error
}
