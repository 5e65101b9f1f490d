package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttled wraps a Store and rate-limits mutating calls.
//
// The cache engine writes through its whole snapshot on every mutation;
// against a remote backend that turns bulk loads into a burst of network
// writes. Throttled smooths those out without changing semantics: Set and
// Remove block until the limiter grants a token (or the context is
// canceled). Reads are not limited.
type Throttled struct {
	inner   Store
	limiter *rate.Limiter
}

// NewThrottled wraps inner with a token-bucket limiter allowing writesPerSec
// sustained writes with the given burst.
func NewThrottled(inner Store, writesPerSec float64, burst int) *Throttled {
	return &Throttled{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(writesPerSec), burst),
	}
}

// Get returns the blob stored under key.
func (t *Throttled) Get(ctx context.Context, key string) ([]byte, error) {
	return t.inner.Get(ctx, key)
}

// Set stores the blob under key once the limiter grants a token.
func (t *Throttled) Set(ctx context.Context, key string, data []byte) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.inner.Set(ctx, key, data)
}

// Remove deletes the blob under key once the limiter grants a token.
func (t *Throttled) Remove(ctx context.Context, key string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.inner.Remove(ctx, key)
}

// Close closes the underlying store.
func (t *Throttled) Close() error { return t.inner.Close() }
