package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte("value")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	// Returned blobs are copies.
	got[0] = 'X'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), again)

	require.NoError(t, s.Remove(ctx, "k"))
	require.NoError(t, s.Remove(ctx, "k"), "removing a missing key is not an error")
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryQuota(t *testing.T) {
	s := NewMemoryWithQuota(10)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", []byte("12345")))
	require.ErrorIs(t, s.Set(ctx, "b", []byte("123456")), ErrQuotaExceeded)

	// Replacing an existing blob frees its old bytes first.
	require.NoError(t, s.Set(ctx, "a", []byte("1234567890")))

	// Removal frees quota.
	require.NoError(t, s.Remove(ctx, "a"))
	require.NoError(t, s.Set(ctx, "b", []byte("123456")))
}
