package blobstore

import (
	"context"
	"sync"
)

// Memory is an in-memory Store.
//
// With a quota it mimics a quota-limited browser/localstorage-style backend,
// which makes the cache engine's durability-failure path testable.
// Thread-safe for concurrent reads and writes.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	quota int64 // total byte limit across all blobs; <= 0 means unlimited
	used  int64
}

// NewMemory creates an unlimited in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// NewMemoryWithQuota creates an in-memory store that rejects writes once
// total stored bytes would exceed quota.
func NewMemoryWithQuota(quota int64) *Memory {
	return &Memory{blobs: make(map[string][]byte), quota: quota}
}

// Get returns the blob stored under key.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}

	// Copy to prevent external mutation.
	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

// Set stores the blob under key.
func (m *Memory) Set(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old := int64(len(m.blobs[key]))
	if m.quota > 0 && m.used-old+int64(len(data)) > m.quota {
		return ErrQuotaExceeded
	}

	copied := make([]byte, len(data))
	copy(copied, data)
	m.blobs[key] = copied
	m.used += int64(len(data)) - old
	return nil
}

// Remove deletes the blob under key.
func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.used -= int64(len(m.blobs[key]))
	delete(m.blobs, key)
	return nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

// Len returns the number of stored blobs.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
