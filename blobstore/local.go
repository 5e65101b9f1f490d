package blobstore

import (
	"context"
	"encoding/hex"
	"hash/fnv"
	"os"
	"path/filepath"
)

// Local implements Store using one file per key under a root directory.
//
// Writes go through a temp file + rename so a crash mid-write never leaves a
// torn blob behind.
type Local struct {
	root string
}

// NewLocal creates a Local store rooted at the given directory, creating it
// if necessary.
func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Local{root: root}, nil
}

// path maps a key to a filesystem-safe file name. Keys contain colons and
// arbitrary user text, so they are hashed rather than used verbatim.
func (s *Local) path(key string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return filepath.Join(s.root, hex.EncodeToString(h.Sum(nil))+".blob")
}

// Get returns the blob stored under key.
func (s *Local) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

// Set stores the blob under key atomically.
func (s *Local) Set(_ context.Context, key string, data []byte) error {
	path := s.path(key)
	tmp, err := os.CreateTemp(s.root, ".blob-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Remove deletes the blob under key.
func (s *Local) Remove(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close implements Store.
func (s *Local) Close() error { return nil }
