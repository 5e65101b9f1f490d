// Package sqlite provides a blobstore.Store backed by a single-table SQLite
// database. It is the durable mirror of choice for desktop sessions: one
// file, no server, survives restarts.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/daryllundy/gitlab-dashwatch-sub001/blobstore"
)

const createBlobsTable = `
CREATE TABLE IF NOT EXISTS blobs (
	blob_key TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Store implements blobstore.Store on a SQLite database file.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) a SQLite-backed store at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open blob db: %w", err)
	}
	if _, err := db.Exec(createBlobsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate blob db: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the blob stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM blobs WHERE blob_key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blobstore.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set stores the blob under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (blob_key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(blob_key) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		key, data)
	return err
}

// Remove deletes the blob under key.
func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE blob_key = ?`, key)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
