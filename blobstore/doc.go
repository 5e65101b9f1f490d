// Package blobstore abstracts the durable mirror the cache engine writes
// through to.
//
// A Store is a string-keyed map of opaque text blobs with get/set/remove
// semantics — nothing more is assumed about the backend. The cache engine
// serializes its whole entry map to a single blob under a configured key on
// every mutation and restores from it at construction.
//
// Backends:
//
//   - Memory: in-process map, optionally quota-limited (tests, ephemeral use)
//   - Local: one file per key under a root directory
//   - sqlite.Store: single-table SQLite database
//   - s3.Store, dynamodb.Store, minio.Store: remote mirrors
//
// Remote backends are usually wrapped in Throttled so a chatty cache cannot
// hammer the network on every write-through.
package blobstore
