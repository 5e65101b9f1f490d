// Package cache implements the bounded, TTL-based, LRU-evicting record cache
// with a best-effort durable mirror.
//
// Each entry wraps one model.Record under a composite key of instance id,
// record type and optional record id. Entries expire at a fixed deadline
// (write time + TTL); expiry is checked lazily on Get and eagerly by a
// periodic sweeper. When the entry count reaches the configured maximum,
// entries are evicted in ascending last-access order until a slot frees up.
//
// Every mutation writes the whole serialized entry map through to the
// configured blobstore.Store. The in-memory map is authoritative: a failed
// write-through is logged and swallowed, never surfaced to the caller.
// Snapshots carry a CRC32 checksum and are compressed once they cross the
// configured threshold.
package cache
