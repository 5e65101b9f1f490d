package cache

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/daryllundy/gitlab-dashwatch-sub001/blobstore"
	"github.com/daryllundy/gitlab-dashwatch-sub001/codec"
	"github.com/daryllundy/gitlab-dashwatch-sub001/model"
)

// entry is one cached record plus its bookkeeping. timestamp doubles as the
// LRU access time: it is refreshed on every successful Get.
type entry struct {
	key       Key
	record    model.Record
	timestamp time.Time
	expiresAt time.Time
	size      int64
}

func (e *entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// Engine is the bounded, TTL-based, LRU-evicting record cache.
// All methods are safe for concurrent use.
type Engine struct {
	mu          sync.Mutex
	cfg         Config
	entries     map[string]*entry
	memoryUsage int64
	hitRate     float64
	missRate    float64

	store      blobstore.Store
	codec      codec.Codec
	compressor Compressor
	logger     *slog.Logger
	metrics    MetricsCollector

	sweepStop chan struct{}
	sweepDone chan struct{}
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithLogger sets the structured logger. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCodec sets the snapshot codec. Defaults to codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(e *Engine) {
		if c != nil {
			e.codec = c
		}
	}
}

// MetricsCollector receives the outcome of expiry sweeps. The root
// package's collector satisfies it.
type MetricsCollector interface {
	RecordCacheCleanup(removed int, bytesFreed int64)
}

type noopMetrics struct{}

func (noopMetrics) RecordCacheCleanup(int, int64) {}

// WithMetrics sets the sweep metrics sink. Defaults to a no-op.
func WithMetrics(mc MetricsCollector) Option {
	return func(e *Engine) {
		if mc != nil {
			e.metrics = mc
		}
	}
}

// New creates a cache engine mirrored to store. A nil store disables
// persistence regardless of configuration. Construction never fails on a
// bad snapshot: corruption is logged and the engine starts cold.
func New(store blobstore.Store, cfg Config, optFns ...Option) *Engine {
	e := &Engine{
		cfg:     cfg.withDefaults(),
		entries: make(map[string]*entry),
		store:   store,
		codec:   codec.Default,
		logger:  slog.New(slog.DiscardHandler),
		metrics: noopMetrics{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(e)
		}
	}

	if comp, ok := CompressorByName(e.cfg.Compressor); ok {
		e.compressor = comp
	} else {
		e.logger.Warn("unknown compressor, snapshots stored uncompressed",
			"compressor", e.cfg.Compressor)
	}

	if e.persistent() {
		e.restore(context.Background())
	}
	e.startSweeper()
	return e
}

func (e *Engine) persistent() bool {
	return e.cfg.EnablePersistence && e.store != nil
}

// Set stores a record under key with the default TTL.
func (e *Engine) Set(ctx context.Context, key Key, rec model.Record) {
	e.SetWithTTL(ctx, key, rec, 0)
}

// SetWithTTL stores a record under key. ttl <= 0 falls back to the default.
// If the cache is at capacity, least-recently-used entries are evicted until
// a slot frees up. The whole store is written through to the durable mirror;
// a mirror failure is logged, never returned.
func (e *Engine) SetWithTTL(ctx context.Context, key Key, rec model.Record, ttl time.Duration) {
	if ttl <= 0 {
		ttl = e.cfg.DefaultTTL
	}
	now := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	ks := key.String()
	if _, exists := e.entries[ks]; !exists && len(e.entries) >= e.cfg.MaxEntries {
		e.evictLocked(len(e.entries) - e.cfg.MaxEntries + 1)
	}
	if old, exists := e.entries[ks]; exists {
		e.memoryUsage -= old.size
		delete(e.entries, ks)
	}

	ent := &entry{
		key:       key,
		record:    rec,
		timestamp: now,
		expiresAt: now.Add(ttl),
		size:      e.recordSize(rec),
	}
	e.entries[ks] = ent
	e.memoryUsage += ent.size

	e.persistLocked(ctx)
}

// Get returns the record under key. An expired entry is removed, re-mirrored
// and reported as a miss. A hit refreshes the entry's access time.
func (e *Engine) Get(ctx context.Context, key Key) (model.Record, bool) {
	now := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	ent, ok := e.entries[key.String()]
	if !ok {
		e.recordMissLocked()
		return model.Record{}, false
	}
	if ent.expired(now) {
		e.removeLocked(key.String())
		e.persistLocked(ctx)
		e.recordMissLocked()
		return model.Record{}, false
	}

	ent.timestamp = now
	e.recordHitLocked()
	return ent.record, true
}

// Has reports whether a live entry exists under key. It never mutates access
// times or hit/miss rates, and leaves expired entries in place for the
// sweeper or a later Get to reclaim.
func (e *Engine) Has(key Key) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, ok := e.entries[key.String()]
	return ok && !ent.expired(time.Now())
}

// Delete removes the entry under key, reporting whether it existed.
func (e *Engine) Delete(ctx context.Context, key Key) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.entries[key.String()]; !ok {
		return false
	}
	e.removeLocked(key.String())
	e.persistLocked(ctx)
	return true
}

// Clear removes every entry.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.entries = make(map[string]*entry)
	e.memoryUsage = 0
	e.persistLocked(ctx)
}

// ClearInstance removes every entry belonging to the given instance and
// returns the number removed.
func (e *Engine) ClearInstance(ctx context.Context, instanceID int64) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	removed := 0
	for ks, ent := range e.entries {
		if ent.key.InstanceID == instanceID {
			e.removeLocked(ks)
			removed++
		}
	}
	if removed > 0 {
		e.persistLocked(ctx)
	}
	return removed
}

// Cleanup removes every expired entry in one pass, returning the count
// removed and the bytes freed. The sweeper calls this on its interval;
// callers may invoke it directly.
func (e *Engine) Cleanup(ctx context.Context) (int, int64) {
	now := time.Now()

	e.mu.Lock()
	removed := 0
	var freed int64
	for ks, ent := range e.entries {
		if ent.expired(now) {
			freed += ent.size
			e.removeLocked(ks)
			removed++
		}
	}
	if removed > 0 {
		e.persistLocked(ctx)
	}
	e.mu.Unlock()

	if removed > 0 {
		e.logger.Info("cache cleanup", "removed", removed, "bytes_freed", freed)
	}
	e.metrics.RecordCacheCleanup(removed, freed)
	return removed, freed
}

// warmupLimit caps how many records one Warmup call loads.
const warmupLimit = 50

// Warmup bulk-loads the first records of a freshly fetched batch as
// individual entries with the default TTL, then trims to capacity and
// mirrors once. Intended for session start.
func (e *Engine) Warmup(ctx context.Context, instanceID int64, recordType string, records []model.Record) int {
	if len(records) > warmupLimit {
		records = records[:warmupLimit]
	}
	now := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, rec := range records {
		key := Key{InstanceID: instanceID, RecordID: rec.ID, Type: recordType}
		ks := key.String()
		if old, exists := e.entries[ks]; exists {
			e.memoryUsage -= old.size
		}
		ent := &entry{
			key:       key,
			record:    rec,
			timestamp: now,
			expiresAt: now.Add(e.cfg.DefaultTTL),
			size:      e.recordSize(rec),
		}
		e.entries[ks] = ent
		e.memoryUsage += ent.size
	}
	if over := len(e.entries) - e.cfg.MaxEntries; over > 0 {
		e.evictLocked(over)
	}
	e.persistLocked(ctx)
	return len(records)
}

// Stats returns a point-in-time view of cache health.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Stats{
		TotalEntries: len(e.entries),
		MemoryUsage:  e.memoryUsage,
		HitRate:      e.hitRate,
		MissRate:     e.missRate,
	}
}

// UpdateConfig applies a new configuration. A changed cleanup interval
// restarts the sweeper.
func (e *Engine) UpdateConfig(cfg Config) {
	e.mu.Lock()
	cfg = cfg.withDefaults()
	restart := cfg.CleanupInterval != e.cfg.CleanupInterval
	e.cfg = cfg
	if comp, ok := CompressorByName(cfg.Compressor); ok {
		e.compressor = comp
	}
	e.mu.Unlock()

	if restart {
		e.stopSweeper()
		e.startSweeper()
	}
}

// Close stops the sweeper. The durable mirror already reflects the last
// mutation, so no final flush is needed.
func (e *Engine) Close() error {
	e.stopSweeper()
	return nil
}

// evictLocked removes n entries in ascending last-access order, ties broken
// by key string for stability.
func (e *Engine) evictLocked(n int) {
	if n <= 0 {
		return
	}
	candidates := make([]*entry, 0, len(e.entries))
	for _, ent := range e.entries {
		candidates = append(candidates, ent)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].timestamp.Equal(candidates[j].timestamp) {
			return candidates[i].key.String() < candidates[j].key.String()
		}
		return candidates[i].timestamp.Before(candidates[j].timestamp)
	})
	if n > len(candidates) {
		n = len(candidates)
	}
	for _, ent := range candidates[:n] {
		e.removeLocked(ent.key.String())
		e.logger.Debug("cache evict", "key", ent.key.String())
	}
}

func (e *Engine) removeLocked(ks string) {
	if ent, ok := e.entries[ks]; ok {
		e.memoryUsage -= ent.size
		delete(e.entries, ks)
	}
}

func (e *Engine) recordHitLocked() {
	f := e.cfg.RateSmoothing
	e.hitRate = (1-f)*e.hitRate + f
	e.missRate = (1 - f) * e.missRate
}

func (e *Engine) recordMissLocked() {
	f := e.cfg.RateSmoothing
	e.missRate = (1-f)*e.missRate + f
	e.hitRate = (1 - f) * e.hitRate
}

// recordSize approximates an entry's memory footprint by its serialized
// size. Serialization failures count as zero and are logged.
func (e *Engine) recordSize(rec model.Record) int64 {
	b, err := e.codec.Marshal(rec)
	if err != nil {
		e.logger.Warn("record size estimation failed", "error", err)
		return 0
	}
	return int64(len(b))
}

// persistLocked writes the whole entry map through to the durable mirror.
// Failures are logged and swallowed: the in-memory store is authoritative.
func (e *Engine) persistLocked(ctx context.Context) {
	if !e.persistent() {
		return
	}
	blob, err := encodeSnapshot(e.entries, e.codec, e.compressor, e.cfg.CompressionThreshold)
	if err != nil {
		e.logger.Warn("cache snapshot encode failed", "error", err)
		return
	}
	if err := e.store.Set(ctx, e.cfg.StorageKey, blob); err != nil {
		e.logger.Warn("cache snapshot write failed", "key", e.cfg.StorageKey, "error", err)
	}
}

// restore loads the snapshot written by a previous session, silently
// discarding entries that expired in the meantime. Corruption degrades to a
// cold start.
func (e *Engine) restore(ctx context.Context) {
	blob, err := e.store.Get(ctx, e.cfg.StorageKey)
	if err != nil {
		if !errors.Is(err, blobstore.ErrNotFound) {
			e.logger.Warn("cache snapshot read failed", "error", err)
		}
		return
	}

	wire, err := decodeSnapshot(blob)
	if err != nil {
		e.logger.Warn("cache snapshot corrupt, starting cold", "error", err)
		return
	}

	now := time.Now()
	for ks, se := range wire {
		if now.After(se.ExpiresAt) {
			continue
		}
		key, ok := parseKey(ks)
		if !ok {
			e.logger.Warn("cache snapshot entry skipped", "key", ks)
			continue
		}
		ent := &entry{
			key:       key,
			record:    se.Data,
			timestamp: se.Timestamp,
			expiresAt: se.ExpiresAt,
			size:      e.recordSize(se.Data),
		}
		e.entries[ks] = ent
		e.memoryUsage += ent.size
	}
	e.logger.Info("cache restored", "entries", len(e.entries))
}

func (e *Engine) startSweeper() {
	e.mu.Lock()
	interval := e.cfg.CleanupInterval
	e.mu.Unlock()

	stop := make(chan struct{})
	done := make(chan struct{})

	e.mu.Lock()
	e.sweepStop = stop
	e.sweepDone = done
	e.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				e.Cleanup(context.Background())
			case <-stop:
				return
			}
		}
	}()
}

func (e *Engine) stopSweeper() {
	e.mu.Lock()
	stop, done := e.sweepStop, e.sweepDone
	e.sweepStop, e.sweepDone = nil, nil
	e.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
}
