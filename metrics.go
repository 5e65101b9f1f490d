package dashwatch

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    searchHistogram prometheus.Histogram
//	    cacheHits       prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordCacheGet(hit bool, duration time.Duration) {
//	    if hit {
//	        p.cacheHits.Inc()
//	    }
//	}
type MetricsCollector interface {
	// RecordCacheSet is called after each cache write, including warmup
	// entries.
	RecordCacheSet(duration time.Duration)

	// RecordCacheGet is called after each cache read. hit is false for
	// misses and expired reads.
	RecordCacheGet(hit bool, duration time.Duration)

	// RecordCacheDelete is called after each explicit removal (delete,
	// clear, clear-for-instance).
	RecordCacheDelete(removed int, duration time.Duration)

	// RecordCacheCleanup is called after each expiry sweep, whether run
	// by the background sweeper or invoked directly. removed may be zero.
	RecordCacheCleanup(removed int, bytesFreed int64)

	// RecordSearch is called after each search. total is the
	// pre-pagination match count; err is nil on success.
	RecordSearch(total int, duration time.Duration, err error)

	// RecordIndexUpdate is called after each push-model index mutation.
	RecordIndexUpdate(upserted, removed int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCacheSet(time.Duration)           {}
func (NoopMetricsCollector) RecordCacheGet(bool, time.Duration)     {}
func (NoopMetricsCollector) RecordCacheDelete(int, time.Duration)   {}
func (NoopMetricsCollector) RecordCacheCleanup(int, int64)          {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordIndexUpdate(int, int)             {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CacheSets        atomic.Int64
	CacheGets        atomic.Int64
	CacheHits        atomic.Int64
	CacheDeletes     atomic.Int64
	CleanupRuns      atomic.Int64
	CleanupRemoved   atomic.Int64
	CleanupBytes     atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	IndexUpserts     atomic.Int64
	IndexRemovals    atomic.Int64
}

// RecordCacheSet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheSet(time.Duration) {
	b.CacheSets.Add(1)
}

// RecordCacheGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheGet(hit bool, _ time.Duration) {
	b.CacheGets.Add(1)
	if hit {
		b.CacheHits.Add(1)
	}
}

// RecordCacheDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheDelete(removed int, _ time.Duration) {
	b.CacheDeletes.Add(int64(removed))
}

// RecordCacheCleanup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheCleanup(removed int, bytesFreed int64) {
	b.CleanupRuns.Add(1)
	b.CleanupRemoved.Add(int64(removed))
	b.CleanupBytes.Add(bytesFreed)
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(_ int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// RecordIndexUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIndexUpdate(upserted, removed int) {
	b.IndexUpserts.Add(int64(upserted))
	b.IndexRemovals.Add(int64(removed))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CacheSets:      b.CacheSets.Load(),
		CacheGets:      b.CacheGets.Load(),
		CacheHits:      b.CacheHits.Load(),
		CacheDeletes:   b.CacheDeletes.Load(),
		CleanupRuns:    b.CleanupRuns.Load(),
		CleanupRemoved: b.CleanupRemoved.Load(),
		CleanupBytes:   b.CleanupBytes.Load(),
		SearchCount:    b.SearchCount.Load(),
		SearchErrors:   b.SearchErrors.Load(),
		SearchAvgNanos: b.getAvgSearchNanos(),
		IndexUpserts:   b.IndexUpserts.Load(),
		IndexRemovals:  b.IndexRemovals.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSearchNanos() int64 {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return b.SearchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CacheSets      int64
	CacheGets      int64
	CacheHits      int64
	CacheDeletes   int64
	CleanupRuns    int64
	CleanupRemoved int64
	CleanupBytes   int64
	SearchCount    int64
	SearchErrors   int64
	SearchAvgNanos int64
	IndexUpserts   int64
	IndexRemovals  int64
}
