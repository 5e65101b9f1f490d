package dashwatch

import (
	"context"
	"time"

	"github.com/daryllundy/gitlab-dashwatch-sub001/blobstore"
	"github.com/daryllundy/gitlab-dashwatch-sub001/cache"
	"github.com/daryllundy/gitlab-dashwatch-sub001/codec"
	"github.com/daryllundy/gitlab-dashwatch-sub001/model"
	"github.com/daryllundy/gitlab-dashwatch-sub001/search"
)

// Dashwatch owns one cache engine and one search engine and exposes the
// caller-facing API over both. The two stores hold the same logical data but
// are populated independently: cache writes do not reach the search index
// until the producer calls UpdateSearchIndex.
type Dashwatch struct {
	cache     *cache.Engine
	search    *search.Engine
	store     blobstore.Store
	ownsStore bool
	logger    *Logger
	metrics   MetricsCollector
}

// New creates a Dashwatch with both engines ready. Construction never fails
// on a corrupt cache snapshot; the cache simply starts cold.
func New(optFns ...Option) (*Dashwatch, error) {
	opts := options{
		codec:            codec.Default,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		cacheConfig:      cache.DefaultConfig(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	ownsStore := false
	if opts.store == nil {
		opts.store = blobstore.NewMemory()
		ownsStore = true
	}

	searchOptFns := append([]func(*search.Options){func(o *search.Options) {
		o.Logger = opts.logger.Logger
	}}, opts.searchOptFns...)

	return &Dashwatch{
		cache: cache.New(opts.store, opts.cacheConfig,
			cache.WithLogger(opts.logger.Logger),
			cache.WithCodec(opts.codec),
			cache.WithMetrics(opts.metricsCollector),
		),
		search:    search.New(searchOptFns...),
		store:     opts.store,
		ownsStore: ownsStore,
		logger:    opts.logger,
		metrics:   opts.metricsCollector,
	}, nil
}

// CacheSet stores a record under key with the default TTL.
func (d *Dashwatch) CacheSet(ctx context.Context, key cache.Key, rec model.Record) {
	d.CacheSetWithTTL(ctx, key, rec, 0)
}

// CacheSetWithTTL stores a record under key; ttl <= 0 falls back to the
// configured default.
func (d *Dashwatch) CacheSetWithTTL(ctx context.Context, key cache.Key, rec model.Record, ttl time.Duration) {
	start := time.Now()
	d.cache.SetWithTTL(ctx, key, rec, ttl)
	d.metrics.RecordCacheSet(time.Since(start))
	d.logger.LogCacheSet(ctx, key)
}

// CacheGet returns the record under key, or ErrRecordNotFound on a miss.
// Expired entries read as misses and are reclaimed in place.
func (d *Dashwatch) CacheGet(ctx context.Context, key cache.Key) (model.Record, error) {
	start := time.Now()
	rec, ok := d.cache.Get(ctx, key)
	d.metrics.RecordCacheGet(ok, time.Since(start))
	d.logger.LogCacheGet(ctx, key, ok)
	if !ok {
		return model.Record{}, ErrRecordNotFound
	}
	return rec, nil
}

// CacheHas reports whether a live entry exists under key, without touching
// access times or hit/miss rates.
func (d *Dashwatch) CacheHas(key cache.Key) bool {
	return d.cache.Has(key)
}

// CacheDelete removes the entry under key, reporting whether it existed.
func (d *Dashwatch) CacheDelete(ctx context.Context, key cache.Key) bool {
	start := time.Now()
	ok := d.cache.Delete(ctx, key)
	if ok {
		d.metrics.RecordCacheDelete(1, time.Since(start))
	}
	return ok
}

// CacheClear removes every cache entry.
func (d *Dashwatch) CacheClear(ctx context.Context) {
	start := time.Now()
	removed := d.cache.Stats().TotalEntries
	d.cache.Clear(ctx)
	d.metrics.RecordCacheDelete(removed, time.Since(start))
}

// CacheClearInstance removes every cache entry belonging to an instance and
// returns the number removed.
func (d *Dashwatch) CacheClearInstance(ctx context.Context, instanceID int64) int {
	start := time.Now()
	removed := d.cache.ClearInstance(ctx, instanceID)
	d.metrics.RecordCacheDelete(removed, time.Since(start))
	return removed
}

// CacheWarmup bulk-loads a freshly fetched batch into the cache with the
// default TTL and returns the number loaded.
func (d *Dashwatch) CacheWarmup(ctx context.Context, instanceID int64, recordType string, records []model.Record) int {
	start := time.Now()
	loaded := d.cache.Warmup(ctx, instanceID, recordType, records)
	d.metrics.RecordCacheSet(time.Since(start))
	d.logger.LogWarmup(ctx, instanceID, loaded)
	return loaded
}

// CacheStats returns a point-in-time view of cache health.
func (d *Dashwatch) CacheStats() cache.Stats {
	return d.cache.Stats()
}

// UpdateCacheConfig applies a new cache configuration; a changed cleanup
// interval restarts the sweeper.
func (d *Dashwatch) UpdateCacheConfig(cfg cache.Config) {
	d.cache.UpdateConfig(cfg)
}

// Search runs the full pipeline against the search index.
func (d *Dashwatch) Search(ctx context.Context, q search.Query) (*search.Result, error) {
	start := time.Now()
	res, err := d.search.Search(ctx, q)
	err = translateError(err)

	total := 0
	if res != nil {
		total = res.TotalCount
	}
	d.metrics.RecordSearch(total, time.Since(start), err)
	d.logger.LogSearch(ctx, q.Text, total, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetSearchHistory returns the query history, most recent first.
func (d *Dashwatch) GetSearchHistory() []search.HistoryEntry {
	return d.search.History()
}

// ClearSearchHistory drops the query history.
func (d *Dashwatch) ClearSearchHistory() {
	d.search.ClearHistory()
}

// SaveSearch stores a named query for reuse.
func (d *Dashwatch) SaveSearch(name string, q search.Query, public bool) search.SavedSearch {
	return d.search.SaveSearch(name, q, public)
}

// GetSavedSearches returns every saved search, newest first.
func (d *Dashwatch) GetSavedSearches() []search.SavedSearch {
	return d.search.SavedSearches()
}

// ExecuteSavedSearch re-runs a saved query, bumping its usage bookkeeping.
// An unknown id fails with ErrSavedSearchNotFound.
func (d *Dashwatch) ExecuteSavedSearch(ctx context.Context, id string) (*search.Result, error) {
	start := time.Now()
	res, err := d.search.ExecuteSavedSearch(ctx, id)
	err = translateError(err)

	total := 0
	if res != nil {
		total = res.TotalCount
	}
	d.metrics.RecordSearch(total, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteSavedSearch removes a saved search. An unknown id fails with
// ErrSavedSearchNotFound.
func (d *Dashwatch) DeleteSavedSearch(id string) error {
	return translateError(d.search.DeleteSavedSearch(id))
}

// GetSearchAnalytics returns a point-in-time view of search usage.
func (d *Dashwatch) GetSearchAnalytics() search.Analytics {
	return d.search.Analytics()
}

// GetSearchSuggestions returns up to limit completions for a partial query,
// unioned from history, popular queries and indexed record names.
func (d *Dashwatch) GetSearchSuggestions(partial string, limit int) []string {
	return d.search.Suggestions(partial, limit)
}

// GetFilterPresets returns the fixed list of filter templates.
func (d *Dashwatch) GetFilterPresets() []search.FilterPreset {
	return search.FilterPresets(time.Now())
}

// UpdateSearchIndex pushes records into the search index. The index is
// push-fed: cache writes are not reflected here until the producer calls
// this.
func (d *Dashwatch) UpdateSearchIndex(ctx context.Context, records []model.Record) {
	d.search.UpdateIndex(records)
	d.metrics.RecordIndexUpdate(len(records), 0)
	d.logger.LogIndexUpdate(ctx, len(records), 0)
}

// RemoveFromSearchIndex drops records from the search index by id.
func (d *Dashwatch) RemoveFromSearchIndex(ctx context.Context, ids []int64) {
	d.search.RemoveFromIndex(ids)
	d.metrics.RecordIndexUpdate(0, len(ids))
	d.logger.LogIndexUpdate(ctx, 0, len(ids))
}

// Close stops the cache sweeper and, if the durable store was created here,
// closes it. Stores passed in via WithStore are the caller's to close.
func (d *Dashwatch) Close() error {
	err := d.cache.Close()
	if d.ownsStore {
		if cerr := d.store.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
