package dashwatch

import (
	"github.com/daryllundy/gitlab-dashwatch-sub001/blobstore"
	"github.com/daryllundy/gitlab-dashwatch-sub001/cache"
	"github.com/daryllundy/gitlab-dashwatch-sub001/codec"
	"github.com/daryllundy/gitlab-dashwatch-sub001/search"
)

type options struct {
	store            blobstore.Store
	codec            codec.Codec
	logger           *Logger
	metricsCollector MetricsCollector
	cacheConfig      cache.Config
	searchOptFns     []func(*search.Options)
}

// Option configures Dashwatch construction.
type Option func(*options)

// WithStore sets the durable mirror the cache writes through to.
//
// If unset, an in-memory store is created and owned by the Dashwatch
// instance (closed with it). A store passed here is the caller's to close.
func WithStore(s blobstore.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithCodec configures the codec used for cache snapshots.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger sets the structured logger. Defaults to NoopLogger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsCollector sets the metrics sink. Defaults to
// NoopMetricsCollector.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metricsCollector = mc
		}
	}
}

// WithCacheConfig overrides the cache engine configuration. Zero-valued
// fields fall back to cache.DefaultConfig, with one exception:
// EnablePersistence is taken as given, so a config built from a zero value
// runs without the durable mirror. Set it explicitly when overriding other
// fields.
func WithCacheConfig(cfg cache.Config) Option {
	return func(o *options) {
		o.cacheConfig = cfg
	}
}

// WithSearchOptions appends search engine option mutators, applied over
// search.DefaultOptions.
func WithSearchOptions(fns ...func(*search.Options)) Option {
	return func(o *options) {
		o.searchOptFns = append(o.searchOptFns, fns...)
	}
}
