package cache

import "time"

// Config tunes the cache engine. The zero value of any field falls back to
// the corresponding default at construction.
type Config struct {
	// DefaultTTL is applied to entries stored without an explicit TTL.
	DefaultTTL time.Duration
	// MaxEntries bounds the entry count; reaching it triggers LRU eviction.
	MaxEntries int
	// CompressionThreshold is the serialized-snapshot size in bytes above
	// which snapshots are compressed before hitting the durable store.
	CompressionThreshold int
	// CleanupInterval is the period of the expired-entry sweeper.
	CleanupInterval time.Duration
	// EnablePersistence toggles the durable write-through mirror.
	EnablePersistence bool
	// StorageKey is the blob key the snapshot is stored under.
	StorageKey string
	// Compressor names the snapshot compressor ("zstd" or "lz4").
	Compressor string
	// RateSmoothing is the weight of the newest sample in the hit/miss
	// moving averages. The default 0.5 reproduces the classic
	// rate = (rate + sample) / 2 smoothing.
	RateSmoothing float64
}

// DefaultConfig returns the configuration used when fields are unset.
func DefaultConfig() Config {
	return Config{
		DefaultTTL:           30 * time.Minute,
		MaxEntries:           500,
		CompressionThreshold: 10 * 1024,
		CleanupInterval:      5 * time.Minute,
		EnablePersistence:    true,
		StorageKey:           "dashwatch-cache",
		Compressor:           "zstd",
		RateSmoothing:        0.5,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DefaultTTL <= 0 {
		c.DefaultTTL = def.DefaultTTL
	}
	if c.MaxEntries <= 0 {
		c.MaxEntries = def.MaxEntries
	}
	if c.CompressionThreshold <= 0 {
		c.CompressionThreshold = def.CompressionThreshold
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = def.CleanupInterval
	}
	if c.StorageKey == "" {
		c.StorageKey = def.StorageKey
	}
	if c.Compressor == "" {
		c.Compressor = def.Compressor
	}
	if c.RateSmoothing <= 0 || c.RateSmoothing > 1 {
		c.RateSmoothing = def.RateSmoothing
	}
	return c
}

// Stats is a point-in-time view of cache health.
type Stats struct {
	TotalEntries int     `json:"totalEntries"`
	MemoryUsage  int64   `json:"memoryUsage"`
	HitRate      float64 `json:"hitRate"`
	MissRate     float64 `json:"missRate"`
}
