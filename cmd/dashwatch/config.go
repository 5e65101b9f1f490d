package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/daryllundy/gitlab-dashwatch-sub001/blobstore"
	"github.com/daryllundy/gitlab-dashwatch-sub001/blobstore/sqlite"
	"github.com/daryllundy/gitlab-dashwatch-sub001/cache"
	"github.com/daryllundy/gitlab-dashwatch-sub001/search"
)

// config is the YAML file the CLI reads. Every field is optional; zero
// values fall back to the library defaults.
type config struct {
	Store struct {
		// Type is one of "memory", "local" or "sqlite".
		Type string `yaml:"type"`
		// Path is the directory (local) or database file (sqlite).
		Path string `yaml:"path"`
	} `yaml:"store"`

	Cache struct {
		TTLMinutes           int    `yaml:"ttlMinutes"`
		MaxEntries           int    `yaml:"maxEntries"`
		CleanupMinutes       int    `yaml:"cleanupMinutes"`
		CompressionThreshold int    `yaml:"compressionThreshold"`
		StorageKey           string `yaml:"storageKey"`
		Compressor           string `yaml:"compressor"`
	} `yaml:"cache"`

	Search struct {
		TimeoutSeconds int   `yaml:"timeoutSeconds"`
		Fuzzy          *bool `yaml:"fuzzy"`
		MaxHistory     int   `yaml:"maxHistory"`
		MaxSuggestions int   `yaml:"maxSuggestions"`
	} `yaml:"search"`
}

func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c config) openStore() (blobstore.Store, error) {
	switch c.Store.Type {
	case "", "memory":
		return blobstore.NewMemory(), nil
	case "local":
		return blobstore.NewLocal(c.Store.Path)
	case "sqlite":
		return sqlite.New(c.Store.Path)
	default:
		return nil, fmt.Errorf("unknown store type %q", c.Store.Type)
	}
}

func (c config) cacheConfig() cache.Config {
	cfg := cache.DefaultConfig()
	if c.Cache.TTLMinutes > 0 {
		cfg.DefaultTTL = time.Duration(c.Cache.TTLMinutes) * time.Minute
	}
	if c.Cache.MaxEntries > 0 {
		cfg.MaxEntries = c.Cache.MaxEntries
	}
	if c.Cache.CleanupMinutes > 0 {
		cfg.CleanupInterval = time.Duration(c.Cache.CleanupMinutes) * time.Minute
	}
	if c.Cache.CompressionThreshold > 0 {
		cfg.CompressionThreshold = c.Cache.CompressionThreshold
	}
	if c.Cache.StorageKey != "" {
		cfg.StorageKey = c.Cache.StorageKey
	}
	if c.Cache.Compressor != "" {
		cfg.Compressor = c.Cache.Compressor
	}
	return cfg
}

func (c config) searchOptions() func(*search.Options) {
	return func(o *search.Options) {
		if c.Search.TimeoutSeconds > 0 {
			o.Timeout = time.Duration(c.Search.TimeoutSeconds) * time.Second
		}
		if c.Search.Fuzzy != nil {
			o.EnableFuzzy = *c.Search.Fuzzy
		}
		if c.Search.MaxHistory > 0 {
			o.MaxHistory = c.Search.MaxHistory
		}
		if c.Search.MaxSuggestions > 0 {
			o.MaxSuggestions = c.Search.MaxSuggestions
		}
	}
}
