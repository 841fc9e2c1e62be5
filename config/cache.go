package config

import (
	"main/utils"
	"time"
)

type CacheConfig struct {
	// ListTTL bounds how stale a cached experience list may be served.
	// The read cache is also invalidated synchronously on every write,
	// so the TTL only matters for writes made by another process.
	ListTTL time.Duration
}

func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		ListTTL: utils.GetEnvAsDuration("LIST_CACHE_TTL", 10*time.Second),
	}
}
