package config

import "time"

// CacheConfig defines settings for the availability response cache. When
// Enabled is false or no Redis client is configured, caching is disabled.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads the CACHE_* environment variables. The default TTL
// is short: availability answers go stale the moment a booking lands, so the
// cache only absorbs bursts of reads against the same hall and date.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", 15*time.Second),
		Prefix:  envStr("CACHE_PREFIX", "cache"),
	}
}
