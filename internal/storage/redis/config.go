package redis

import "time"

// Config holds Redis connection and key settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// KeyPrefix namespaces every key, so several deployments can share one database
	KeyPrefix string

	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration

	// TTL applied on every write; zero keeps keys forever
	TTL time.Duration
}

// DefaultConfig returns the settings used when only a URL is configured
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		KeyPrefix:    "teamdraft",
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
	}
}
