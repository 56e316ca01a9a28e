// Package ratelimit provides a Redis-backed sliding window rate
// limiter used to throttle the public authentication endpoints.
package ratelimit

import (
	"time"
)

// Config holds rate limiter configuration.
type Config struct {
	// RedisAddr is the Redis server address (e.g., "localhost:6379").
	// An empty address disables rate limiting entirely.
	RedisAddr string

	// RedisPassword is the Redis authentication password (optional).
	RedisPassword string

	// RedisDB is the Redis database number (default: 0).
	RedisDB int

	// Attempts is the number of requests allowed per client per window.
	Attempts int

	// Window is the time window the attempt budget applies to.
	Window time.Duration

	// KeyPrefix is the prefix for Redis keys (default: "authlimit:").
	KeyPrefix string
}

// DefaultConfig returns a config with sensible defaults for login and
// registration throttling.
func DefaultConfig() Config {
	return Config{
		RedisAddr:     "",
		RedisPassword: "",
		RedisDB:       0,
		Attempts:      10,
		Window:        time.Minute,
		KeyPrefix:     "authlimit:",
	}
}

// Option is a function that modifies Config.
type Option func(*Config)

// WithRedisAddr sets the Redis server address.
func WithRedisAddr(addr string) Option {
	return func(c *Config) {
		c.RedisAddr = addr
	}
}

// WithRedisPassword sets the Redis authentication password.
func WithRedisPassword(password string) Option {
	return func(c *Config) {
		c.RedisPassword = password
	}
}

// WithRedisDB sets the Redis database number.
func WithRedisDB(db int) Option {
	return func(c *Config) {
		c.RedisDB = db
	}
}

// WithAttempts sets the attempt budget and its window.
func WithAttempts(attempts int, window time.Duration) Option {
	return func(c *Config) {
		c.Attempts = attempts
		c.Window = window
	}
}

// WithKeyPrefix sets the Redis key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(c *Config) {
		c.KeyPrefix = prefix
	}
}
