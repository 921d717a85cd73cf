// Package cache provides the key/value store behind rate limiting and token revocation.
// Store matches fiber.Storage so the same instance can back Fiber middleware directly.
package cache

import (
	"context"
	"time"

	"reviewapi/internal/config"
)

// Store is a byte-oriented key/value store with per-key expiry.
// Get returns nil, nil for missing or expired keys.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
	Reset() error
	Close() error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// New returns a Redis store when cfg.Addr is set and an in-process store otherwise.
func New(cfg config.RedisConfig) (Store, error) {
	if cfg.Addr == "" {
		return NewMemory(time.Minute), nil
	}
	return NewRedis(cfg)
}
