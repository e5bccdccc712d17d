// Package kvstore persists client state (carts, favourite sets, sessions,
// UI preferences) as one JSON value per key. Redis when configured, a local
// file directory otherwise. Corrupt stored values are treated as absent by
// callers, never as errors that reach a request.
package kvstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront.GO/config"
)

// ErrNotFound is returned when a key has no value (or the value expired).
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a minimal key-value contract. A zero ttl means no expiration.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Purger is implemented by backends that need explicit expiry sweeps
// (Redis expires keys on its own).
type Purger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

var (
	defaultOnce  sync.Once
	defaultStore Store
)

// Default returns the process-wide store: Redis if config.InitRedis connected,
// otherwise a FileStore under the configured data directory.
func Default() Store {
	defaultOnce.Do(func() {
		if config.RedisClient != nil {
			defaultStore = NewRedisStore(config.RedisClient)
			return
		}
		config.LoadAppConfig()
		defaultStore = NewFileStore(config.AppConfig.DataDir)
	})
	return defaultStore
}

// SetDefaultForTesting replaces the default store (tests only).
func SetDefaultForTesting(s Store) {
	defaultOnce.Do(func() {})
	defaultStore = s
}
