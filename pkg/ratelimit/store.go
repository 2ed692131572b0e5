package ratelimit

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewStore picks the counter store named by cfg.Store. The Redis client is
// only required for the redis store.
func NewStore(cfg Config, client redis.UniversalClient) (Store, error) {
	switch cfg.Store {
	case "", StoreMemory:
		return NewMemoryStore(), nil
	case StoreRedis:
		return NewRedisStore(client)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Store)
	}
}
