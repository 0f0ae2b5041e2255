package web

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is not in the cache
type ErrCacheMiss struct {
	Key string
}

// Error implements the error interface
func (e ErrCacheMiss) Error() string {
	return fmt.Sprintf("cache miss: %s", e.Key)
}

// EntityCache is a Redis-backed cache of rendered entity responses. It
// caches bytes, never instances: identity preservation is an in-operation
// concern and stays out of any shared cache.
type EntityCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewEntityCache creates a cache over an existing Redis client
func NewEntityCache(client *redis.Client, ttl time.Duration) *EntityCache {
	if ttl == 0 {
		ttl = 30 * time.Second
	}
	return &EntityCache{
		client: client,
		prefix: "metagraph:entity:",
		ttl:    ttl,
	}
}

// Get retrieves a rendered response by guid
func (c *EntityCache) Get(ctx context.Context, guid string) ([]byte, error) {
	value, err := c.client.Get(ctx, c.prefix+guid).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss{Key: guid}
		}
		return nil, err
	}
	return value, nil
}

// Set stores a rendered response under a guid
func (c *EntityCache) Set(ctx context.Context, guid string, value []byte) error {
	return c.client.Set(ctx, c.prefix+guid, value, c.ttl).Err()
}

// Invalidate removes a cached response
func (c *EntityCache) Invalidate(ctx context.Context, guid string) error {
	return c.client.Del(ctx, c.prefix+guid).Err()
}
