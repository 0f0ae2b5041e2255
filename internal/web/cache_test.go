package web

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*EntityCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewEntityCache(client, ttl), mr
}

func TestEntityCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "g-1", []byte(`{"guid":"g-1"}`)))

	value, err := cache.Get(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"guid":"g-1"}`), value)
}

func TestEntityCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	_, err := cache.Get(context.Background(), "absent")
	require.Error(t, err)

	var miss ErrCacheMiss
	require.ErrorAs(t, err, &miss)
	assert.Equal(t, "absent", miss.Key)
}

func TestEntityCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t, time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "g-1", []byte("body")))
	mr.FastForward(2 * time.Second)

	_, err := cache.Get(ctx, "g-1")
	var miss ErrCacheMiss
	assert.ErrorAs(t, err, &miss)
}

func TestEntityCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "g-1", []byte("body")))
	require.NoError(t, cache.Invalidate(ctx, "g-1"))

	_, err := cache.Get(ctx, "g-1")
	var miss ErrCacheMiss
	assert.ErrorAs(t, err, &miss)
}
