package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stats struct {
	TotalLessons int `json:"totalLessons"`
}

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheService(client), mr
}

func TestCacheService_SetGetDelete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", stats{TotalLessons: 3}, time.Minute))
	assert.True(t, mr.Exists("k"))

	var got stats
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, 3, got.TotalLessons)

	require.NoError(t, c.Delete(ctx, "k"))
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestCacheService_TTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", stats{TotalLessons: 1}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var got stats
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestCacheService_GetOrSet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func() (interface{}, error) {
		calls++
		return stats{TotalLessons: 7}, nil
	}

	var first, second stats
	require.NoError(t, c.GetOrSet(ctx, "k", &first, time.Minute, loader))
	require.NoError(t, c.GetOrSet(ctx, "k", &second, time.Minute, loader))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 7, first.TotalLessons)
	assert.Equal(t, 7, second.TotalLessons)

	loadErr := errors.New("db down")
	var third stats
	err := c.GetOrSet(ctx, "other", &third, time.Minute, func() (interface{}, error) { return nil, loadErr })
	assert.ErrorIs(t, err, loadErr)
}

func TestCacheService_NilIsAlwaysMiss(t *testing.T) {
	var c *CacheService
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	assert.NoError(t, c.Delete(ctx, "k"))

	var got stats
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
	require.NoError(t, c.GetOrSet(ctx, "k", &got, time.Minute, func() (interface{}, error) {
		return stats{TotalLessons: 2}, nil
	}))
	assert.Equal(t, 2, got.TotalLessons)
}
