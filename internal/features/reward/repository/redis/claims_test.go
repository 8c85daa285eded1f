package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*ClaimStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewClaimStore(client, time.Hour), mr
}

func TestClaim_OnlyOnce(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	ok, err := store.Claim(ctx, "u-1", "lesson-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Claim(ctx, "u-1", "lesson-1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Claim(ctx, "u-1", "lesson-2")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, time.Hour, mr.TTL("reward:claim:u-1:lesson-1"))
}

func TestClaim_ReleaseAndExpiry(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	ok, err := store.Claim(ctx, "u-1", "lesson-1")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Release(ctx, "u-1", "lesson-1"))
	ok, err = store.Claim(ctx, "u-1", "lesson-1")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Hour)
	ok, err = store.Claim(ctx, "u-1", "lesson-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClaim_RedisDown(t *testing.T) {
	store, mr := newStore(t)
	mr.Close()

	_, err := store.Claim(context.Background(), "u-1", "lesson-1")
	assert.Error(t, err)
}
