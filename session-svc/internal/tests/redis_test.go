package tests

import (
	"context"
	"testing"
	"time"

	"meal-together/session-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSweepLock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	ctx := context.Background()

	first := storage.NewRedisSweepLock(client, time.Minute)
	second := storage.NewRedisSweepLock(client, time.Minute)

	ok, err := first.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "lease is held by the first replica")

	require.NoError(t, second.Release(ctx))
	assert.True(t, mr.Exists(storage.SweepLockKey), "a replica cannot release a lease it does not hold")

	require.NoError(t, first.Release(ctx))
	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisSweepLock_Expires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	ctx := context.Background()

	stuck := storage.NewRedisSweepLock(client, 50*time.Second)
	ok, err := stuck.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(51 * time.Second)

	ok, err = storage.NewRedisSweepLock(client, 50*time.Second).Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}
