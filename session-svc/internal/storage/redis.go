package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const SweepLockKey = "sweep:deadline"

// releaseScript deletes the lease only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisSweepLock is a lease shared by every session-svc replica.
type RedisSweepLock struct {
	Client *redis.Client
	TTL    time.Duration
	token  string
}

func NewRedisSweepLock(client *redis.Client, ttl time.Duration) *RedisSweepLock {
	return &RedisSweepLock{Client: client, TTL: ttl, token: uuid.NewString()}
}

func (l *RedisSweepLock) Acquire(ctx context.Context) (bool, error) {
	return l.Client.SetNX(ctx, SweepLockKey, l.token, l.TTL).Result()
}

func (l *RedisSweepLock) Release(ctx context.Context) error {
	return releaseScript.Run(ctx, l.Client, []string{SweepLockKey}, l.token).Err()
}
