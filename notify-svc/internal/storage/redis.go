package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisDeliveryLog struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDeliveryLog(client *redis.Client, ttl time.Duration) *RedisDeliveryLog {
	return &RedisDeliveryLog{Client: client, TTL: ttl}
}

func markerKey(id string) string {
	return "notification:" + id
}

func (l *RedisDeliveryLog) Delivered(ctx context.Context, id string) (bool, error) {
	n, err := l.Client.Exists(ctx, markerKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (l *RedisDeliveryLog) MarkDelivered(ctx context.Context, id string) error {
	return l.Client.Set(ctx, markerKey(id), time.Now().Unix(), l.TTL).Err()
}
