package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardKeyPrefix = "chuta:msg:"

// RedisGuard remembers handled message keys in Redis so several bot replicas
// never process the same message twice.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuard(addr, password string, db int, ttl time.Duration) (*RedisGuard, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultGuardTTL
	}
	return &RedisGuard{client: client, ttl: ttl}, nil
}

// FirstSeen reports whether key is claimed for the first time within the TTL.
func (r *RedisGuard) FirstSeen(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, guardKeyPrefix+key, time.Now().Unix(), r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim message %s: %w", key, err)
	}
	return ok, nil
}

// Release drops the claim on key.
func (r *RedisGuard) Release(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, guardKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release message %s: %w", key, err)
	}
	return nil
}

// Close closes connection with Redis
func (r *RedisGuard) Close() error {
	return r.client.Close()
}
