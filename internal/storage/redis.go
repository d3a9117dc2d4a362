package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV stores each key as a single Redis string. The blob-per-key
// layout is identical to the other backends, Redis just makes it
// survive restarts and serve more than one process.
type RedisKV struct {
	rdb     *redis.Client
	timeout time.Duration
}

func NewRedisKV(addr string) *RedisKV {
	return &RedisKV{
		rdb:     redis.NewClient(&redis.Options{Addr: addr}),
		timeout: 2 * time.Second,
	}
}

func (r *RedisKV) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	v, err := r.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisKV) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.rdb.Set(ctx, key, value, 0).Err()
}

func (r *RedisKV) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.rdb.Del(ctx, key).Err()
}
