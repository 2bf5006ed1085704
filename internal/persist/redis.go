package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV stores records as plain Redis strings under a key prefix.
type RedisKV struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

func NewRedisKV(client *redis.Client, prefix string, timeout time.Duration) *RedisKV {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &RedisKV{client: client, prefix: prefix, timeout: timeout}
}

// DialRedis connects to addr and verifies the server answers a PING.
func DialRedis(ctx context.Context, addr, prefix string) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return NewRedisKV(client, prefix, 0), nil
}

func (r *RedisKV) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisKV) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}
