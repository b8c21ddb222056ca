// Package lock serializes work on a shared key, either across replicas via
// Redis or within one process.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/backoffice-api/internal/config"
)

// ErrNotObtained is returned when the key stayed locked until ctx expired or
// retries ran out.
var ErrNotObtained = errors.New("lock not obtained")

// ReleaseFunc unlocks a key obtained from a locker.
type ReleaseFunc func(ctx context.Context) error

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 20,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// RedisLocker holds keys in Redis so every API replica sees the same lock.
type RedisLocker struct {
	client *redislock.Client
	prefix string
	retry  time.Duration
}

// NewRedisLocker wraps a Redis client. Waiting callers poll every retry
// interval until their context ends.
func NewRedisLocker(rdb redis.UniversalClient, prefix string) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(rdb),
		prefix: prefix,
		retry:  100 * time.Millisecond,
	}
}

// Obtain blocks until key is locked for ttl or ctx is done.
func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, error) {
	lk, err := l.client.Obtain(ctx, l.prefix+key, ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(l.retry),
	})
	if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return nil, fmt.Errorf("%w: %s", ErrNotObtained, key)
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}

	return func(ctx context.Context) error {
		err := lk.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			// TTL elapsed before release; another holder may own it now.
			return nil
		}
		return err
	}, nil
}
