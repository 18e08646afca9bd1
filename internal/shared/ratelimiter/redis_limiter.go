package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window limiter shared by every server instance.
// Each window is a counter key that expires with the window.
type RedisLimiter struct {
	rdb      *redis.Client
	limit    int
	interval time.Duration
	prefix   string
}

var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter creates a RedisLimiter storing counters under prefix.
func NewRedisLimiter(rdb *redis.Client, limit int, interval time.Duration, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisLimiter{rdb: rdb, limit: limit, interval: interval, prefix: prefix}
}

// Allow increments the caller's counter, starting the window on the first call.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := fmt.Sprintf("%s:%s", l.prefix, key)

	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit counter: %w", err)
	}
	if n == 1 {
		if err := l.rdb.PExpire(ctx, k, l.interval).Err(); err != nil {
			return false, 0, fmt.Errorf("rate limit expiry: %w", err)
		}
	}
	if n <= int64(l.limit) {
		return true, 0, nil
	}

	ttl, err := l.rdb.PTTL(ctx, k).Result()
	if err != nil {
		return false, l.interval, nil
	}
	if ttl < 0 {
		// Counter lost its expiry; restart the window.
		_ = l.rdb.PExpire(ctx, k, l.interval).Err()
		ttl = l.interval
	}
	return false, ttl, nil
}
