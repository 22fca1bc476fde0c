package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements fixed-window request counting backed by Redis.
// Key format: ratelimit:<source>:<window_start_unix>. The counter expires
// with the window, so stale windows clean themselves up.
type RateLimiter struct {
	client *redis.Client
	window time.Duration
	max    int64
}

// NewRateLimiter creates a limiter allowing max requests per source per window.
func NewRateLimiter(client *redis.Client, window time.Duration, max int64) *RateLimiter {
	if window <= 0 {
		window = 15 * time.Minute
	}
	if max <= 0 {
		max = 100
	}
	return &RateLimiter{client: client, window: window, max: max}
}

// Allow counts one request from source and reports whether it is within
// quota. The INCR and EXPIRE run in one pipeline round-trip.
func (l *RateLimiter) Allow(ctx context.Context, source string) (bool, error) {
	key := l.key(source, time.Now())

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}

	return count.Val() <= l.max, nil
}

func (l *RateLimiter) key(source string, now time.Time) string {
	windowStart := now.Unix() - now.Unix()%int64(l.window.Seconds())
	return fmt.Sprintf("ratelimit:%s:%d", source, windowStart)
}
