package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements a fixed-window counter on Redis, shared across
// instances. Key format: ratelimit:<source>:<window_start_unix>.
type RateLimiter struct {
	client *redis.Client
	window time.Duration
	max    int64
}

// NewRateLimiter creates a limiter allowing max requests per window.
func NewRateLimiter(client *redis.Client, window time.Duration, max int64) *RateLimiter {
	if window <= 0 {
		window = 15 * time.Minute
	}
	if max <= 0 {
		max = 100
	}
	return &RateLimiter{client: client, window: window, max: max}
}

// Allow counts one request from source and reports whether it is within the
// current window's budget.
func (l *RateLimiter) Allow(ctx context.Context, source string) (bool, error) {
	windowStart := time.Now().Unix() / int64(l.window.Seconds()) * int64(l.window.Seconds())
	key := fmt.Sprintf("ratelimit:%s:%d", source, windowStart)

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}

	return count.Val() <= l.max, nil
}
