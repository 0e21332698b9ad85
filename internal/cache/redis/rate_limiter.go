package redis

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/TeTedo/polymarket-arbitrage-chance/internal/domain"
)

//go:embed scripts/sliding_window.lua
var slidingWindowSrc string

var slidingWindowScript = redis.NewScript(slidingWindowSrc)

// retryInterval is how long Wait sleeps between Allow attempts.
const retryInterval = 50 * time.Millisecond

// RateLimiter implements a sliding-window rate limiter on top of a Redis
// sorted set. Every caller sharing a key shares the same window, so the cap
// holds across all workers and across instances.
type RateLimiter struct {
	client *Client
}

var _ domain.RateLimiter = (*RateLimiter)(nil)

// NewRateLimiter creates a RateLimiter backed by the given client.
func NewRateLimiter(client *Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow reports whether a request under key fits within limit requests per
// window. When it does, the request is recorded.
func (l *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now().UnixMilli()
	member := fmt.Sprintf("%d-%s", now, uuid.NewString())

	res, err := slidingWindowScript.Run(ctx, l.client.rdb,
		[]string{"ratelimit:" + key},
		now, window.Milliseconds(), limit, member,
	).Result()
	if err != nil {
		return false, fmt.Errorf("redis: rate limit check: %w", err)
	}

	vals, ok := res.([]interface{})
	if !ok || len(vals) < 1 {
		return false, fmt.Errorf("redis: unexpected rate limit reply %T", res)
	}
	allowed, _ := vals[0].(int64)
	return allowed == 1, nil
}

// Wait blocks until a slot is available under key or ctx is done.
func (l *RateLimiter) Wait(ctx context.Context, key string, limit int, window time.Duration) error {
	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.Allow(ctx, key, limit, window)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
