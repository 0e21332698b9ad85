package domain

import (
	"context"
	"time"
)

// RateLimiter provides a request-rate limit shared across concurrent fetches.
type RateLimiter interface {
	// Allow reports whether one more request under key fits in the sliding
	// window; an allowed request is counted.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	// Wait blocks until a request under key is allowed or ctx is done.
	Wait(ctx context.Context, key string, limit int, window time.Duration) error
}

// LockManager provides an exclusive lock so only one scan cycle runs at a
// time across scanner instances.
type LockManager interface {
	// Acquire obtains the lock for key with the given TTL and returns an
	// unlock function. It returns ErrLockHeld when another holder owns it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (unlock func(), err error)
}

// BookCache holds recently fetched orderbook snapshots so a market's buy and
// sell candidates can share one fetch per token within a cycle.
type BookCache interface {
	Set(ctx context.Context, snap OrderbookSnapshot) error
	// Get returns the cached snapshot for a token, or ErrNotFound on a miss.
	Get(ctx context.Context, assetID string) (OrderbookSnapshot, error)
}
