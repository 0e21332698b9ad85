package scanner

import (
	"context"
	"time"

	"github.com/TeTedo/polymarket-arbitrage-chance/internal/domain"
)

// bookRateKey is the shared rate-limit bucket for all CLOB book requests.
const bookRateKey = "clob:book"

// BookClient fetches a live orderbook snapshot from the CLOB API.
type BookClient interface {
	GetBook(ctx context.Context, tokenID string) (domain.OrderbookSnapshot, error)
}

// BookSource serves orderbook snapshots, consulting a short-TTL cache before
// the CLOB API and throttling live fetches through a shared rate limiter.
// Cache and limiter are both optional.
type BookSource struct {
	client  BookClient
	cache   domain.BookCache
	limiter domain.RateLimiter

	rateLimit  int
	rateWindow time.Duration
}

// NewBookSource creates a BookSource. Pass nil cache or limiter to disable
// either.
func NewBookSource(client BookClient, cache domain.BookCache, limiter domain.RateLimiter, rateLimit int, rateWindow time.Duration) *BookSource {
	return &BookSource{
		client:     client,
		cache:      cache,
		limiter:    limiter,
		rateLimit:  rateLimit,
		rateWindow: rateWindow,
	}
}

// GetBook returns the snapshot for tokenID, from cache when fresh.
func (s *BookSource) GetBook(ctx context.Context, tokenID string) (domain.OrderbookSnapshot, error) {
	if s.cache != nil {
		if snap, err := s.cache.Get(ctx, tokenID); err == nil {
			return snap, nil
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, bookRateKey, s.rateLimit, s.rateWindow); err != nil {
			return domain.OrderbookSnapshot{}, err
		}
	}

	snap, err := s.client.GetBook(ctx, tokenID)
	if err != nil {
		return domain.OrderbookSnapshot{}, err
	}

	if s.cache != nil {
		// Cache failures are non-fatal; the next caller refetches.
		_ = s.cache.Set(ctx, snap)
	}
	return snap, nil
}
