package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TeTedo/polymarket-arbitrage-chance/internal/domain"
)

// BookCache stores orderbook snapshots in Redis with a short TTL. The buy and
// sell evaluations of one market read the same two books, so a fresh snapshot
// halves the CLOB traffic per market.
type BookCache struct {
	client *Client
	ttl    time.Duration
}

var _ domain.BookCache = (*BookCache)(nil)

// NewBookCache creates a BookCache whose entries expire after ttl.
func NewBookCache(client *Client, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

func bookKey(assetID string) string {
	return "book:" + assetID
}

// Set caches a snapshot under its asset ID.
func (c *BookCache) Set(ctx context.Context, snap domain.OrderbookSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("redis: marshal book %s: %w", snap.AssetID, err)
	}
	if err := c.client.rdb.Set(ctx, bookKey(snap.AssetID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis: cache book %s: %w", snap.AssetID, err)
	}
	return nil
}

// Get returns the cached snapshot for assetID, or domain.ErrNotFound on a
// miss.
func (c *BookCache) Get(ctx context.Context, assetID string) (domain.OrderbookSnapshot, error) {
	data, err := c.client.rdb.Get(ctx, bookKey(assetID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.OrderbookSnapshot{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.OrderbookSnapshot{}, fmt.Errorf("redis: get book %s: %w", assetID, err)
	}

	var snap domain.OrderbookSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.OrderbookSnapshot{}, fmt.Errorf("redis: decode book %s: %w", assetID, err)
	}
	return snap, nil
}
