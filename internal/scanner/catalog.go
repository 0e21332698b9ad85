// Package scanner drives the periodic scan cycle: fetch the market catalog,
// evaluate every eligible token pair against live orderbooks, and hand
// detected opportunities to the service layer.
package scanner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TeTedo/polymarket-arbitrage-chance/internal/domain"
)

// MarketFetcher returns one page of the market catalog.
type MarketFetcher interface {
	GetMarkets(ctx context.Context, limit, offset int) ([]domain.Market, error)
}

// Catalog walks the paginated Gamma catalog and derives evaluation
// candidates from every eligible market.
type Catalog struct {
	fetcher   MarketFetcher
	pageLimit int
	logger    *slog.Logger
}

// NewCatalog creates a Catalog that requests pageLimit markets per page.
func NewCatalog(fetcher MarketFetcher, pageLimit int, logger *slog.Logger) *Catalog {
	return &Catalog{
		fetcher:   fetcher,
		pageLimit: pageLimit,
		logger:    logger.With("component", "catalog"),
	}
}

// FetchCandidates pages through the open-market catalog and returns the
// buy/sell token pairs of every eligible binary market. Pagination stops at
// the first short or empty page. Any page fetch failure aborts the whole
// fetch, leaving the cycle to retry at its next scheduled run.
func (c *Catalog) FetchCandidates(ctx context.Context) ([]domain.TokenPair, error) {
	var pairs []domain.TokenPair
	offset := 0
	markets := 0

	for {
		page, err := c.fetcher.GetMarkets(ctx, c.pageLimit, offset)
		if err != nil {
			return nil, fmt.Errorf("scanner: fetch catalog page at offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			break
		}

		markets += len(page)
		for _, m := range page {
			pairs = append(pairs, domain.DeriveTokenPairs(m)...)
		}

		if len(page) < c.pageLimit {
			break
		}
		offset += len(page)
	}

	c.logger.Debug("catalog fetched",
		"markets", markets,
		"candidates", len(pairs),
	)
	return pairs, nil
}
