package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/TeTedo/polymarket-arbitrage-chance/internal/domain"
)

// OpportunityStore persists detected opportunities in PostgreSQL.
type OpportunityStore struct {
	client *Client
}

// compile-time interface check
var _ domain.OpportunityStore = (*OpportunityStore)(nil)

// NewOpportunityStore creates an OpportunityStore backed by the given client.
func NewOpportunityStore(client *Client) *OpportunityStore {
	return &OpportunityStore{client: client}
}

// Insert stores an opportunity. A market may hold at most one row per
// direction; re-detecting the same opportunity returns
// domain.ErrAlreadyExists and leaves the existing row untouched.
func (s *OpportunityStore) Insert(ctx context.Context, opp domain.Opportunity) error {
	const query = `
		INSERT INTO opportunities
			(market_id, yes_token, no_token, buy_price, sell_price, type, link, question)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (market_id, type) DO NOTHING`

	tag, err := s.client.Pool().Exec(ctx, query,
		opp.MarketID,
		opp.YesToken,
		opp.NoToken,
		round4(opp.BuyPrice),
		round4(opp.SellPrice),
		string(opp.Direction),
		opp.Link,
		opp.Question,
	)
	if err != nil {
		return fmt.Errorf("postgres: insert opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyExists
	}
	return nil
}

// ListRecent returns up to limit opportunities ordered newest first.
func (s *OpportunityStore) ListRecent(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	const query = `
		SELECT id, market_id, yes_token, no_token, buy_price, sell_price, type, link, question, created_at
		FROM opportunities
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := s.client.Pool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: list opportunities: %w", err)
	}
	defer rows.Close()

	var out []domain.Opportunity
	for rows.Next() {
		var opp domain.Opportunity
		var direction string
		if err := rows.Scan(
			&opp.ID,
			&opp.MarketID,
			&opp.YesToken,
			&opp.NoToken,
			&opp.BuyPrice,
			&opp.SellPrice,
			&direction,
			&opp.Link,
			&opp.Question,
			&opp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan opportunity: %w", err)
		}
		opp.Direction = domain.Direction(direction)
		out = append(out, opp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate opportunities: %w", err)
	}
	return out, nil
}

// round4 truncates price noise past four decimal places so stored values
// match the NUMERIC(10,4) column exactly.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
