// Package service holds the persistence and alerting logic that sits between
// the scanner and the opportunity store.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/TeTedo/polymarket-arbitrage-chance/internal/domain"
)

// AlertSink receives opportunities that were newly persisted.
type AlertSink interface {
	OpportunityFound(ctx context.Context, opp domain.Opportunity)
}

// OpportunityService saves detected opportunities and raises alerts for the
// ones that are new.
type OpportunityService struct {
	store  domain.OpportunityStore
	alerts AlertSink
	logger *slog.Logger
}

// NewOpportunityService creates an OpportunityService. alerts may be nil when
// no notification channels are configured.
func NewOpportunityService(store domain.OpportunityStore, alerts AlertSink, logger *slog.Logger) *OpportunityService {
	return &OpportunityService{
		store:  store,
		alerts: alerts,
		logger: logger.With("component", "opportunity_service"),
	}
}

// SaveAll persists each opportunity independently and returns how many were
// newly stored. Duplicates are skipped silently; other insert failures are
// logged and dropped so one bad row never aborts the batch.
func (s *OpportunityService) SaveAll(ctx context.Context, opps []domain.Opportunity) int {
	saved := 0
	for _, opp := range opps {
		err := s.store.Insert(ctx, opp)
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			s.logger.Error("failed to save opportunity",
				"market_id", opp.MarketID,
				"direction", opp.Direction,
				"error", err,
			)
			continue
		}

		saved++
		s.logger.Info("opportunity saved",
			"market_id", opp.MarketID,
			"direction", opp.Direction,
			"buy_price", opp.BuyPrice,
			"sell_price", opp.SellPrice,
		)
		if s.alerts != nil {
			s.alerts.OpportunityFound(ctx, opp)
		}
	}
	return saved
}

// Recent returns up to limit of the most recently stored opportunities.
func (s *OpportunityService) Recent(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	return s.store.ListRecent(ctx, limit)
}
