package domain

import "context"

// OpportunityStore persists detected opportunities.
type OpportunityStore interface {
	// Insert stores a single opportunity. It returns ErrAlreadyExists when a
	// row with the same (market, direction) key is already recorded.
	Insert(ctx context.Context, opp Opportunity) error
	// ListRecent returns the most recently recorded opportunities, newest
	// first. limit <= 0 means no limit.
	ListRecent(ctx context.Context, limit int) ([]Opportunity, error)
}
