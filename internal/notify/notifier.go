// Package notify fans out opportunity alerts to the configured channels.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/TeTedo/polymarket-arbitrage-chance/internal/domain"
)

// Sender delivers a message to one notification channel.
type Sender interface {
	Send(ctx context.Context, title, message string) error
	Name() string
}

// Notifier formats opportunity alerts and delivers them through all
// configured senders. A failing sender is logged and skipped so one broken
// channel never blocks the others.
type Notifier struct {
	senders []Sender
	logger  *slog.Logger
}

// New creates a Notifier. An empty sender list is valid and makes every
// notification a no-op.
func New(logger *slog.Logger, senders ...Sender) *Notifier {
	return &Notifier{
		senders: senders,
		logger:  logger.With("component", "notifier"),
	}
}

// OpportunityFound sends an alert describing a newly persisted opportunity.
func (n *Notifier) OpportunityFound(ctx context.Context, opp domain.Opportunity) {
	title := fmt.Sprintf("Arbitrage opportunity (%s)", opp.Direction)

	var b strings.Builder
	if opp.Question != "" {
		fmt.Fprintf(&b, "%s\n", opp.Question)
	}
	fmt.Fprintf(&b, "Market: %s\n", opp.MarketID)
	switch opp.Direction {
	case domain.DirectionBuy:
		fmt.Fprintf(&b, "Buy both sides at %.4f (payout 100)\n", opp.BuyPrice)
	case domain.DirectionSell:
		fmt.Fprintf(&b, "Sell both sides at %.4f (payout 100)\n", opp.SellPrice)
	}
	if opp.Link != "" {
		fmt.Fprintf(&b, "%s", opp.Link)
	}

	n.send(ctx, title, b.String())
}

func (n *Notifier) send(ctx context.Context, title, message string) {
	for _, s := range n.senders {
		if err := s.Send(ctx, title, message); err != nil {
			n.logger.Warn("notification failed",
				"sender", s.Name(),
				"error", err,
			)
		}
	}
}
