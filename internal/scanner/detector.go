package scanner

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/TeTedo/polymarket-arbitrage-chance/internal/domain"
)

// payout is the cent value a full set settles at.
const payout = 100.0

// BookProvider serves orderbook snapshots to the detector.
type BookProvider interface {
	GetBook(ctx context.Context, tokenID string) (domain.OrderbookSnapshot, error)
}

// Detector evaluates token pairs for fullset arbitrage.
type Detector struct {
	books  BookProvider
	logger *slog.Logger
}

// NewDetector creates a Detector reading books from the given provider.
func NewDetector(books BookProvider, logger *slog.Logger) *Detector {
	return &Detector{
		books:  books,
		logger: logger.With("component", "detector"),
	}
}

// Evaluate checks one token pair for a mispricing in its direction. It
// returns (nil, nil) when no opportunity exists. A pair whose books cannot
// be fetched is skipped rather than failing the cycle.
func (d *Detector) Evaluate(ctx context.Context, pair domain.TokenPair) (*domain.Opportunity, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var yesBook, noBook domain.OrderbookSnapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		yesBook, err = d.books.GetBook(gctx, pair.YesToken)
		return err
	})
	g.Go(func() error {
		var err error
		noBook, err = d.books.GetBook(gctx, pair.NoToken)
		return err
	})
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		d.logger.Debug("skipping pair, book unavailable",
			"market_id", pair.MarketID,
			"direction", pair.Direction,
			"error", err,
		)
		return nil, nil
	}

	switch pair.Direction {
	case domain.DirectionBuy:
		return d.evaluateBuy(pair, yesBook, noBook), nil
	case domain.DirectionSell:
		return d.evaluateSell(pair, yesBook, noBook), nil
	default:
		return nil, nil
	}
}

// evaluateBuy qualifies when buying both sides at their best asks costs
// strictly less than the payout.
func (d *Detector) evaluateBuy(pair domain.TokenPair, yesBook, noBook domain.OrderbookSnapshot) *domain.Opportunity {
	yesAsk, okYes := yesBook.BestAsk()
	noAsk, okNo := noBook.BestAsk()
	if !okYes || !okNo {
		return nil
	}

	buyCost := (yesAsk + noAsk) * 100
	if buyCost >= payout {
		return nil
	}

	// Best-effort counterpart price for context in the stored row.
	sellValue := 0.0
	if yesBid, ok1 := yesBook.BestBid(); ok1 {
		if noBid, ok2 := noBook.BestBid(); ok2 {
			sellValue = (yesBid + noBid) * 100
		}
	}

	return &domain.Opportunity{
		MarketID:  pair.MarketID,
		YesToken:  pair.YesToken,
		NoToken:   pair.NoToken,
		BuyPrice:  buyCost,
		SellPrice: sellValue,
		Direction: domain.DirectionBuy,
		Link:      domain.MarketLink(pair.MarketID, pair.Slug),
		Question:  pair.Question,
	}
}

// evaluateSell qualifies when selling both sides at their best bids brings
// in strictly more than the payout.
func (d *Detector) evaluateSell(pair domain.TokenPair, yesBook, noBook domain.OrderbookSnapshot) *domain.Opportunity {
	yesBid, okYes := yesBook.BestBid()
	noBid, okNo := noBook.BestBid()
	if !okYes || !okNo {
		return nil
	}

	sellValue := (yesBid + noBid) * 100
	if sellValue <= payout {
		return nil
	}

	buyCost := 0.0
	if yesAsk, ok1 := yesBook.BestAsk(); ok1 {
		if noAsk, ok2 := noBook.BestAsk(); ok2 {
			buyCost = (yesAsk + noAsk) * 100
		}
	}

	return &domain.Opportunity{
		MarketID:  pair.MarketID,
		YesToken:  pair.YesToken,
		NoToken:   pair.NoToken,
		BuyPrice:  buyCost,
		SellPrice: sellValue,
		Direction: domain.DirectionSell,
		Link:      domain.MarketLink(pair.MarketID, pair.Slug),
		Question:  pair.Question,
	}
}
