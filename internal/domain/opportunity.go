package domain

import "time"

// venueBase is the public site used to build human-navigable market links.
const venueBase = "https://polymarket.com"

// Opportunity is a detected fullset mispricing. Rows are append-only: one per
// (market, direction), written once and never mutated by the scanner.
type Opportunity struct {
	ID        int64
	MarketID  string
	YesToken  string
	NoToken   string
	BuyPrice  float64 // aggregate ask cost of one fullset, payout units
	SellPrice float64 // aggregate bid proceeds of one fullset, payout units
	Direction Direction
	Link      string
	Question  string
	CreatedAt time.Time
}

// MarketLink builds the venue URL for a market. The event slug gives the
// accurate page; without one the raw market ID is the best available anchor.
func MarketLink(marketID, slug string) string {
	if slug != "" {
		return venueBase + "/event/" + slug
	}
	return venueBase + "/market/" + marketID
}
