package domain

import "time"

// PriceLevel is a single price+size entry in an orderbook.
type PriceLevel struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
}

// OrderbookSnapshot is a full snapshot of standing bids and asks for a token.
type OrderbookSnapshot struct {
	AssetID   string       `json:"asset_id"`
	Bids      []PriceLevel `json:"bids"`
	Asks      []PriceLevel `json:"asks"`
	Timestamp time.Time    `json:"timestamp"`
}

// BestAsk returns the lowest ask price — the immediately achievable buy
// price. ok is false when there are no asks.
func (s OrderbookSnapshot) BestAsk() (price float64, ok bool) {
	for i, lvl := range s.Asks {
		if i == 0 || lvl.Price < price {
			price = lvl.Price
		}
	}
	return price, len(s.Asks) > 0
}

// BestBid returns the highest bid price — the immediately achievable sell
// price. ok is false when there are no bids.
func (s OrderbookSnapshot) BestBid() (price float64, ok bool) {
	for i, lvl := range s.Bids {
		if i == 0 || lvl.Price > price {
			price = lvl.Price
		}
	}
	return price, len(s.Bids) > 0
}
