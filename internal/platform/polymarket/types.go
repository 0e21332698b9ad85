package polymarket

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/TeTedo/polymarket-arbitrage-chance/internal/domain"
)

// flexBool unmarshals from JSON bool or string ("true"/"false") so Gamma API
// responses work whether the status flags are sent as bools or strings.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = flexBool(strings.EqualFold(s, "true") || s == "1")
	return nil
}

// --------------------------------------------------------------------------
// Gamma API DTOs
// --------------------------------------------------------------------------

// APIMarket represents a market as returned by the Polymarket Gamma API.
// ClobTokenIDs and Outcomes arrive string-encoded: usually a JSON array
// rendered into a string, sometimes a plain comma-separated list.
type APIMarket struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	ConditionID  string   `json:"conditionId"`
	Slug         string   `json:"slug"`
	ClobTokenIDs string   `json:"clobTokenIds"`
	Outcomes     string   `json:"outcomes"`
	Active       flexBool `json:"active"`
	Closed       flexBool `json:"closed"`
	Archived     flexBool `json:"archived"`
}

// ToDomain converts the raw catalog record into a typed domain.Market with
// token IDs and outcome labels parsed and cleaned.
func (m *APIMarket) ToDomain() domain.Market {
	return domain.Market{
		ID:          m.ID,
		Question:    m.Question,
		ConditionID: m.ConditionID,
		Slug:        m.Slug,
		TokenIDs:    parseEncodedList(m.ClobTokenIDs),
		Outcomes:    parseEncodedList(m.Outcomes),
		Active:      bool(m.Active),
		Archived:    bool(m.Archived),
	}
}

// parseEncodedList decodes one of Gamma's string-encoded lists. Input that
// starts with "[" is tried as a JSON array first; anything else — and JSON
// that fails to parse — is split on commas. Every element is stripped of
// brackets, quotes, and surrounding whitespace, and empties are dropped, so
// both encodings of the same list normalize identically.
func parseEncodedList(raw string) []string {
	if raw == "" {
		return nil
	}

	var parts []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &parts); err != nil {
			parts = strings.Split(raw, ",")
		}
	} else {
		parts = strings.Split(raw, ",")
	}

	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(listCleaner.Replace(p))
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}

var listCleaner = strings.NewReplacer("[", "", "]", "", `"`, "")

// --------------------------------------------------------------------------
// CLOB API DTOs
// --------------------------------------------------------------------------

// APIBook is the response of GET /book. Prices and sizes are decimal strings.
// A nil Bids or Asks slice means the field was absent from the response,
// which callers must distinguish from a present-but-empty side.
type APIBook struct {
	AssetID string          `json:"asset_id"`
	Bids    []APIPriceLevel `json:"bids"`
	Asks    []APIPriceLevel `json:"asks"`
}

// APIPriceLevel is a single bid/ask level in the CLOB book response.
type APIPriceLevel struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// ToSnapshot converts the raw book into a domain snapshot. Levels whose
// price fails to parse are dropped.
func (b *APIBook) ToSnapshot(tokenID string) domain.OrderbookSnapshot {
	snap := domain.OrderbookSnapshot{
		AssetID:   tokenID,
		Bids:      toPriceLevels(b.Bids),
		Asks:      toPriceLevels(b.Asks),
		Timestamp: time.Now().UTC(),
	}
	if b.AssetID != "" {
		snap.AssetID = b.AssetID
	}
	return snap
}

func toPriceLevels(levels []APIPriceLevel) []domain.PriceLevel {
	out := make([]domain.PriceLevel, 0, len(levels))
	for _, lvl := range levels {
		price, err := strconv.ParseFloat(lvl.Price, 64)
		if err != nil {
			continue
		}
		size, _ := strconv.ParseFloat(lvl.Size, 64)
		out = append(out, domain.PriceLevel{Price: price, Size: size})
	}
	return out
}
