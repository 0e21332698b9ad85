package domain

import "strings"

// Direction is the side of a fullset check: "buy" tests whether a complete
// Yes+No set can be bought below its payout, "sell" whether it can be sold
// above it.
type Direction string

const (
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
)

// Market is a binary market as listed by the Gamma catalog. Only the fields
// the scan pipeline consumes are modeled; token IDs and outcome labels are
// parsed from their string encodings at the platform boundary.
type Market struct {
	ID          string
	Question    string
	ConditionID string
	Slug        string
	TokenIDs    []string // cleaned CLOB token IDs, catalog order
	Outcomes    []string // outcome labels aligned with TokenIDs, may be empty
	Active      bool
	Archived    bool
}

// TokenPair is one scan candidate: the Yes and No token IDs of a market plus
// the direction to check. Each eligible market yields a buy and a sell pair.
type TokenPair struct {
	MarketID    string
	ConditionID string
	Direction   Direction
	YesToken    string
	NoToken     string
	Question    string
	Slug        string
}

// DeriveTokenPairs turns a catalog market into its scan candidates. It
// returns nil for markets that are inactive, archived, missing a condition
// ID, or that do not resolve to two distinct token IDs.
//
// Yes/No tokens are located by outcome label (case-insensitive "yes"/"no",
// or the literal "1"/"0"). When either label is missing the first and second
// token IDs are used positionally, matching the venue's ordering convention.
func DeriveTokenPairs(m Market) []TokenPair {
	if !m.Active || m.Archived || m.ConditionID == "" || len(m.TokenIDs) < 2 {
		return nil
	}

	yesToken, noToken := m.TokenIDs[0], m.TokenIDs[1]
	if yesIdx, noIdx := findOutcome(m.Outcomes, "yes", "1"), findOutcome(m.Outcomes, "no", "0"); yesIdx >= 0 && yesIdx < len(m.TokenIDs) && noIdx >= 0 && noIdx < len(m.TokenIDs) {
		yesToken, noToken = m.TokenIDs[yesIdx], m.TokenIDs[noIdx]
	}
	if yesToken == "" || noToken == "" || yesToken == noToken {
		return nil
	}

	pairs := make([]TokenPair, 0, 2)
	for _, dir := range []Direction{DirectionBuy, DirectionSell} {
		pairs = append(pairs, TokenPair{
			MarketID:    m.ConditionID,
			ConditionID: m.ConditionID,
			Direction:   dir,
			YesToken:    yesToken,
			NoToken:     noToken,
			Question:    m.Question,
			Slug:        m.Slug,
		})
	}
	return pairs
}

// findOutcome returns the index of the first label equal (case-insensitively)
// to name or equal to the literal alias, or -1. Labels shorter than two
// entries never match: positional fallback applies instead.
func findOutcome(outcomes []string, name, literal string) int {
	if len(outcomes) < 2 {
		return -1
	}
	for i, o := range outcomes {
		if strings.EqualFold(o, name) || o == literal {
			return i
		}
	}
	return -1
}
