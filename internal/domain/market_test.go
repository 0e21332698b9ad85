package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eligibleMarket() Market {
	return Market{
		ID:          "12345",
		Question:    "Will it rain tomorrow?",
		ConditionID: "0xabc",
		Slug:        "will-it-rain-tomorrow",
		TokenIDs:    []string{"T1", "T2"},
		Outcomes:    []string{"Yes", "No"},
		Active:      true,
	}
}

func TestDeriveTokenPairsEmitsBothDirections(t *testing.T) {
	pairs := DeriveTokenPairs(eligibleMarket())
	require.Len(t, pairs, 2)

	assert.Equal(t, DirectionBuy, pairs[0].Direction)
	assert.Equal(t, DirectionSell, pairs[1].Direction)
	for _, p := range pairs {
		assert.Equal(t, "0xabc", p.MarketID)
		assert.Equal(t, "0xabc", p.ConditionID)
		assert.Equal(t, "T1", p.YesToken)
		assert.Equal(t, "T2", p.NoToken)
		assert.Equal(t, "Will it rain tomorrow?", p.Question)
		assert.Equal(t, "will-it-rain-tomorrow", p.Slug)
	}
}

func TestDeriveTokenPairsOutcomeMapping(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []string
		wantYes  string
		wantNo   string
	}{
		{"yes first", []string{"Yes", "No"}, "T1", "T2"},
		{"no first", []string{"No", "Yes"}, "T2", "T1"},
		{"case insensitive", []string{"NO", "YES"}, "T2", "T1"},
		{"numeric literals", []string{"0", "1"}, "T2", "T1"},
		{"no usable labels", []string{"Over", "Under"}, "T1", "T2"},
		{"empty labels", nil, "T1", "T2"},
		{"single label", []string{"Yes"}, "T1", "T2"},
		{"only yes found", []string{"Yes", "Maybe"}, "T1", "T2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := eligibleMarket()
			m.Outcomes = tt.outcomes
			pairs := DeriveTokenPairs(m)
			require.Len(t, pairs, 2)
			assert.Equal(t, tt.wantYes, pairs[0].YesToken)
			assert.Equal(t, tt.wantNo, pairs[0].NoToken)
		})
	}
}

func TestDeriveTokenPairsEligibility(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Market)
	}{
		{"inactive", func(m *Market) { m.Active = false }},
		{"archived", func(m *Market) { m.Archived = true }},
		{"no condition id", func(m *Market) { m.ConditionID = "" }},
		{"single token", func(m *Market) { m.TokenIDs = []string{"T1"} }},
		{"no tokens", func(m *Market) { m.TokenIDs = nil }},
		{"identical tokens", func(m *Market) { m.TokenIDs = []string{"T1", "T1"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := eligibleMarket()
			tt.mutate(&m)
			assert.Empty(t, DeriveTokenPairs(m))
		})
	}
}

func TestMarketLink(t *testing.T) {
	assert.Equal(t, "https://polymarket.com/event/some-slug", MarketLink("0xabc", "some-slug"))
	assert.Equal(t, "https://polymarket.com/market/0xabc", MarketLink("0xabc", ""))
}
