package polymarket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEncodedList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"json array", `["T1","T2"]`, []string{"T1", "T2"}},
		{"comma separated", "T1,T2", []string{"T1", "T2"}},
		{"comma with stray brackets and quotes", ` ["T1" , "T2"] `, []string{"T1", "T2"}},
		{"whitespace", "  T1 ,  T2  ", []string{"T1", "T2"}},
		{"empty elements dropped", "T1,,T2,", []string{"T1", "T2"}},
		{"empty input", "", nil},
		{"only separators", ",,", nil},
		{"malformed json falls back to comma split", `["T1",T2`, []string{"T1", "T2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseEncodedList(tt.raw))
		})
	}
}

// The same cleaned sequence must come out of a JSON-array encoding and an
// equivalent comma-separated string.
func TestParseEncodedListEncodingsAgree(t *testing.T) {
	fromJSON := parseEncodedList(`["71321045679252212594626385532706912750332728571942532289631379312455583992563","52114319501245915516055106046884209969926127482827954674443846427813813222426"]`)
	fromCSV := parseEncodedList(`"71321045679252212594626385532706912750332728571942532289631379312455583992563", "52114319501245915516055106046884209969926127482827954674443846427813813222426"`)
	assert.Equal(t, fromJSON, fromCSV)
}

func TestAPIMarketToDomain(t *testing.T) {
	m := APIMarket{
		ID:           "501",
		Question:     "Will X happen?",
		ConditionID:  "0xcond",
		Slug:         "will-x-happen",
		ClobTokenIDs: `["T1","T2"]`,
		Outcomes:     `["Yes","No"]`,
		Active:       true,
		Archived:     false,
	}

	dm := m.ToDomain()
	assert.Equal(t, "0xcond", dm.ConditionID)
	assert.Equal(t, []string{"T1", "T2"}, dm.TokenIDs)
	assert.Equal(t, []string{"Yes", "No"}, dm.Outcomes)
	assert.True(t, dm.Active)
	assert.False(t, dm.Archived)
}

func TestFlexBool(t *testing.T) {
	var m APIMarket
	require.NoError(t, json.Unmarshal([]byte(`{"active":"true","archived":false,"closed":"FALSE"}`), &m))
	assert.True(t, bool(m.Active))
	assert.False(t, bool(m.Archived))
	assert.False(t, bool(m.Closed))
}

func TestAPIBookToSnapshot(t *testing.T) {
	book := APIBook{
		Bids: []APIPriceLevel{{Price: "0.38", Size: "100"}, {Price: "0.52", Size: "10"}},
		Asks: []APIPriceLevel{{Price: "0.55", Size: "20"}, {Price: "0.40", Size: "5"}, {Price: "bogus", Size: "1"}},
	}

	snap := book.ToSnapshot("T1")
	assert.Equal(t, "T1", snap.AssetID)
	assert.Len(t, snap.Bids, 2)
	assert.Len(t, snap.Asks, 2) // unparsable level dropped

	ask, ok := snap.BestAsk()
	assert.True(t, ok)
	assert.Equal(t, 0.40, ask)
	bid, ok := snap.BestBid()
	assert.True(t, ok)
	assert.Equal(t, 0.52, bid)
}
