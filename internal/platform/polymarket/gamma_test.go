package polymarket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGammaClientGetMarkets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/markets", r.URL.Path)
		assert.Equal(t, "false", q.Get("closed"))
		assert.Equal(t, "1000", q.Get("limit"))
		assert.Equal(t, "2000", q.Get("offset"))
		assert.Equal(t, "createdAt", q.Get("order"))
		assert.Equal(t, "false", q.Get("ascending"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"1","question":"Q1","conditionId":"0xc1","slug":"q1","clobTokenIds":"[\"T1\",\"T2\"]","outcomes":"Yes,No","active":true,"closed":false,"archived":false},
			{"id":"2","question":"Q2","conditionId":"0xc2","slug":"q2","clobTokenIds":"T3,T4","outcomes":"","active":"true","closed":"false","archived":"true"}
		]`))
	}))
	defer srv.Close()

	client := NewGammaClient(srv.URL)
	markets, err := client.GetMarkets(context.Background(), 1000, 2000)
	require.NoError(t, err)
	require.Len(t, markets, 2)

	assert.Equal(t, []string{"T1", "T2"}, markets[0].TokenIDs)
	assert.Equal(t, []string{"Yes", "No"}, markets[0].Outcomes)
	assert.True(t, markets[0].Active)

	assert.Equal(t, []string{"T3", "T4"}, markets[1].TokenIDs)
	assert.Empty(t, markets[1].Outcomes)
	assert.True(t, markets[1].Archived)
}

func TestGammaClientGetMarketsRejectsNonArrayPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"maintenance"}`))
	}))
	defer srv.Close()

	client := NewGammaClient(srv.URL)
	_, err := client.GetMarkets(context.Background(), 1000, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode markets")
}

func TestGammaClientGetMarketsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewGammaClient(srv.URL)
	_, err := client.GetMarkets(context.Background(), 1000, 0)
	require.Error(t, err)
}
