package polymarket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeTedo/polymarket-arbitrage-chance/internal/domain"
)

func TestClobClientGetBook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/book", r.URL.Path)
		assert.Equal(t, "T1", r.URL.Query().Get("token_id"))
		_, _ = w.Write([]byte(`{"asset_id":"T1","bids":[{"price":"0.38","size":"100"}],"asks":[{"price":"0.40","size":"50"},{"price":"0.41","size":"10"}]}`))
	}))
	defer srv.Close()

	client := NewClobClient(srv.URL)
	snap, err := client.GetBook(context.Background(), "T1")
	require.NoError(t, err)

	assert.Equal(t, "T1", snap.AssetID)
	ask, ok := snap.BestAsk()
	require.True(t, ok)
	assert.Equal(t, 0.40, ask)
	bid, ok := snap.BestBid()
	require.True(t, ok)
	assert.Equal(t, 0.38, bid)
}

func TestClobClientGetBookMissingSide(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"asset_id":"T1","bids":[{"price":"0.38","size":"100"}]}`))
	}))
	defer srv.Close()

	client := NewClobClient(srv.URL)
	_, err := client.GetBook(context.Background(), "T1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete book")
}

func TestClobClientGetBookEmptySidesAreValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"asset_id":"T1","bids":[],"asks":[]}`))
	}))
	defer srv.Close()

	client := NewClobClient(srv.URL)
	snap, err := client.GetBook(context.Background(), "T1")
	require.NoError(t, err)

	_, ok := snap.BestAsk()
	assert.False(t, ok)
	_, ok = snap.BestBid()
	assert.False(t, ok)
}

func TestClobClientGetBookNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such token", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClobClient(srv.URL)
	_, err := client.GetBook(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
