package scanner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeTedo/polymarket-arbitrage-chance/internal/domain"
)

type fakeSaver struct {
	mu    sync.Mutex
	got   []domain.Opportunity
	calls int
}

func (f *fakeSaver) SaveAll(_ context.Context, opps []domain.Opportunity) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.got = append(f.got, opps...)
	return len(opps)
}

type fakeLocks struct {
	err      error
	acquired int
	released int
}

func (f *fakeLocks) Acquire(_ context.Context, _ string, _ time.Duration) (func(), error) {
	if f.err != nil {
		return nil, f.err
	}
	f.acquired++
	return func() { f.released++ }, nil
}

type countingBooks struct {
	mu    sync.Mutex
	inner *fakeBooks
	calls int
}

func (c *countingBooks) GetBook(ctx context.Context, tokenID string) (domain.OrderbookSnapshot, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.inner.GetBook(ctx, tokenID)
}

func newTestScanner(t *testing.T, fetcher MarketFetcher, books BookProvider, saver OpportunitySaver, locks domain.LockManager) *Scanner {
	t.Helper()
	catalog := NewCatalog(fetcher, 100, testLogger())
	detector := NewDetector(books, testLogger())
	s, err := New(catalog, detector, saver, locks, Config{
		Schedule:    "*/5 * * * *",
		EvalWorkers: 2,
		LockTTL:     time.Minute,
	}, testLogger())
	require.NoError(t, err)
	return s
}

func TestRunCycleFindsAndSavesOpportunity(t *testing.T) {
	fetcher := &fakeFetcher{pages: [][]domain.Market{{
		{
			ConditionID: "0xcond",
			TokenIDs:    []string{"yes-token", "no-token"},
			Outcomes:    []string{"Yes", "No"},
			Active:      true,
			Question:    "Will it rain?",
		},
	}}}
	books := &fakeBooks{books: map[string]domain.OrderbookSnapshot{
		// Buy side mispriced, sell side fairly priced.
		"yes-token": book("yes-token", []float64{0.38}, []float64{0.40}),
		"no-token":  book("no-token", []float64{0.50}, []float64{0.55}),
	}}
	saver := &fakeSaver{}
	locks := &fakeLocks{}

	s := newTestScanner(t, fetcher, books, saver, locks)
	require.NoError(t, s.RunCycle(context.Background()))

	require.Len(t, saver.got, 1)
	assert.Equal(t, domain.DirectionBuy, saver.got[0].Direction)
	assert.InDelta(t, 95.0, saver.got[0].BuyPrice, 1e-9)
	assert.Equal(t, 1, locks.acquired)
	assert.Equal(t, 1, locks.released)
}

func TestRunCycleIgnoresIneligibleMarkets(t *testing.T) {
	fetcher := &fakeFetcher{pages: [][]domain.Market{{
		{ConditionID: "0xarch", TokenIDs: []string{"t1", "t2"}, Active: true, Archived: true},
	}}}
	books := &countingBooks{inner: &fakeBooks{}}
	saver := &fakeSaver{}

	s := newTestScanner(t, fetcher, books, saver, nil)
	require.NoError(t, s.RunCycle(context.Background()))

	assert.Zero(t, books.calls)
	assert.Zero(t, saver.calls)
}

func TestRunCycleSkipsWhenLockHeld(t *testing.T) {
	fetcher := &fakeFetcher{pages: [][]domain.Market{makeMarkets(1, "m")}}
	saver := &fakeSaver{}
	locks := &fakeLocks{err: domain.ErrLockHeld}

	s := newTestScanner(t, fetcher, &fakeBooks{}, saver, locks)
	require.NoError(t, s.RunCycle(context.Background()))

	assert.Empty(t, fetcher.calls)
	assert.Zero(t, saver.calls)
}

func TestRunCycleNoSaveWhenNothingFound(t *testing.T) {
	fetcher := &fakeFetcher{pages: [][]domain.Market{{
		{
			ConditionID: "0xfair",
			TokenIDs:    []string{"yes-token", "no-token"},
			Outcomes:    []string{"Yes", "No"},
			Active:      true,
		},
	}}}
	books := &fakeBooks{books: map[string]domain.OrderbookSnapshot{
		"yes-token": book("yes-token", []float64{0.44}, []float64{0.45}),
		"no-token":  book("no-token", []float64{0.54}, []float64{0.55}),
	}}
	saver := &fakeSaver{}

	s := newTestScanner(t, fetcher, books, saver, nil)
	require.NoError(t, s.RunCycle(context.Background()))

	assert.Zero(t, saver.calls)
}

func TestFireSkipsOverlappingCycle(t *testing.T) {
	fetcher := &fakeFetcher{}
	saver := &fakeSaver{}

	s := newTestScanner(t, fetcher, &fakeBooks{}, saver, nil)

	// Simulate an in-flight cycle.
	s.running.Store(true)
	s.fire(context.Background())
	assert.Empty(t, fetcher.calls)

	s.running.Store(false)
	s.fire(context.Background())
	assert.Equal(t, []int{0}, fetcher.calls)
}
