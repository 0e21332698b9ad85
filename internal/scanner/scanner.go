package scanner

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/TeTedo/polymarket-arbitrage-chance/internal/domain"
)

// cycleLockKey is the cross-instance lock guarding a scan cycle.
const cycleLockKey = "scan_cycle"

// OpportunitySaver persists a batch of opportunities and returns how many
// were newly stored.
type OpportunitySaver interface {
	SaveAll(ctx context.Context, opps []domain.Opportunity) int
}

// Scanner runs scan cycles on a cron schedule. Cycles never overlap: a tick
// that fires while a cycle is still running is skipped, and an optional
// distributed lock extends that guarantee across instances.
type Scanner struct {
	catalog  *Catalog
	detector *Detector
	saver    OpportunitySaver
	locks    domain.LockManager

	schedule *cronSchedule
	workers  int
	lockTTL  time.Duration
	logger   *slog.Logger

	running atomic.Bool
	wg      sync.WaitGroup
}

// Config holds Scanner construction parameters.
type Config struct {
	Schedule    string
	EvalWorkers int
	LockTTL     time.Duration
}

// New creates a Scanner. locks may be nil to disable cross-instance locking.
func New(catalog *Catalog, detector *Detector, saver OpportunitySaver, locks domain.LockManager, cfg Config, logger *slog.Logger) (*Scanner, error) {
	schedule, err := parseCron(cfg.Schedule)
	if err != nil {
		return nil, err
	}
	workers := cfg.EvalWorkers
	if workers <= 0 {
		workers = 1
	}

	return &Scanner{
		catalog:  catalog,
		detector: detector,
		saver:    saver,
		locks:    locks,
		schedule: schedule,
		workers:  workers,
		lockTTL:  cfg.LockTTL,
		logger:   logger.With("component", "scanner"),
	}, nil
}

// Run executes one cycle immediately, then fires on the cron schedule until
// ctx is cancelled. It drains any in-flight cycle before returning.
func (s *Scanner) Run(ctx context.Context) error {
	s.fire(ctx)

	for {
		next := s.schedule.Next(time.Now())
		if next.IsZero() {
			s.logger.Error("schedule has no future run time, stopping")
			break
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.wg.Wait()
			return ctx.Err()
		case <-timer.C:
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.fire(ctx)
		}()
	}

	s.wg.Wait()
	return nil
}

// fire runs a cycle unless one is already in flight in this process.
func (s *Scanner) fire(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous cycle still running, skipping this tick")
		return
	}
	defer s.running.Store(false)

	if err := s.RunCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("scan cycle failed", "error", err)
	}
}

// RunCycle performs one full scan: catalog fetch, parallel pair evaluation,
// and persistence of anything found.
func (s *Scanner) RunCycle(ctx context.Context) error {
	cycleID := uuid.NewString()[:8]
	logger := s.logger.With("cycle_id", cycleID)
	start := time.Now()

	if s.locks != nil {
		unlock, err := s.locks.Acquire(ctx, cycleLockKey, s.lockTTL)
		if errors.Is(err, domain.ErrLockHeld) {
			logger.Info("cycle lock held by another instance, skipping")
			return nil
		}
		if err != nil {
			return err
		}
		defer unlock()
	}

	logger.Info("scan cycle started")

	pairs, err := s.catalog.FetchCandidates(ctx)
	if err != nil {
		return err
	}

	var (
		mu    sync.Mutex
		found []domain.Opportunity
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, pair := range pairs {
		pair := pair
		g.Go(func() error {
			opp, err := s.detector.Evaluate(gctx, pair)
			if err != nil {
				return err
			}
			if opp != nil {
				mu.Lock()
				found = append(found, *opp)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	saved := 0
	if len(found) > 0 {
		saved = s.saver.SaveAll(ctx, found)
	}

	logger.Info("scan cycle finished",
		"candidates", len(pairs),
		"found", len(found),
		"saved", saved,
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)
	return nil
}
