// Package app wires configuration into the running scanner.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/TeTedo/polymarket-arbitrage-chance/internal/config"
)

// App owns the wired dependency graph and runs the scanner.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	deps   *Dependencies
}

// New wires all dependencies and returns a ready-to-run App.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	deps, err := Wire(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &App{cfg: cfg, logger: logger, deps: deps}, nil
}

// Run starts the scan loop and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("scanner starting",
		"schedule", a.cfg.Scanner.Schedule,
		"eval_workers", a.cfg.Scanner.EvalWorkers,
	)
	err := a.deps.Scanner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// RunOnce executes a single scan cycle and returns.
func (a *App) RunOnce(ctx context.Context) error {
	a.logger.Info("running single scan cycle")
	return a.deps.Scanner.RunCycle(ctx)
}

// Close releases all resources.
func (a *App) Close() {
	a.deps.Close()
}
