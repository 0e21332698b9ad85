package app

import (
	"context"
	"log/slog"

	"github.com/TeTedo/polymarket-arbitrage-chance/internal/cache/redis"
	"github.com/TeTedo/polymarket-arbitrage-chance/internal/config"
	"github.com/TeTedo/polymarket-arbitrage-chance/internal/notify"
	"github.com/TeTedo/polymarket-arbitrage-chance/internal/platform/polymarket"
	"github.com/TeTedo/polymarket-arbitrage-chance/internal/scanner"
	"github.com/TeTedo/polymarket-arbitrage-chance/internal/service"
	"github.com/TeTedo/polymarket-arbitrage-chance/internal/store/postgres"
)

// Dependencies holds the wired object graph plus the cleanup handles the App
// closes on shutdown.
type Dependencies struct {
	Scanner *scanner.Scanner
	Service *service.OpportunityService

	pg    *postgres.Client
	redis *redis.Client
}

// Wire constructs the full dependency graph from configuration: storage,
// cache, API clients, notification channels, and the scanner itself.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	pg, err := postgres.New(ctx, postgres.ClientConfig{
		DSN:      cfg.Database.DSN,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Database: cfg.Database.Database,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		SSLMode:  cfg.Database.SSLMode,
		MaxConns: cfg.Database.PoolMaxConns,
		MinConns: cfg.Database.PoolMinConns,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Database.RunMigrations {
		if err := pg.RunMigrations(ctx); err != nil {
			pg.Close()
			return nil, err
		}
	}

	rdb, err := redis.New(ctx, redis.ClientConfig{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		PoolSize:   cfg.Redis.PoolSize,
		MaxRetries: cfg.Redis.MaxRetries,
		TLSEnabled: cfg.Redis.TLSEnabled,
	})
	if err != nil {
		pg.Close()
		return nil, err
	}

	store := postgres.NewOpportunityStore(pg)
	limiter := redis.NewRateLimiter(rdb)
	locks := redis.NewLockManager(rdb)
	bookCache := redis.NewBookCache(rdb, cfg.Scanner.BookCacheTTL.Duration)

	gamma := polymarket.NewGammaClient(cfg.Polymarket.GammaHost)
	clob := polymarket.NewClobClient(cfg.Polymarket.ClobHost)

	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	var alerts service.AlertSink
	if len(senders) > 0 {
		alerts = notify.New(logger, senders...)
	}

	svc := service.NewOpportunityService(store, alerts, logger)

	catalog := scanner.NewCatalog(gamma, cfg.Scanner.PageLimit, logger)
	books := scanner.NewBookSource(clob, bookCache, limiter,
		cfg.Scanner.BookRateLimit, cfg.Scanner.BookRateWindow.Duration)
	detector := scanner.NewDetector(books, logger)

	sc, err := scanner.New(catalog, detector, svc, locks, scanner.Config{
		Schedule:    cfg.Scanner.Schedule,
		EvalWorkers: cfg.Scanner.EvalWorkers,
		LockTTL:     cfg.Scanner.CycleLockTTL.Duration,
	}, logger)
	if err != nil {
		_ = rdb.Close()
		pg.Close()
		return nil, err
	}

	return &Dependencies{
		Scanner: sc,
		Service: svc,
		pg:      pg,
		redis:   rdb,
	}, nil
}

// Close releases all wired resources.
func (d *Dependencies) Close() {
	if d.redis != nil {
		_ = d.redis.Close()
	}
	if d.pg != nil {
		d.pg.Close()
	}
}
