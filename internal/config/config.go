// Package config defines the top-level configuration for the arbitrage
// scanner and provides validation helpers.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by ARBSCAN_* environment
// variables.
type Config struct {
	Polymarket PolymarketConfig `toml:"polymarket"`
	Database   DatabaseConfig   `toml:"database"`
	Redis      RedisConfig      `toml:"redis"`
	Scanner    ScannerConfig    `toml:"scanner"`
	Notify     NotifyConfig     `toml:"notify"`
	LogLevel   string           `toml:"log_level"`
	LogFormat  string           `toml:"log_format"` // "text" or "json"
}

// PolymarketConfig holds the public API endpoints.
type PolymarketConfig struct {
	GammaHost string `toml:"gamma_host"`
	ClobHost  string `toml:"clob_host"`
}

// DatabaseConfig holds PostgreSQL connection parameters. DSN, when set,
// takes precedence over the individual fields.
type DatabaseConfig struct {
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// ScannerConfig holds scan-cycle parameters.
type ScannerConfig struct {
	// Schedule is a 5-field cron expression; one cycle also runs at startup.
	Schedule string `toml:"schedule"`
	// PageLimit is the catalog page size requested from Gamma.
	PageLimit int `toml:"page_limit"`
	// EvalWorkers bounds how many token pairs are evaluated concurrently.
	EvalWorkers int `toml:"eval_workers"`
	// BookRateLimit and BookRateWindow cap orderbook requests across all
	// workers: at most BookRateLimit requests per BookRateWindow.
	BookRateLimit  int      `toml:"book_rate_limit"`
	BookRateWindow duration `toml:"book_rate_window"`
	// BookCacheTTL is how long a fetched orderbook may be reused. It only
	// needs to outlive one market's buy+sell evaluations.
	BookCacheTTL duration `toml:"book_cache_ttl"`
	// CycleLockTTL is the TTL of the cross-instance cycle lock.
	CycleLockTTL duration `toml:"cycle_lock_ttl"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string `toml:"telegram_token"`
	TelegramChatID    string `toml:"telegram_chat_id"`
	DiscordWebhookURL string `toml:"discord_webhook_url"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values.
func Defaults() Config {
	return Config{
		Polymarket: PolymarketConfig{
			GammaHost: "https://gamma-api.polymarket.com",
			ClobHost:  "https://clob.polymarket.com",
		},
		Database: DatabaseConfig{
			Host:          "localhost",
			Port:          5432,
			Database:      "opinion_arbitrage",
			User:          "postgres",
			SSLMode:       "disable",
			PoolMaxConns:  10,
			PoolMinConns:  2,
			RunMigrations: true,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   20,
			MaxRetries: 3,
		},
		Scanner: ScannerConfig{
			Schedule:       "*/5 * * * *",
			PageLimit:      1000,
			EvalWorkers:    4,
			BookRateLimit:  30,
			BookRateWindow: duration{time.Second},
			BookCacheTTL:   duration{30 * time.Second},
			CycleLockTTL:   duration{10 * time.Minute},
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Polymarket.GammaHost == "" {
		return fmt.Errorf("config: polymarket.gamma_host is required")
	}
	if c.Polymarket.ClobHost == "" {
		return fmt.Errorf("config: polymarket.clob_host is required")
	}
	if c.Database.DSN == "" && (c.Database.Host == "" || c.Database.Database == "" || c.Database.User == "") {
		return fmt.Errorf("config: database.dsn or database host/database/user are required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required")
	}
	if c.Scanner.Schedule == "" {
		return fmt.Errorf("config: scanner.schedule is required")
	}
	if c.Scanner.PageLimit <= 0 {
		return fmt.Errorf("config: scanner.page_limit must be positive")
	}
	if c.Scanner.EvalWorkers <= 0 {
		return fmt.Errorf("config: scanner.eval_workers must be positive")
	}
	if c.Scanner.BookRateLimit <= 0 || c.Scanner.BookRateWindow.Duration <= 0 {
		return fmt.Errorf("config: scanner book rate limit and window must be positive")
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: unsupported log_format %q", c.LogFormat)
	}
	return nil
}
