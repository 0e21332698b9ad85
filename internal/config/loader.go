package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies ARBSCAN_* environment variable overrides, and
// returns the final Config. A missing config file is not an error — the
// scanner can run from defaults plus environment alone. The returned Config
// has NOT been validated; the caller should invoke Config.Validate() after
// Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known ARBSCAN_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e.
// not empty). This lets operators inject secrets at deploy time without
// touching the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Polymarket ──
	setStr(&cfg.Polymarket.GammaHost, "ARBSCAN_POLYMARKET_GAMMA_HOST")
	setStr(&cfg.Polymarket.ClobHost, "ARBSCAN_POLYMARKET_CLOB_HOST")

	// ── Database ──
	setStr(&cfg.Database.DSN, "ARBSCAN_DATABASE_DSN")
	setStr(&cfg.Database.Host, "ARBSCAN_DATABASE_HOST")
	setInt(&cfg.Database.Port, "ARBSCAN_DATABASE_PORT")
	setStr(&cfg.Database.Database, "ARBSCAN_DATABASE_NAME")
	setStr(&cfg.Database.User, "ARBSCAN_DATABASE_USER")
	setStr(&cfg.Database.Password, "ARBSCAN_DATABASE_PASSWORD")
	setStr(&cfg.Database.SSLMode, "ARBSCAN_DATABASE_SSLMODE")
	setInt(&cfg.Database.PoolMaxConns, "ARBSCAN_DATABASE_POOL_MAX_CONNS")
	setInt(&cfg.Database.PoolMinConns, "ARBSCAN_DATABASE_POOL_MIN_CONNS")
	setBool(&cfg.Database.RunMigrations, "ARBSCAN_DATABASE_RUN_MIGRATIONS")

	// ── Redis ──
	setStr(&cfg.Redis.Addr, "ARBSCAN_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "ARBSCAN_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "ARBSCAN_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "ARBSCAN_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "ARBSCAN_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "ARBSCAN_REDIS_TLS_ENABLED")

	// ── Scanner ──
	setStr(&cfg.Scanner.Schedule, "ARBSCAN_SCANNER_SCHEDULE")
	setInt(&cfg.Scanner.PageLimit, "ARBSCAN_SCANNER_PAGE_LIMIT")
	setInt(&cfg.Scanner.EvalWorkers, "ARBSCAN_SCANNER_EVAL_WORKERS")
	setInt(&cfg.Scanner.BookRateLimit, "ARBSCAN_SCANNER_BOOK_RATE_LIMIT")
	setDuration(&cfg.Scanner.BookRateWindow, "ARBSCAN_SCANNER_BOOK_RATE_WINDOW")
	setDuration(&cfg.Scanner.BookCacheTTL, "ARBSCAN_SCANNER_BOOK_CACHE_TTL")
	setDuration(&cfg.Scanner.CycleLockTTL, "ARBSCAN_SCANNER_CYCLE_LOCK_TTL")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "ARBSCAN_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "ARBSCAN_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "ARBSCAN_NOTIFY_DISCORD_WEBHOOK_URL")

	// ── Top-level ──
	setStr(&cfg.LogLevel, "ARBSCAN_LOG_LEVEL")
	setStr(&cfg.LogFormat, "ARBSCAN_LOG_FORMAT")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}
