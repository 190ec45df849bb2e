package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is read from the environment (and a .env file when present).
type Config struct {
	Port           string        `env:"PORT"              envDefault:"8080"`
	GinMode        string        `env:"GIN_MODE"`
	Env            string        `env:"ENV"               envDefault:"development"`
	SessionTimeout time.Duration `env:"SESSION_TIMEOUT"   envDefault:"6h"`
	CookieMaxAge   time.Duration `env:"COOKIE_MAX_AGE"    envDefault:"6h"`
	StaticCacheAge time.Duration `env:"STATIC_CACHE_AGE"  envDefault:"5m"`
	RateLimitRPS   int           `env:"RATE_LIMIT_RPS"    envDefault:"10"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST"  envDefault:"30"`
	StorageBackend string        `env:"STORAGE_BACKEND"   envDefault:"cookie"`
	StorageDir     string        `env:"STORAGE_DIR"       envDefault:"data/sessions"`
	SQLitePath     string        `env:"SQLITE_PATH"       envDefault:"data/snapshots.db"`
	SnapshotTTL    time.Duration `env:"SNAPSHOT_TTL"      envDefault:"6h"`
	NoticeDuration time.Duration `env:"NOTICE_DURATION"   envDefault:"2s"`
	TriviaFile     string        `env:"TRIVIA_FILE"`
}

// loadConfig loads .env (if any) and parses the environment.
func loadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.withDefaults(), nil
}

// withDefaults repairs values env parsing accepts but the server cannot use.
func (c Config) withDefaults() Config {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.SessionTimeout <= 0 {
		c.SessionTimeout = 6 * time.Hour
	}
	if c.CookieMaxAge <= 0 {
		c.CookieMaxAge = 6 * time.Hour
	}
	if c.SnapshotTTL <= 0 {
		c.SnapshotTTL = 6 * time.Hour
	}
	if c.NoticeDuration <= 0 {
		c.NoticeDuration = 2 * time.Second
	}
	if c.RateLimitRPS <= 0 {
		logWarn("Invalid RATE_LIMIT_RPS %d, using default 10", c.RateLimitRPS)
		c.RateLimitRPS = 10
	}
	if c.RateLimitBurst <= 0 {
		c.RateLimitBurst = 30
	}
	if c.StorageBackend == "" {
		c.StorageBackend = BackendCookie
	}
	return c
}

// IsProduction reports whether the server runs in release mode.
func (c Config) IsProduction() bool {
	return c.GinMode == "release" || c.Env == "production"
}
