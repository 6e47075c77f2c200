package config

import (
	"flag"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseDSN string `env:"DATABASE_URI"`
	BaseURL     string `env:"BASE_URL"`

	// Oracle settings. The delay is the mandatory floor between calls to
	// the Scryfall API; the timeout bounds each call, with no retry.
	ScryfallBaseURL string        `env:"SCRYFALL_BASE_URL"`
	OracleDelay     time.Duration `env:"ORACLE_DELAY"`
	OracleTimeout   time.Duration `env:"ORACLE_TIMEOUT"`

	// How long a cached card snapshot stays fresh.
	CacheTTL time.Duration `env:"CACHE_TTL"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags apply only when the env variables are not set
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN (postgres URL or sqlite path)")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "listen address, host:port")
	flag.StringVar(&cfg.ScryfallBaseURL, "scryfall-url", cfg.ScryfallBaseURL, "Scryfall API base URL")
	flag.DurationVar(&cfg.OracleDelay, "oracle-delay", cfg.OracleDelay, "minimum delay between oracle calls")
	flag.DurationVar(&cfg.OracleTimeout, "oracle-timeout", cfg.OracleTimeout, "per-call oracle timeout")
	flag.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "card cache staleness TTL")
	flag.Parse()

	// Defaults
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8080"
	}
	if cfg.OracleDelay <= 0 {
		cfg.OracleDelay = 100 * time.Millisecond
	}
	if cfg.OracleTimeout <= 0 {
		cfg.OracleTimeout = 10 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 7 * 24 * time.Hour
	}

	return cfg
}
