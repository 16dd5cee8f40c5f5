package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL       string        `env:"DATABASE_URL,required,notEmpty"`
	Port              string        `env:"PORT" envDefault:"5200"`
	ServiceToken      string        `env:"GAME_SERVICE_TOKEN,required,notEmpty"`
	AllowedOrigins    []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`

	AutoPickURL           string        `env:"AUTOPICK_URL"`
	AutoPickTimeout       time.Duration `env:"AUTOPICK_TIMEOUT" envDefault:"90s"`
	AutoPickSweepInterval time.Duration `env:"AUTOPICK_SWEEP_INTERVAL" envDefault:"15s"`

	R2 R2Config
}

// R2Config is optional; archiving is disabled while Bucket is empty.
type R2Config struct {
	AccountID       string `env:"CLOUDFLARE_ACCOUNT_ID"`
	AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	AccessKeySecret string `env:"R2_ACCESS_KEY_SECRET"`
	Bucket          string `env:"R2_BUCKET_NAME"`
	CDNBaseURL      string `env:"CDN_BASE_URL"`
}

func (c R2Config) Enabled() bool {
	return c.Bucket != "" && c.AccountID != ""
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
	}
	if cfg.AutoPickSweepInterval <= 0 {
		return cfg, fmt.Errorf("AUTOPICK_SWEEP_INTERVAL must be positive, got %s", cfg.AutoPickSweepInterval)
	}
	return cfg, nil
}
