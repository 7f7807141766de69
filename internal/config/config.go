// Package config loads process settings from the environment, reading a
// local .env file first when one exists.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port   string `env:"PORT" envDefault:"3000"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`

	DefaultPageSize int           `env:"DEFAULT_PAGE_SIZE" envDefault:"10"`
	SeedEnabled     bool          `env:"SEED_ENABLED" envDefault:"true"`
	SeedCount       int           `env:"SEED_COUNT" envDefault:"30"`
	SaveDelay       time.Duration `env:"SAVE_DELAY" envDefault:"0s"`

	DefaultLocale    string   `env:"DEFAULT_LOCALE" envDefault:"tr"`
	SupportedLocales []string `env:"SUPPORTED_LOCALES" envDefault:"en,tr" envSeparator:","`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	KafkaBroker        string        `env:"KAFKA_BROKER"`
	KafkaTopic         string        `env:"KAFKA_TOPIC" envDefault:"hr.employee.roster.v1"`
	KafkaGroupID       string        `env:"KAFKA_GROUP_ID" envDefault:"go-roster-audit"`
	OutboxPollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"3s"`
	OutboxCapacity     int           `env:"OUTBOX_CAPACITY" envDefault:"1024"`
	OutboxBatchSize    int           `env:"OUTBOX_BATCH_SIZE" envDefault:"50"`
	OutboxDrainTimeout time.Duration `env:"OUTBOX_DRAIN_TIMEOUT" envDefault:"5s"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the current environment only.
func Parse() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DefaultPageSize < 1 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be positive, got %d", c.DefaultPageSize)
	}
	if c.SeedCount < 0 {
		return fmt.Errorf("SEED_COUNT must not be negative, got %d", c.SeedCount)
	}
	if c.SaveDelay < 0 {
		return fmt.Errorf("SAVE_DELAY must not be negative, got %s", c.SaveDelay)
	}
	if len(c.SupportedLocales) == 0 {
		return fmt.Errorf("SUPPORTED_LOCALES must list at least one language")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// KafkaEnabled reports whether roster events should be published.
func (c Config) KafkaEnabled() bool {
	return c.KafkaBroker != ""
}
