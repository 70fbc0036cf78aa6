// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/erazemk/arsenal/internal/model"
)

// Config holds every setting of the service.
type Config struct {
	DB       string `env:"ARSENAL_DB"`
	Addr     string `env:"ARSENAL_ADDR"`
	LogLevel string `env:"ARSENAL_LOG_LEVEL"`
	LogFile  string `env:"ARSENAL_LOG_FILE"`

	Redis Redis

	StatsTTL         time.Duration          `env:"ARSENAL_STATS_TTL"`
	TransitionPolicy model.TransitionPolicy `env:"ARSENAL_TRANSITION_POLICY"`
	RecentLimit      int                    `env:"ARSENAL_RECENT_LIMIT"`
}

// Redis configures the optional stats cache. An empty Addr disables it.
type Redis struct {
	Addr     string `env:"ARSENAL_REDIS_ADDR"`
	Password string `env:"ARSENAL_REDIS_PASSWORD"`
	DB       int    `env:"ARSENAL_REDIS_DB"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		DB:               "arsenal.sqlite3",
		Addr:             ":8080",
		LogLevel:         "info",
		StatsTTL:         30 * time.Second,
		TransitionPolicy: model.PolicyPermissive,
		RecentLimit:      5,
	}
}

// Load reads envFile (if it exists) into the process environment, then decodes
// the environment over the defaults. Variables already set take precedence
// over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decoding environment: %w", err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.DB == "" {
		return errors.New("database path is empty")
	}
	if c.Addr == "" {
		return errors.New("listen address is empty")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if !c.TransitionPolicy.Valid() {
		return fmt.Errorf("unknown transition policy %q", c.TransitionPolicy)
	}
	if c.RecentLimit <= 0 {
		return fmt.Errorf("recent limit must be positive, got %d", c.RecentLimit)
	}
	if c.StatsTTL < 0 {
		return fmt.Errorf("stats ttl must not be negative, got %s", c.StatsTTL)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis db must not be negative, got %d", c.Redis.DB)
	}
	return nil
}
