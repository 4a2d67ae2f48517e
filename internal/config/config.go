// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. DSDC_ADDR.
const Prefix = "DSDC"

// Config holds all server settings.
type Config struct {
	Addr        string `envconfig:"ADDR" default:":8080"`
	Env         string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	DatabaseURL string `envconfig:"DATABASE_URL" default:"dsdc.db?_pragma=busy_timeout(5000)"`

	DefaultTimezone string        `envconfig:"DEFAULT_TIMEZONE" default:"America/Vancouver"`
	SlowQuery       time.Duration `envconfig:"SLOW_QUERY" default:"50ms"`
	SlowRequest     time.Duration `envconfig:"SLOW_REQUEST" default:"500ms"`
	RateLimit       int           `envconfig:"RATE_LIMIT" default:"120"` // requests per minute per client IP

	CSRFKey string `envconfig:"CSRF_KEY"` // 32 bytes; random per boot when empty

	ResendKey     string   `envconfig:"RESEND_KEY"`
	EmailFrom     string   `envconfig:"EMAIL_FROM" default:"DSDC Payroll <payroll@dsdc.ca>"`
	EmailReplyTo  string   `envconfig:"EMAIL_REPLY_TO" default:"office@dsdc.ca"`
	ReportTo      []string `envconfig:"REPORT_TO"`
	ReportCron    string   `envconfig:"REPORT_CRON" default:"0 7 1 * *"` // 07:00 on the 1st
	ReportToCoach bool     `envconfig:"REPORT_TO_COACHES" default:"false"`
}

// Load reads an optional .env file and binds DSDC_* variables.
// PRE: none
// POST: returns a validated Config or the first problem found
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c Config) Validate() error {
	if c.CSRFKey != "" && len(c.CSRFKey) != 32 {
		return errors.New("DSDC_CSRF_KEY must be exactly 32 bytes")
	}
	if c.RateLimit <= 0 {
		return errors.New("DSDC_RATE_LIMIT must be positive")
	}
	if c.IsProduction() && c.CSRFKey == "" {
		return errors.New("DSDC_CSRF_KEY is required in production")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
