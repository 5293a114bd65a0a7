// Package config loads the TOML settings file. Every field has a default so
// a missing or empty file is valid.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	EnvConfigPath = "TARIQ_CONFIG"
	EnvDBPath     = "TARIQ_DB"
)

type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Logging   LoggingConfig   `toml:"logging"`
	Clock     ClockConfig     `toml:"clock"`
	Estimator EstimatorConfig `toml:"estimator"`
	Predictor PredictorConfig `toml:"predictor"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level string `toml:"level"` // debug | info | warn | error
	File  string `toml:"file"`  // optional logfmt sink, appended to
}

type ClockConfig struct {
	// TickSeconds is how often the dashboard refreshes derived views.
	TickSeconds int `toml:"tick_seconds"`
	// AsOf pins "now" for reports (RFC3339). Empty means wall clock.
	AsOf string `toml:"as_of"`
}

// EstimatorConfig bounds the progress window, in percent, inside which an
// external end-date estimate is preferred over the formula.
type EstimatorConfig struct {
	LowerBand float64 `toml:"lower_band"`
	UpperBand float64 `toml:"upper_band"`
}

type PredictorConfig struct {
	Enabled    bool   `toml:"enabled"`
	Endpoint   string `toml:"endpoint"`
	Model      string `toml:"model"`
	TimeoutMs  int    `toml:"timeout_ms"`
	MaxRetries int    `toml:"max_retries"`
}

func Default(dbPath string) Config {
	return Config{
		Database: DatabaseConfig{Path: dbPath},
		Logging:  LoggingConfig{Level: "warn"},
		Clock:    ClockConfig{TickSeconds: 60},
		Estimator: EstimatorConfig{
			LowerBand: 5,
			UpperBand: 95,
		},
		Predictor: PredictorConfig{
			Enabled:    false,
			Endpoint:   "http://localhost:11434",
			Model:      "llama3.2",
			TimeoutMs:  10000,
			MaxRetries: 1,
		},
	}
}

// DefaultPaths returns the config file and database locations, honouring
// TARIQ_CONFIG and TARIQ_DB.
func DefaultPaths() (configPath, dbPath string, err error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("resolve home dir: %w", err)
	}
	dir := filepath.Join(home, ".tariq")
	configPath = filepath.Join(dir, "config.toml")
	dbPath = filepath.Join(dir, "tariq.db")
	if v := strings.TrimSpace(os.Getenv(EnvConfigPath)); v != "" {
		configPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		dbPath = v
	}
	return configPath, dbPath, nil
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}
	if _, err := log.ParseLevel(strings.TrimSpace(c.Logging.Level)); err != nil {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	if c.Clock.TickSeconds <= 0 {
		return fmt.Errorf("clock.tick_seconds must be > 0, got %d", c.Clock.TickSeconds)
	}
	if _, err := c.Clock.FixedNow(); err != nil {
		return err
	}
	lo, hi := c.Estimator.LowerBand, c.Estimator.UpperBand
	if lo < 0 || hi > 100 || lo >= hi {
		return fmt.Errorf("estimator band must satisfy 0 <= lower_band < upper_band <= 100, got %g..%g", lo, hi)
	}
	if c.Predictor.Enabled {
		if strings.TrimSpace(c.Predictor.Endpoint) == "" {
			return errors.New("predictor.endpoint is required when the predictor is enabled")
		}
		if strings.TrimSpace(c.Predictor.Model) == "" {
			return errors.New("predictor.model is required when the predictor is enabled")
		}
	}
	if c.Predictor.TimeoutMs <= 0 {
		return fmt.Errorf("predictor.timeout_ms must be > 0, got %d", c.Predictor.TimeoutMs)
	}
	if c.Predictor.MaxRetries < 0 {
		return fmt.Errorf("predictor.max_retries must be >= 0, got %d", c.Predictor.MaxRetries)
	}
	return nil
}

// Tick returns the dashboard refresh interval.
func (c ClockConfig) Tick() time.Duration {
	return time.Duration(c.TickSeconds) * time.Second
}

// FixedNow parses AsOf. It returns nil when no override is configured.
func (c ClockConfig) FixedNow() (*time.Time, error) {
	v := strings.TrimSpace(c.AsOf)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, fmt.Errorf("invalid clock.as_of %q: expected RFC3339", c.AsOf)
	}
	return &t, nil
}
