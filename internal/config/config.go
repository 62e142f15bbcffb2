// Package config loads the walkthrough settings from defaults, an optional YAML file and
// WALKTHROUGH_* environment variables, in that order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Seen store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds every runtime setting of the CLI and the HTTP server.
type Config struct {
	Mode      string `yaml:"mode" env:"WALKTHROUGH_MODE"`
	Autostart bool   `yaml:"autostart" env:"WALKTHROUGH_AUTOSTART"`
	Catalog   string `yaml:"catalog" env:"WALKTHROUGH_CATALOG"`

	Seen SeenConfig `yaml:"seen"`

	ScrollDuration   time.Duration `yaml:"scroll_duration" env:"WALKTHROUGH_SCROLL_DURATION"`
	ExpandDuration   time.Duration `yaml:"expand_duration" env:"WALKTHROUGH_EXPAND_DURATION"`
	CollapseDuration time.Duration `yaml:"collapse_duration" env:"WALKTHROUGH_COLLAPSE_DURATION"`

	HTTPAddr string        `yaml:"http_addr" env:"WALKTHROUGH_HTTP_ADDR"`
	TourTTL  time.Duration `yaml:"tour_ttl" env:"WALKTHROUGH_TOUR_TTL"`
	MaxTours int           `yaml:"max_tours" env:"WALKTHROUGH_MAX_TOURS"`

	LogFormat string `yaml:"log_format" env:"WALKTHROUGH_LOG_FORMAT"`
}

// SeenConfig selects where the "tour seen" flag is persisted.
type SeenConfig struct {
	Backend    string `yaml:"backend" env:"WALKTHROUGH_SEEN_BACKEND"`
	Key        string `yaml:"key" env:"WALKTHROUGH_SEEN_KEY"`
	ExpiryDays int    `yaml:"expiry_days" env:"WALKTHROUGH_SEEN_EXPIRY_DAYS"`

	FilePath   string `yaml:"file_path" env:"WALKTHROUGH_SEEN_FILE"`
	SQLitePath string `yaml:"sqlite_path" env:"WALKTHROUGH_SEEN_SQLITE"`

	RedisAddr     string `yaml:"redis_addr" env:"WALKTHROUGH_REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"WALKTHROUGH_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"WALKTHROUGH_REDIS_DB"`
	RedisPrefix   string `yaml:"redis_prefix" env:"WALKTHROUGH_REDIS_PREFIX"`
}

// TTL returns the seen flag expiry.
func (s SeenConfig) TTL() time.Duration {
	return time.Duration(s.ExpiryDays) * 24 * time.Hour
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Mode: "labels",
		Seen: SeenConfig{
			Backend:     BackendFile,
			Key:         "skipTutorial",
			ExpiryDays:  365,
			FilePath:    ".walkthrough/seen.json",
			SQLitePath:  ".walkthrough/seen.db",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "walkthrough:seen:",
		},
		ScrollDuration:   1000 * time.Millisecond,
		ExpandDuration:   500 * time.Millisecond,
		CollapseDuration: 400 * time.Millisecond,
		HTTPAddr:         ":8080",
		TourTTL:          30 * time.Minute,
		MaxTours:         10000,
		LogFormat:        LogFormatText,
	}
}

// Load builds the configuration. An empty path skips the file layer;
// a missing file at an explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv overlays WALKTHROUGH_* variables onto target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	switch c.Seen.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendSQLite:
	default:
		return fmt.Errorf("unknown seen backend %q", c.Seen.Backend)
	}
	if c.Seen.Key == "" {
		return fmt.Errorf("seen key cannot be empty")
	}
	if c.Seen.ExpiryDays <= 0 {
		return fmt.Errorf("seen expiry must be positive, got %d days", c.Seen.ExpiryDays)
	}
	if c.ScrollDuration < 0 || c.ExpandDuration < 0 || c.CollapseDuration < 0 {
		return fmt.Errorf("animation durations cannot be negative")
	}
	if c.TourTTL <= 0 || c.MaxTours <= 0 {
		return fmt.Errorf("tour ttl and max tours must be positive")
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
