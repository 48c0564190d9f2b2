// Package config loads mazepath settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config aggregates application configuration values.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Render    RenderConfig    `yaml:"render"`
	Search    SearchConfig    `yaml:"search"`
	HTTP      HTTPConfig      `yaml:"http"`
	Cache     CacheConfig     `yaml:"cache"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format        string `yaml:"format" validate:"oneof=text json"`
	IncludeCaller bool   `yaml:"include_caller"`
}

// RenderConfig governs path playback.
type RenderConfig struct {
	StepDelay time.Duration `yaml:"step_delay" validate:"gte=0"`
	WallGlyph string        `yaml:"wall_glyph" validate:"required"`
	PathGlyph string        `yaml:"path_glyph" validate:"required"`
	OpenGlyph string        `yaml:"open_glyph" validate:"required"`
}

// SearchConfig tunes the pathfinder.
type SearchConfig struct {
	Workers int `yaml:"workers" validate:"gte=0"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	MetricsEnabled  bool          `yaml:"metrics_enabled"`
	SessionTTL      time.Duration `yaml:"session_ttl" validate:"gt=0"`
	MaxSessions     int           `yaml:"max_sessions" validate:"gt=0"`
}

// CacheConfig describes the solution cache.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Dir      string `yaml:"dir" validate:"required_if=Enabled true InMemory false"`
	InMemory bool   `yaml:"in_memory"`
}

// TelemetryConfig selects OpenTelemetry exporters.
type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name" validate:"required"`
	TraceExporter  string `yaml:"trace_exporter" validate:"oneof=stdout none"`
	MetricExporter string `yaml:"metric_exporter" validate:"oneof=prometheus none"`
}

const (
	defaultStepDelay       = 500 * time.Millisecond
	defaultAddr            = "127.0.0.1:8080"
	defaultReadTimeout     = 10 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultSessionTTL      = 15 * time.Minute
	defaultMaxSessions     = 1024
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Render: RenderConfig{
			StepDelay: defaultStepDelay,
			WallGlyph: "█",
			PathGlyph: "●",
			OpenGlyph: "·",
		},
		HTTP: HTTPConfig{
			Addr:            defaultAddr,
			ReadTimeout:     defaultReadTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
			SessionTTL:      defaultSessionTTL,
			MaxSessions:     defaultMaxSessions,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "mazepath",
			TraceExporter:  "none",
			MetricExporter: "none",
		},
	}
}

// Load reads the YAML file at path on top of the defaults, applies
// environment overrides and validates the result. An empty path falls back to
// $MAZE_CONFIG; a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("MAZE_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read the config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse the config file %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags on cfg.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Logging.Level = valueOrDefault("MAZE_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault("MAZE_LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.IncludeCaller = parseBoolWithDefault("MAZE_LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)
	cfg.HTTP.Addr = valueOrDefault("MAZE_HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.MetricsEnabled = parseBoolWithDefault("MAZE_METRICS_ENABLED", cfg.HTTP.MetricsEnabled)
	cfg.Search.Workers = parseIntWithDefault("MAZE_WORKERS", cfg.Search.Workers)
	cfg.Telemetry.TraceExporter = valueOrDefault("OTEL_TRACES_EXPORTER", cfg.Telemetry.TraceExporter)
	cfg.Telemetry.MetricExporter = valueOrDefault("OTEL_METRICS_EXPORTER", cfg.Telemetry.MetricExporter)

	if dir := os.Getenv("MAZE_CACHE_DIR"); dir != "" {
		cfg.Cache.Dir = dir
		cfg.Cache.Enabled = true
	}

	if v := os.Getenv("MAZE_STEP_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid MAZE_STEP_DELAY: %w", err)
		}
		cfg.Render.StepDelay = d
	}
	return nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}
