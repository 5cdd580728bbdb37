package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "250ms" or "2s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the daemon configuration, loaded from an optional YAML
// file and overridable through WATERJUG_* environment variables.
type Config struct {
	Addr string `yaml:"addr"`

	Cache struct {
		MaxEntries int `yaml:"max_entries"`
	} `yaml:"cache"`

	Limits struct {
		RateLimit     float64  `yaml:"rate_limit"`
		RateBurst     int      `yaml:"rate_burst"`
		MaxConcurrent int      `yaml:"max_concurrent"`
		SolveTimeout  Duration `yaml:"solve_timeout"`
	} `yaml:"limits"`

	Telemetry struct {
		TracingExporter string  `yaml:"tracing_exporter"`
		SamplePct       float64 `yaml:"sample_pct"`
		MetricsExporter string  `yaml:"metrics_exporter"`
		LogLevel        string  `yaml:"log_level"`
	} `yaml:"telemetry"`
}

// DefaultConfig returns the configuration used when no file and no
// environment overrides are present.
func DefaultConfig() Config {
	var cfg Config
	cfg.Addr = ":8000"
	cfg.Cache.MaxEntries = 10000
	cfg.Limits.RateLimit = 100
	cfg.Limits.RateBurst = 20
	cfg.Limits.MaxConcurrent = 64
	cfg.Limits.SolveTimeout = Duration(10 * time.Second)
	cfg.Telemetry.TracingExporter = "none"
	cfg.Telemetry.SamplePct = 1.0
	cfg.Telemetry.MetricsExporter = "prometheus"
	cfg.Telemetry.LogLevel = "info"
	return cfg
}

// LoadConfig builds the effective configuration: defaults, then the
// YAML file at path (if non-empty), then environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WATERJUG_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("WATERJUG_CACHE_MAX_ENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.MaxEntries = n
		}
	}
	if v := os.Getenv("WATERJUG_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Limits.RateLimit = f
		}
	}
	if v := os.Getenv("WATERJUG_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.RateBurst = n
		}
	}
	if v := os.Getenv("WATERJUG_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.MaxConcurrent = n
		}
	}
	if v := os.Getenv("WATERJUG_SOLVE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Limits.SolveTimeout = Duration(d)
		}
	}
	if v := os.Getenv("WATERJUG_TRACING_EXPORTER"); v != "" {
		cfg.Telemetry.TracingExporter = v
	}
	if v := os.Getenv("WATERJUG_METRICS_EXPORTER"); v != "" {
		cfg.Telemetry.MetricsExporter = v
	}
	if v := os.Getenv("WATERJUG_LOG_LEVEL"); v != "" {
		cfg.Telemetry.LogLevel = v
	}
}
