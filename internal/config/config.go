// Package config loads application configuration from a YAML file with
// environment-variable overrides. The dataset section carries the domain
// configuration the pipeline needs (periods, criterion directions) next to
// the usual deployment settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "30s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the top-level application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Dataset     DatasetConfig     `yaml:"dataset"`
	Database    DatabaseConfig    `yaml:"database"`
	Report      ReportConfig      `yaml:"report"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	RateLimit   RateLimitConfig   `yaml:"rateLimit"`
	Cache       CacheConfig       `yaml:"cache"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	ShutdownTimeout Duration `yaml:"shutdownTimeout"`
}

// DatasetConfig describes where the decision matrices live and how to read
// them: the ordered period labels and the per-criterion direction vector
// (+1 benefit, -1 cost).
type DatasetConfig struct {
	Dir        string   `yaml:"dir"`
	Periods    []string `yaml:"periods"`
	Directions []int    `yaml:"directions"`
}

// DatabaseConfig holds sqlite storage settings.
type DatabaseConfig struct {
	Dir string `yaml:"dir"`
}

// ReportConfig holds CSV export settings.
type ReportConfig struct {
	Dir     string `yaml:"dir"`
	Enabled bool   `yaml:"enabled"`
}

// LeaderboardConfig holds leaderboard cache behaviour.
type LeaderboardConfig struct {
	CacheTTL        Duration `yaml:"cacheTTL"`
	RefreshInterval Duration `yaml:"refreshInterval"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	RequestsPerMin int `yaml:"requestsPerMin"`
	Burst          int `yaml:"burst"`
}

// CacheConfig holds HTTP response cache settings.
type CacheConfig struct {
	TTL Duration `yaml:"ttl"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: Duration(30 * time.Second),
		},
		Dataset: DatasetConfig{
			Dir: "./DATASET",
		},
		Database: DatabaseConfig{
			Dir: "./data",
		},
		Report: ReportConfig{
			Dir:     "./results",
			Enabled: true,
		},
		Leaderboard: LeaderboardConfig{
			CacheTTL:        Duration(15 * time.Minute),
			RefreshInterval: Duration(10 * time.Minute),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMin: 60,
			Burst:          120,
		},
		Cache: CacheConfig{
			TTL: Duration(15 * time.Minute),
		},
	}
}

// Load reads the YAML file at path on top of the defaults, applies env
// overrides and validates. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("DATASET_DIR"); v != "" {
		c.Dataset.Dir = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.Database.Dir = v
	}
	if v := os.Getenv("RESULTS_DIR"); v != "" {
		c.Report.Dir = v
	}
}

// Validate checks the configuration for values that would only fail later
// and deeper in the pipeline.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	for j, d := range c.Dataset.Directions {
		if d != 1 && d != -1 {
			return fmt.Errorf("dataset direction %d is %d, must be +1 or -1", j, d)
		}
	}
	if c.RateLimit.RequestsPerMin <= 0 {
		return fmt.Errorf("rate limit requestsPerMin must be positive")
	}
	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}
	return nil
}
