package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shanebarringer/ultracoach-sub004/internal/matching"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Matching  MatchingConfig  `yaml:"matching"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// MatchingConfig overrides the engine defaults. Zero values mean "use the
// default", so a config file may set any subset.
type MatchingConfig struct {
	DateToleranceDays int     `yaml:"date_tolerance_days"`
	DistanceTolerance float64 `yaml:"distance_tolerance"`
	DurationTolerance float64 `yaml:"duration_tolerance"`
	MinConfidence     float64 `yaml:"min_confidence"`
}

// Options merges the config values over matching.DefaultOptions.
func (m MatchingConfig) Options() matching.Options {
	opts := matching.DefaultOptions()
	if m.DateToleranceDays > 0 {
		opts.DateToleranceDays = m.DateToleranceDays
	}
	if m.DistanceTolerance > 0 {
		opts.DistanceTolerance = m.DistanceTolerance
	}
	if m.DurationTolerance > 0 {
		opts.DurationTolerance = m.DurationTolerance
	}
	if m.MinConfidence > 0 {
		opts.MinConfidence = m.MinConfidence
	}
	return opts
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix ULTRACOACH_ and underscore-separated
// paths:
//
//	ULTRACOACH_SERVER_HOST, ULTRACOACH_SERVER_PORT,
//	ULTRACOACH_DB_HOST, ULTRACOACH_DB_PORT, ULTRACOACH_DB_NAME,
//	ULTRACOACH_DB_USER, ULTRACOACH_DB_PASSWORD, ULTRACOACH_DB_SSLMODE,
//	ULTRACOACH_AUTH_API_KEY, ULTRACOACH_MATCHING_MIN_CONFIDENCE
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ULTRACOACH_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("ULTRACOACH_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("ULTRACOACH_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("ULTRACOACH_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("ULTRACOACH_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("ULTRACOACH_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("ULTRACOACH_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("ULTRACOACH_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("ULTRACOACH_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("ULTRACOACH_MATCHING_MIN_CONFIDENCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Matching.MinConfidence = f
		}
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Matching.MinConfidence < 0 || c.Matching.MinConfidence > 1 {
		return fmt.Errorf("matching.min_confidence must be between 0 and 1")
	}
	if c.Matching.DistanceTolerance < 0 || c.Matching.DistanceTolerance > 1 {
		return fmt.Errorf("matching.distance_tolerance must be between 0 and 1")
	}
	if c.Matching.DurationTolerance < 0 || c.Matching.DurationTolerance > 1 {
		return fmt.Errorf("matching.duration_tolerance must be between 0 and 1")
	}
	return nil
}
