// Package config defines the tp configuration, read from a TOML file and
// overridden by TP_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the complete configuration of tp.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	API     APIConfig     `toml:"api"`
	Watch   WatchConfig   `toml:"watch"`
	Metrics MetricsConfig `toml:"metrics"`

	envErrs []string // malformed TP_* values, reported by Validate
}

// StorageConfig selects and configures the document backend.
type StorageConfig struct {
	Backend string       `toml:"backend"`  // file, sqlite or redis
	DataDir string       `toml:"data_dir"` // file backend directory
	SQLite  SQLiteConfig `toml:"sqlite"`
	Redis   RedisConfig  `toml:"redis"`
}

type SQLiteConfig struct {
	Path string `toml:"path"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// APIConfig configures the Guild Wars 2 API client.
type APIConfig struct {
	BaseURL     string   `toml:"base_url"`
	Lang        string   `toml:"lang"`
	Timeout     duration `toml:"timeout"`
	Concurrency int      `toml:"concurrency"` // quotes fetched at once
}

// WatchConfig configures the polling of tp watch.
type WatchConfig struct {
	Interval duration `toml:"interval"`
}

// MetricsConfig configures the Prometheus endpoint served by tp watch.
type MetricsConfig struct {
	Addr string `toml:"addr"` // empty disables the endpoint
}

// duration wraps time.Duration so it can be decoded from a TOML string like
// "10s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Backends supported by StorageConfig.Backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			DataDir: ".",
			SQLite:  SQLiteConfig{Path: "tradingpost.db"},
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "tp:"},
		},
		API: APIConfig{
			BaseURL:     "https://api.guildwars2.com",
			Timeout:     duration{10 * time.Second},
			Concurrency: 8,
		},
		Watch: WatchConfig{
			Interval: duration{160 * time.Second},
		},
	}
}

// Validate reports every problem of the configuration in a single error.
func (c *Config) Validate() error {
	errs := append([]string(nil), c.envErrs...)

	switch strings.ToLower(c.Storage.Backend) {
	case BackendFile:
		if c.Storage.DataDir == "" {
			errs = append(errs, "storage.data_dir is required for the file backend")
		}
	case BackendSQLite:
		if c.Storage.SQLite.Path == "" {
			errs = append(errs, "storage.sqlite.path is required for the sqlite backend")
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			errs = append(errs, "storage.redis.addr is required for the redis backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown storage.backend %q (valid: file, sqlite, redis)", c.Storage.Backend))
	}

	if c.API.BaseURL == "" {
		errs = append(errs, "api.base_url is required")
	}
	if c.API.Timeout.Duration <= 0 {
		errs = append(errs, fmt.Sprintf("api.timeout must be positive, got %v", c.API.Timeout.Duration))
	}
	if c.API.Concurrency < 1 {
		errs = append(errs, fmt.Sprintf("api.concurrency must be at least 1, got %d", c.API.Concurrency))
	}
	if c.Watch.Interval.Duration <= 0 {
		errs = append(errs, fmt.Sprintf("watch.interval must be positive, got %v", c.Watch.Interval.Duration))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
