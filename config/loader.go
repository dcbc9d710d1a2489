package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads the TOML configuration file at path, if path is not empty, on top
// of the defaults, then applies the TP_* environment variable overrides. A
// .env file in the working directory is loaded first if present.
//
// The returned Config has not been validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.setStr(&cfg.Storage.Backend, "TP_BACKEND")
	cfg.setStr(&cfg.Storage.DataDir, "TP_DATA_DIR")
	cfg.setStr(&cfg.Storage.SQLite.Path, "TP_SQLITE_PATH")
	cfg.setStr(&cfg.Storage.Redis.Addr, "TP_REDIS_ADDR")
	cfg.setStr(&cfg.Storage.Redis.Password, "TP_REDIS_PASSWORD")
	cfg.setInt(&cfg.Storage.Redis.DB, "TP_REDIS_DB")
	cfg.setStr(&cfg.Storage.Redis.Prefix, "TP_REDIS_PREFIX")

	cfg.setStr(&cfg.API.BaseURL, "TP_API_BASE_URL")
	cfg.setStr(&cfg.API.Lang, "TP_API_LANG")
	cfg.setDuration(&cfg.API.Timeout, "TP_API_TIMEOUT")
	cfg.setInt(&cfg.API.Concurrency, "TP_API_CONCURRENCY")

	cfg.setDuration(&cfg.Watch.Interval, "TP_WATCH_INTERVAL")
	cfg.setStr(&cfg.Metrics.Addr, "TP_METRICS_ADDR")
}

func (c *Config) setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.envErrs = append(c.envErrs, fmt.Sprintf("%s must be an integer, got %q", key, v))
		return
	}
	*dst = n
}

func (c *Config) setDuration(dst *duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		c.envErrs = append(c.envErrs, fmt.Sprintf("%s must be a duration like \"10s\", got %q", key, v))
		return
	}
	dst.Duration = d
}
