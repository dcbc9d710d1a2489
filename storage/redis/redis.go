// Package redis stores tradingpost documents in Redis using go-redis/v9.
package redis

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/redis/go-redis/v9"
)

// ClientConfig holds connection parameters for the Redis client.
type ClientConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // prepended to every document key, like "tp:"
	Timeout  time.Duration // per operation, 5s if zero
}

// Backend stores each document as a plain string value.
type Backend struct {
	rdb     *redis.Client
	prefix  string
	timeout time.Duration
}

// New creates a Backend, pings Redis to verify connectivity, and returns it.
func New(ctx context.Context, cfg ClientConfig) (*Backend, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Backend{rdb: rdb, prefix: cfg.Prefix, timeout: timeout}, nil
}

// Close closes the Redis connection.
func (b *Backend) Close() error { return b.rdb.Close() }

// Get reads the document key, or returns an error matching fs.ErrNotExist.
func (b *Backend) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	data, err := b.rdb.Get(ctx, b.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis: document %q: %w", key, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get %q: %w", key, err)
	}
	return data, nil
}

// Put replaces the document key. A single SET is atomic.
func (b *Backend) Put(key string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	if err := b.rdb.Set(ctx, b.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %q: %w", key, err)
	}
	return nil
}
