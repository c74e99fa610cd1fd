// Package redis implements the gateway's volatile state on go-redis/v9:
// sessions, the generation-guarded vote view cache, the watcher's cycle
// lock and counter, per-IP rate limits and the refresh signal bus. All of
// it is short-lived by design; the Mak'gora backend stays the source of
// truth for every entity.
package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// defaultKeyPrefix namespaces every key and pub/sub channel so a gateway
// can share a Redis with other tenants.
const defaultKeyPrefix = "makgora:"

// ClientConfig holds connection parameters for the Redis client.
type ClientConfig struct {
	Addr       string
	Password   string
	DB         int
	PoolSize   int
	MaxRetries int
	TLSEnabled bool
	// KeyPrefix namespaces all keys and channels; empty means "makgora:".
	KeyPrefix string
}

// Client wraps a go-redis Client with the gateway's key namespace. The
// stores in this package build every key and channel name through it.
type Client struct {
	rdb    *redis.Client
	prefix string
}

// New connects, pings to verify connectivity and returns the wrapped
// client. A missing key prefix falls back to the default namespace.
func New(ctx context.Context, cfg ClientConfig) (*Client, error) {
	opts := &redis.Options{
		Addr:       cfg.Addr,
		Password:   cfg.Password,
		DB:         cfg.DB,
		PoolSize:   cfg.PoolSize,
		MaxRetries: cfg.MaxRetries,
	}

	if cfg.TLSEnabled {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	prefix := strings.TrimSpace(cfg.KeyPrefix)
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return &Client{rdb: rdb, prefix: prefix}, nil
}

// key places a name under the gateway's namespace.
func (c *Client) key(name string) string {
	return c.prefix + name
}

// Ping checks the Redis connection.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
