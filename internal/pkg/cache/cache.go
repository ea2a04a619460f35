package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps a go-redis client with JSON helpers. It backs the TTL-bounded
// read-through cache for read-mostly configuration data (payment account
// directory). The payment ledger is never cached: every read preceding a
// ledger mutation must be fresh.
type Client struct {
	rdb *redis.Client
}

// Config defines Redis connection parameters
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// New returns a cache client for the given configuration
func New(cfg Config) *Client {
	return &Client{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// Ping verifies Redis connectivity
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// SetJSON caches a value as JSON with the provided TTL
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}

// GetJSON retrieves a cached JSON value into dest. Returns false when the key
// is absent or expired.
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	res, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(res), dest); err != nil {
		return false, fmt.Errorf("json unmarshal: %w", err)
	}
	return true, nil
}

// Delete removes a cached key (used to invalidate after writes)
func (c *Client) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// Close releases Redis resources
func (c *Client) Close() error {
	return c.rdb.Close()
}
