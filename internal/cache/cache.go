package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Client is a fail-safe byte cache. It is backed by Redis when an address is
// configured and by an in-process store otherwise. Backend errors behave like
// cache misses so callers always fall through to the database.
type Client struct {
	client *redis.Client
	local  *gocache.Cache
}

// New creates a Redis-backed client, or an in-process one when addr is empty.
func New(addr, password string, db int) *Client {
	if addr == "" {
		return NewMemory()
	}
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// NewMemory creates a client backed by an in-process store.
func NewMemory() *Client {
	return &Client{local: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

// Get returns value or nil if missing or the backend is unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	switch {
	case c == nil:
		return nil, nil
	case c.local != nil:
		if v, ok := c.local.Get(key); ok {
			return v.([]byte), nil
		}
		return nil, nil
	case c.client != nil:
		res, err := c.client.Get(ctx, key).Bytes()
		if err != nil {
			// redis.Nil and connectivity errors alike are misses
			return nil, nil
		}
		return res, nil
	}
	return nil, nil
}

// Set stores value with TTL, ignoring backend errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	switch {
	case c == nil:
		return nil
	case c.local != nil:
		c.local.Set(key, value, ttl)
	case c.client != nil:
		// fail safe: ignore redis errors
		_ = c.client.Set(ctx, key, value, ttl).Err()
	}
	return nil
}

// Delete removes keys, ignoring backend errors.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	switch {
	case c == nil || len(keys) == 0:
		return nil
	case c.local != nil:
		for _, key := range keys {
			c.local.Delete(key)
		}
	case c.client != nil:
		_ = c.client.Del(ctx, keys...).Err()
	}
	return nil
}

// Close releases the Redis connection pool, if any.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
