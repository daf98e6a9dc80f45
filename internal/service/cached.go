package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"portfolio/internal/cache"
	"portfolio/internal/metrics"
)

// Cache keys for the public read models. Any mutation of a kind deletes its key.
const (
	skillsCacheKey      = "portfolio:skills"
	projectsCacheKey    = "portfolio:projects"
	aboutInfoCacheKey   = "portfolio:about"
	contactInfoCacheKey = "portfolio:contact-info"
)

// DefaultCacheTTL is used when a service is built with a zero TTL.
const DefaultCacheTTL = 5 * time.Minute

// loadCached returns the cached value for key, or calls load and caches its
// result. Entries are stored under the generation read before load, so a
// result read before a concurrent mutation lands under a retired generation
// and is never served. Undecodable entries are treated as misses.
func loadCached[T any](ctx context.Context, c *cache.Client, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	entryKey := key + ":" + generation(ctx, c, key)

	if data, _ := c.Get(ctx, entryKey); data != nil {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.Get().RecordCacheLookup(key, true)
			return cached, nil
		}
	}
	metrics.Get().RecordCacheLookup(key, false)

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if payload, err := json.Marshal(value); err == nil {
		_ = c.Set(ctx, entryKey, payload, ttl)
	}
	return value, nil
}

// invalidateCached retires every entry cached for key. Call it after the
// store write has completed.
func invalidateCached(ctx context.Context, c *cache.Client, key string) {
	_ = c.Set(ctx, key+generationSuffix, []byte(uuid.NewString()), 0)
}

const generationSuffix = ":gen"

// generation returns the current generation of key, starting a new one when
// none is stored.
func generation(ctx context.Context, c *cache.Client, key string) string {
	if data, _ := c.Get(ctx, key+generationSuffix); len(data) > 0 {
		return string(data)
	}
	gen := uuid.NewString()
	_ = c.Set(ctx, key+generationSuffix, []byte(gen), 0)
	return gen
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultCacheTTL
	}
	return ttl
}
