// Package cache keeps small catalog lookups in Redis between requests.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultTTL is how long a cached brand list stays valid.
const DefaultTTL = 10 * time.Minute

// DefaultKeyPrefix namespaces every key written by the cache.
const DefaultKeyPrefix = "decant:catalog"

// BrandCache stores brand lists as JSON strings under {prefix}:{key}.
type BrandCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewBrandCache wraps an already connected client. A non-positive ttl
// selects DefaultTTL.
func NewBrandCache(client *redis.Client, ttl time.Duration) *BrandCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &BrandCache{
		client: client,
		prefix: DefaultKeyPrefix,
		ttl:    ttl,
	}
}

// Connect parses redisURL, opens a client and verifies it with PING.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (c *BrandCache) key(key string) string {
	return c.prefix + ":" + key
}

// Get returns the cached list. A missing key is not an error.
func (c *BrandCache) Get(ctx context.Context, key string) ([]string, bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var brands []string
	if err := json.Unmarshal(data, &brands); err != nil {
		return nil, false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return brands, true, nil
}

// Set stores brands with the cache TTL.
func (c *BrandCache) Set(ctx context.Context, key string, brands []string) error {
	if brands == nil {
		brands = []string{}
	}
	data, err := json.Marshal(brands)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Invalidate drops the given keys, e.g. after reseeding the catalog.
func (c *BrandCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate brand cache: %w", err)
	}
	return nil
}
