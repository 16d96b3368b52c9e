// Package cache wraps a Redis client with JSON helpers. Every method is safe
// on a Cache without a live connection: reads miss and writes are dropped,
// so the app keeps serving from the database when Redis is down.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/pkg/metrics"
)

// Cache is a JSON view over a Redis client. The zero value (and nil) is a
// permanently empty cache.
type Cache struct {
	rdb    *redis.Client
	prefix string
}

// New wraps an existing client. rdb may be nil.
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb, prefix: "orderdesk:"}
}

// Connect dials Redis using the configured address and verifies it with a
// ping. On failure it returns a disabled Cache together with the error so the
// caller can log a warning and carry on.
func Connect(ctx context.Context) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return New(nil), fmt.Errorf("cache: redis ping: %w", err)
	}
	return New(rdb), nil
}

// Client exposes the underlying client (nil when disabled). The redis
// session store shares it.
func (c *Cache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.rdb
}

// Enabled reports whether a Redis connection is attached.
func (c *Cache) Enabled() bool { return c != nil && c.rdb != nil }

// Get unmarshals the value stored at key into dest. It reports a hit.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores value under key for ttl.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}
	return c.rdb.Set(ctx, c.prefix+key, data, ttl).Err()
}

// Del removes keys.
func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	return c.rdb.Del(ctx, full...).Err()
}

// Forget is Del for a single key.
func (c *Cache) Forget(ctx context.Context, key string) error {
	return c.Del(ctx, key)
}

// Remember returns the cached value at key, or calls fn, stores its result
// for ttl and decodes it into dest. Hits and misses are counted per key.
func Remember[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	var v T
	if c.Get(ctx, key, &v) {
		metrics.CacheHits.WithLabelValues(key).Inc()
		return v, nil
	}
	metrics.CacheMisses.WithLabelValues(key).Inc()

	v, err := fn()
	if err != nil {
		return v, err
	}
	_ = c.Set(ctx, key, v, ttl)
	return v, nil
}
