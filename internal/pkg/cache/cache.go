package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is an opportunistic read-through cache over Redis. A nil *Cache is
// valid and does nothing, so callers never have to branch on whether caching
// is configured. Failures are logged and swallowed: correctness always comes
// from the database.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at addr. Returns nil (cache disabled) when addr is
// empty or the server is unreachable.
func New(addr, password string, db int, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		slog.Warn("redis unreachable, cache disabled", "addr", addr, "error", err)
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

// Get unmarshals the cached value for key into dest and reports whether a
// usable value was found.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("cache get failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		slog.Warn("cache entry unreadable", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores value under key with the cache's TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	}
}

// Invalidate removes the given keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("cache invalidate failed", "keys", keys, "error", err)
	}
}
