package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Error matching
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// JSONCache stores JSON documents in Redis under a common key prefix
type JSONCache struct {
	rdb    *redis.Client // Redis client
	prefix string        // Key namespace, e.g. "catalog:"
	ttl    time.Duration // Lifetime of every entry
}

// NewJSONCache returns a cache writing keys under prefix with the given TTL
func NewJSONCache(rdb *redis.Client, prefix string, ttl time.Duration) *JSONCache {
	return &JSONCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *JSONCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.rdb.Get(ctx, c.prefix+key).Bytes() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	if err := json.Unmarshal(val, dest); err != nil {
		_ = c.Delete(ctx, key) // Drop the corrupt entry so the next read repopulates it
		return false, err
	}
	return true, nil
}

// Set stores a value in Redis with the cache TTL
func (c *JSONCache) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, c.prefix+key, b, c.ttl).Err() // Set value in Redis with TTL
}

// Delete removes a key from Redis
func (c *JSONCache) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, c.prefix+key).Err() // Delete key from Redis
}
