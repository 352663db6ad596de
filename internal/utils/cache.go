package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"fmt"           // Error wrapping
	"time"          // Time durations

	gocache "github.com/patrickmn/go-cache" // In-process cache
	"github.com/redis/go-redis/v9"          // Redis client
)

// Cache stores JSON snapshots of read results under string keys
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheOptions selects and configures the cache backend
type CacheOptions struct {
	RedisAddr string        // Redis server address, empty for in-process cache
	RedisPass string        // Redis password
	RedisDB   int           // Redis database number
	Cleanup   time.Duration // Sweep interval of the in-process cache
}

// OpenCache returns a Redis cache when an address is configured, after
// checking the connection, and an in-process cache otherwise. Processes that
// share a Redis instance see each other's invalidations.
func OpenCache(ctx context.Context, opts CacheOptions) (Cache, error) {
	if opts.RedisAddr == "" {
		return NewMemoryCache(opts.Cleanup), nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.RedisAddr, // Redis server address
		Password: opts.RedisPass, // Redis password
		DB:       opts.RedisDB,   // Redis database number
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisCache(rdb), nil
}

// RedisCache implements Cache on a shared Redis instance
type RedisCache struct {
	rdb *redis.Client // Redis client
}

// NewRedisCache wraps a Redis client
func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// Set stores a value in Redis with a specified TTL
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// Delete removes keys from Redis
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}

// MemoryCache implements Cache in process, for single-instance deployments and tests
type MemoryCache struct {
	c *gocache.Cache // Backing store of JSON blobs
}

// NewMemoryCache creates an in-process cache swept every cleanup interval
func NewMemoryCache(cleanup time.Duration) *MemoryCache {
	return &MemoryCache{c: gocache.New(gocache.NoExpiration, cleanup)}
}

// Get retrieves a value and unmarshals it into dest
func (m *MemoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, found := m.c.Get(key)
	if !found {
		return false, nil
	}
	return true, json.Unmarshal(raw.([]byte), dest)
}

// Set stores a JSON snapshot so callers never share mutable state
func (m *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.c.Set(key, b, ttl)
	return nil
}

// Delete removes keys
func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		m.c.Delete(key)
	}
	return nil
}
