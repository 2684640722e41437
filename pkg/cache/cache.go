package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLOverview = 1 * time.Minute // admin overview snapshot (aggregation is expensive)
	TTLDefault  = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixAdmin = "admin:"

	KeyOverview = PrefixAdmin + "overview"
)

// Service is the Redis cache interface used by the engine.
// All methods tolerate a nil client so the API keeps working
// when Redis is unavailable.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetOverview(ctx context.Context, dest interface{}) error
	SetOverview(ctx context.Context, data interface{}) error
	InvalidateOverview(ctx context.Context) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether a Redis client is attached
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping tests the Redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads a JSON value from the cache
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set stores a JSON value in the cache
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no Redis, silently skip
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes keys from the cache
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// GetOverview reads the cached admin overview snapshot
func (c *redisCache) GetOverview(ctx context.Context, dest interface{}) error {
	return c.Get(ctx, KeyOverview, dest)
}

// SetOverview caches the admin overview snapshot
func (c *redisCache) SetOverview(ctx context.Context, data interface{}) error {
	return c.Set(ctx, KeyOverview, data, TTLOverview)
}

// InvalidateOverview drops the cached overview, used after mutating admin actions
func (c *redisCache) InvalidateOverview(ctx context.Context) error {
	return c.Delete(ctx, KeyOverview)
}
