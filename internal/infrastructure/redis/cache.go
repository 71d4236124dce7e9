package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ezm-trade/trade-api/pkg/config"
	"github.com/ezm-trade/trade-api/pkg/logger"
)

// Cache wraps a Redis client behind the cache ports used by the application
// layer. Every error degrades to a cache miss so Redis outages never surface
// to callers.
type Cache struct {
	client *redis.Client
	log    *logger.Logger
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Cache{client: client, log: log}, nil
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// GetInt returns the cached integer at key, false on miss or error.
func (c *Cache) GetInt(ctx context.Context, key string) (int, bool) {
	n, err := c.client.Get(ctx, key).Int()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("redis get failed")
		}
		return 0, false
	}
	return n, true
}

// SetInt stores an integer under key with the given TTL.
func (c *Cache) SetInt(ctx context.Context, key string, value int, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("redis set failed")
	}
}

// Delete removes key.
func (c *Cache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("redis del failed")
	}
}

// Get returns the cached bytes at key, false on miss or error.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("redis get failed")
		}
		return nil, false
	}
	return b, true
}

// Set stores bytes under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("redis set failed")
	}
}
