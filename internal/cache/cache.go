package cache

import (
	"context"
	"time"

	"cataloger/internal/logger"

	"github.com/go-redis/redis/v8"
)

// Cache is a thin redis wrapper used for best-effort response caching.
// Callers treat every failure as a miss.
type Cache struct {
	client *redis.Client
	logger *logger.Logger
}

func New(redisURL string, logger *logger.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &Cache{client: redis.NewClient(opts), logger: logger}, nil
}

// Get returns the cached payload or nil on miss or error.
func (c *Cache) Get(ctx context.Context, key string) []byte {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("cache get failed for %s: %v", key, err)
		}
		return nil
	}
	return data
}

// Set stores the payload with a TTL; failures are logged and ignored.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Debug("cache set failed for %s: %v", key, err)
	}
}

func (c *Cache) Close() error {
	return c.client.Close()
}
