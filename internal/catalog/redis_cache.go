package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

const (
	providersCacheKey = "catalog:providers"
	servicesCacheKey  = "catalog:services"
)

// RedisCache is a read-through cache in front of another Source. Redis
// failures degrade to the wrapped source.
type RedisCache struct {
	client *redis.Client
	next   Source
	ttl    time.Duration
	logger *logging.Logger
}

// NewRedisCache wraps next with a Redis JSON cache.
func NewRedisCache(client *redis.Client, next Source, ttl time.Duration, logger *logging.Logger) *RedisCache {
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCache{client: client, next: next, ttl: ttl, logger: logger}
}

// Providers implements Source.
func (c *RedisCache) Providers(ctx context.Context) ([]Provider, error) {
	var providers []Provider
	if c.load(ctx, providersCacheKey, &providers) {
		return providers, nil
	}
	providers, err := c.next.Providers(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, providersCacheKey, providers)
	return providers, nil
}

// Services implements Source.
func (c *RedisCache) Services(ctx context.Context) ([]Service, error) {
	var services []Service
	if c.load(ctx, servicesCacheKey, &services) {
		return services, nil
	}
	services, err := c.next.Services(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, servicesCacheKey, services)
	return services, nil
}

// Invalidate drops both cached lists.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, providersCacheKey, servicesCacheKey).Err(); err != nil {
		return fmt.Errorf("catalog: invalidate: %w", err)
	}
	return nil
}

func (c *RedisCache) load(ctx context.Context, key string, dest any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.Warn("catalog cache read failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("catalog cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *RedisCache) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("catalog cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", "key", key, "error", err)
	}
}
