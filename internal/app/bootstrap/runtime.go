package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/appointment-assistant/internal/appointments"
	"github.com/wolfman30/appointment-assistant/internal/catalog"
	appconfig "github.com/wolfman30/appointment-assistant/internal/config"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "addr", cfg.RedisAddr, "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildCatalog serves the seeded reference data, read through Redis when a
// client is available. Lists cached by an earlier process are dropped so
// the cache never outlives a seed change.
func BuildCatalog(ctx context.Context, cfg *appconfig.Config, redisClient *redis.Client, logger *logging.Logger) *catalog.Catalog {
	var source catalog.Source = catalog.NewStaticSource(catalog.DefaultProviders(), catalog.DefaultServices())
	if redisClient != nil {
		ttl := cfg.CatalogCacheTTL
		cache := catalog.NewRedisCache(redisClient, source, ttl, logger)
		if err := cache.Invalidate(ctx); err != nil {
			logger.Warn("catalog cache invalidate failed", "error", err)
		}
		source = cache
		logger.Info("catalog cache enabled", "ttl", ttl)
	}
	return catalog.New(source, logger)
}

// BuildSlotGuard returns the configured double-booking guard, or nil for
// "none". A redis guard without a client is a configuration error.
func BuildSlotGuard(cfg *appconfig.Config, redisClient *redis.Client, logger *logging.Logger) (appointments.SlotGuard, error) {
	switch cfg.SlotGuard {
	case "", "none":
		return nil, nil
	case "memory":
		logger.Info("slot guard enabled", "kind", "memory")
		return appointments.NewMemoryGuard(), nil
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("bootstrap: SLOT_GUARD=redis requires a reachable REDIS_ADDR")
		}
		logger.Info("slot guard enabled", "kind", "redis")
		return appointments.NewRedisGuard(redisClient, 0), nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown SLOT_GUARD %q", cfg.SlotGuard)
	}
}
