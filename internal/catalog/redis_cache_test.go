package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	Source
	providerCalls int
	serviceCalls  int
}

func (c *countingSource) Providers(ctx context.Context) ([]Provider, error) {
	c.providerCalls++
	return c.Source.Providers(ctx)
}

func (c *countingSource) Services(ctx context.Context) ([]Service, error) {
	c.serviceCalls++
	return c.Source.Services(ctx)
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func TestRedisCacheReadThrough(t *testing.T) {
	mr, client := setupTestRedis(t)
	src := &countingSource{Source: NewStaticSource(DefaultProviders(), DefaultServices())}
	cache := NewRedisCache(client, src, time.Minute, nil)
	ctx := context.Background()

	first, err := cache.Providers(ctx)
	require.NoError(t, err)
	second, err := cache.Providers(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.providerCalls)
	assert.True(t, mr.Exists(providersCacheKey))
	assert.Equal(t, time.Minute, mr.TTL(providersCacheKey))

	_, err = cache.Services(ctx)
	require.NoError(t, err)
	_, err = cache.Services(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, src.serviceCalls)
}

func TestRedisCacheExpiryAndInvalidate(t *testing.T) {
	mr, client := setupTestRedis(t)
	src := &countingSource{Source: NewStaticSource(DefaultProviders(), DefaultServices())}
	cache := NewRedisCache(client, src, time.Minute, nil)
	ctx := context.Background()

	_, err := cache.Providers(ctx)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = cache.Providers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.providerCalls)

	require.NoError(t, cache.Invalidate(ctx))
	assert.False(t, mr.Exists(providersCacheKey))
}

func TestRedisCacheCorruptEntryFallsBack(t *testing.T) {
	mr, client := setupTestRedis(t)
	require.NoError(t, mr.Set(servicesCacheKey, "not-json"))
	src := &countingSource{Source: NewStaticSource(DefaultProviders(), DefaultServices())}
	cache := NewRedisCache(client, src, time.Minute, nil)

	services, err := cache.Services(context.Background())
	require.NoError(t, err)
	assert.Len(t, services, 3)
	assert.Equal(t, 1, src.serviceCalls)
}

func TestRedisCacheUnavailableRedis(t *testing.T) {
	mr, client := setupTestRedis(t)
	mr.Close()
	src := &countingSource{Source: NewStaticSource(DefaultProviders(), DefaultServices())}
	cache := NewRedisCache(client, src, 0, nil)

	providers, err := cache.Providers(context.Background())
	require.NoError(t, err)
	assert.Len(t, providers, 3)
}
