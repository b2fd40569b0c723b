package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/appointment-assistant/internal/appointments"
	appconfig "github.com/wolfman30/appointment-assistant/internal/config"
	"github.com/wolfman30/appointment-assistant/internal/notify"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

var testNow = time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)

func testConfig() *appconfig.Config {
	return &appconfig.Config{
		LogLevel:         "error",
		SeedDemoData:     true,
		DefaultUserID:    "user-1",
		SlotGuard:        "none",
		EmailProvider:    "stub",
		CatalogCacheTTL:  time.Minute,
		WizardSessionTTL: time.Minute,
	}
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestBuildRedisClientDisabled(t *testing.T) {
	assert.Nil(t, BuildRedisClient(context.Background(), testConfig(), logging.New("error"), true))
	assert.Nil(t, BuildRedisClient(context.Background(), nil, logging.New("error"), true))
}

func TestBuildRedisClientVerifies(t *testing.T) {
	mr, _ := setupTestRedis(t)
	cfg := testConfig()
	cfg.RedisAddr = mr.Addr()

	client := BuildRedisClient(context.Background(), cfg, logging.New("error"), true)
	require.NotNil(t, client)
	_ = client.Close()

	cfg.RedisAddr = "127.0.0.1:1"
	assert.Nil(t, BuildRedisClient(context.Background(), cfg, logging.New("error"), true))
}

func TestBuildSlotGuard(t *testing.T) {
	logger := logging.New("error")
	_, client := setupTestRedis(t)
	cfg := testConfig()

	guard, err := BuildSlotGuard(cfg, nil, logger)
	require.NoError(t, err)
	assert.Nil(t, guard)

	cfg.SlotGuard = "memory"
	guard, err = BuildSlotGuard(cfg, nil, logger)
	require.NoError(t, err)
	assert.IsType(t, &appointments.MemoryGuard{}, guard)

	cfg.SlotGuard = "redis"
	_, err = BuildSlotGuard(cfg, nil, logger)
	assert.Error(t, err)
	guard, err = BuildSlotGuard(cfg, client, logger)
	require.NoError(t, err)
	assert.IsType(t, &appointments.RedisGuard{}, guard)

	cfg.SlotGuard = "mutex"
	_, err = BuildSlotGuard(cfg, nil, logger)
	assert.Error(t, err)
}

func TestBuildEmailSender(t *testing.T) {
	logger := logging.New("error")
	ctx := context.Background()

	_, err := BuildEmailSender(ctx, nil, logger)
	assert.Error(t, err)

	cfg := testConfig()
	sender, err := BuildEmailSender(ctx, cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &notify.StubEmailSender{}, sender)

	cfg.EmailProvider = "sendgrid"
	sender, err = BuildEmailSender(ctx, cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &notify.StubEmailSender{}, sender, "falls back without an API key")

	cfg.SendGridAPIKey = "key"
	sender, err = BuildEmailSender(ctx, cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &notify.SendGridSender{}, sender)

	cfg.EmailProvider = "pigeon"
	_, err = BuildEmailSender(ctx, cfg, logger)
	assert.Error(t, err)
}

func TestBuildCatalogUsesRedis(t *testing.T) {
	mr, client := setupTestRedis(t)
	require.NoError(t, mr.Set("catalog:providers", `[{"id":"provider-stale","name":"Dr. Gone"}]`))
	cat := BuildCatalog(context.Background(), testConfig(), client, logging.New("error"))

	providers, err := cat.Providers(context.Background())
	require.NoError(t, err)
	assert.Len(t, providers, 3)
	assert.Equal(t, "provider-1", providers[0].ID)
	assert.True(t, mr.Exists("catalog:providers"))
}

func TestBuildServesSeededApp(t *testing.T) {
	_, client := setupTestRedis(t)
	cfg := testConfig()
	cfg.SlotGuard = "redis"

	app, err := Build(context.Background(), cfg, logging.New("error"),
		WithClock(func() time.Time { return testNow }),
		WithRedisClient(client),
	)
	require.NoError(t, err)

	list, err := app.Manager.Fetch(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, list)

	rec := httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notifications", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var inbox notify.Inbox
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inbox))
	assert.Len(t, inbox.Notifications, 5)
	assert.Equal(t, 3, inbox.UnreadCount)

	rec = httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"ok"`)

	rec = httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.True(t, strings.Contains(rec.Body.String(), "go_goroutines"))
}

func TestBuildWithoutSeeds(t *testing.T) {
	cfg := testConfig()
	cfg.SeedDemoData = false

	app, err := Build(context.Background(), cfg, logging.New("error"), WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	defer app.Close()

	list, err := app.Manager.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, app.Notifications.UnreadCount("user-1"))
}
