package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "SLOT_GUARD", "STORE_LATENCY_SCALE", "CORS_ALLOWED_ORIGINS", "EMAIL_PROVIDER"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.SlotGuard != "none" {
		t.Fatalf("expected slot guard disabled by default, got %s", cfg.SlotGuard)
	}
	if cfg.StoreLatencyScale != 1.0 {
		t.Fatalf("expected default latency scale 1.0, got %v", cfg.StoreLatencyScale)
	}
	if !cfg.SeedDemoData {
		t.Fatalf("expected demo data seeded by default")
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Fatalf("expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.EmailProvider != "stub" {
		t.Fatalf("expected stub email provider, got %s", cfg.EmailProvider)
	}
	if cfg.WizardSessionTTL != 30*time.Minute {
		t.Fatalf("expected default wizard ttl, got %s", cfg.WizardSessionTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("SLOT_GUARD", "Redis")
	t.Setenv("STORE_LATENCY_SCALE", "0")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("CATALOG_CACHE_TTL", "2m")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.SlotGuard != "redis" {
		t.Fatalf("expected lower-cased slot guard, got %s", cfg.SlotGuard)
	}
	if cfg.StoreLatencyScale != 0 {
		t.Fatalf("expected latency disabled, got %v", cfg.StoreLatencyScale)
	}
	if cfg.SeedDemoData {
		t.Fatalf("expected seed disabled")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitBurst != 5 {
		t.Fatalf("expected burst override, got %d", cfg.RateLimitBurst)
	}
	if cfg.CatalogCacheTTL != 2*time.Minute {
		t.Fatalf("expected cache ttl override, got %s", cfg.CatalogCacheTTL)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "-3")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	cfg := Load()
	if cfg.RateLimitRPS != 20 {
		t.Fatalf("expected default rps, got %v", cfg.RateLimitRPS)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Fatalf("expected default shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}
