package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Simulated store latency multiplier; 0 disables artificial delays.
	StoreLatencyScale float64
	SeedDemoData      bool
	DefaultUserID     string

	// SlotGuard selects the double-booking guard: none, memory or redis.
	SlotGuard string

	RedisAddr       string
	RedisPassword   string
	RedisTLS        bool
	CatalogCacheTTL time.Duration

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	AuthJWTSecret      string

	// Email delivery for booking confirmations: stub, sendgrid or ses.
	EmailProvider    string
	SendGridAPIKey   string
	EmailFromAddress string
	EmailFromName    string
	AWSRegion        string

	WizardSessionTTL time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		StoreLatencyScale: getEnvAsFloat("STORE_LATENCY_SCALE", 1.0),
		SeedDemoData:      getEnvAsBool("SEED_DEMO_DATA", true),
		DefaultUserID:     getEnv("DEFAULT_USER_ID", "user-1"),

		SlotGuard: strings.ToLower(getEnv("SLOT_GUARD", "none")),

		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisTLS:        getEnvAsBool("REDIS_TLS", false),
		CatalogCacheTTL: getEnvAsDuration("CATALOG_CACHE_TTL", 10*time.Minute),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 40),
		AuthJWTSecret:      getEnv("AUTH_JWT_SECRET", ""),

		EmailProvider:    strings.ToLower(getEnv("EMAIL_PROVIDER", "stub")),
		SendGridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", "appointments@example.com"),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Appointment Assistant"),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),

		WizardSessionTTL: getEnvAsDuration("WIZARD_SESSION_TTL", 30*time.Minute),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil && value >= 0 {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
