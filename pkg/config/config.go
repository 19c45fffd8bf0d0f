package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig is the request budget for a single route.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// AppConfig carries all runtime configuration. Everything is read from
// the environment once at startup; there is no runtime container.
type AppConfig struct {
	Port         string
	MetricsPort  string
	Environment  string
	OTLPEndpoint string

	// Sqlite is the default store. When DatabaseURL is set the postgres
	// adapter is used instead.
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig
}

func Load() *AppConfig {
	cfg := &AppConfig{
		Port:             getEnv("PORT", "8080"),
		MetricsPort:      getEnv("METRICS_PORT", "9091"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		OTLPEndpoint:     getEnv("OTLP_ENDPOINT", "localhost:4317"),
		DatabasePath:     getEnv("DATABASE_PATH", "database.db"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", ""),
		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitConfigs: map[string]RateLimitConfig{
			"POST /api/users":         {Requests: 20, Window: time.Minute},
			"POST /api/todos/:userId": {Requests: 60, Window: time.Minute},
			"default":                 {Requests: 120, Window: time.Minute},
		},
	}

	if cfg.MigrationsPath == "" {
		if cfg.DatabaseURL != "" {
			cfg.MigrationsPath = "infra/migrations"
		} else {
			cfg.MigrationsPath = "db/migrations"
		}
	}

	return cfg
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	value, exists := os.LookupEnv(key)

	if !exists {
		return defaultVal
	}

	parsed, err := strconv.ParseBool(value)

	if err != nil {
		return defaultVal
	}

	return parsed
}
