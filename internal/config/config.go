package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string
	JWTSecret   string
	JWTExpiry   time.Duration

	// BreachBaseURL is the k-anonymity range-query service; BreachTimeout
	// bounds each query.
	BreachBaseURL string
	BreachTimeout time.Duration

	// BackendURL is the native vault backend bridge endpoint. Empty disables
	// the bridge routes.
	BackendURL string

	// GeneratorSilentEmpty keeps the legacy behavior of answering an empty
	// character pool with an empty password instead of an error.
	GeneratorSilentEmpty bool
}

func Load() Config {
	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "development"),
		DatabaseDSN:          getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/keyforge?parseTime=true"),
		JWTSecret:            getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:            24 * time.Hour,
		BreachBaseURL:        getEnv("BREACH_BASE_URL", "https://api.pwnedpasswords.com"),
		BreachTimeout:        getDuration("BREACH_TIMEOUT", 5*time.Second),
		BackendURL:           getEnv("BACKEND_URL", ""),
		GeneratorSilentEmpty: getBool("GENERATOR_COMPAT_SILENT_EMPTY", true),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid boolean in environment, using fallback", "key", key, "value", v)
			return fallback
		}
		return b
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration in environment, using fallback", "key", key, "value", v)
			return fallback
		}
		return d
	}
	return fallback
}
