package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/forum/pkg/sessionx"
)

type Config struct {
	SessionSecret string        // Required: HMAC secret for session cookies
	SessionTTL    time.Duration // Optional: auth session lifetime (default: 7 days)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./forum.db)
	PepperFile          string        // Optional: path to password pepper file (default: ./pepper)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		SessionSecret:       os.Getenv("FORUM_SESSION_SECRET"),
		SessionTTL:          getEnvDurationOrDefault("FORUM_SESSION_TTL", sessionx.DefaultTTL),
		DatabaseFile:        getEnvOrDefault("FORUM_DATABASE_FILE", "forum.db"),
		PepperFile:          getEnvOrDefault("FORUM_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
