// Package config provides configuration for the gridiq service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the gridiq service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Assist backend (troubleshooting chat)
	AssistURL     string
	AssistTimeout time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:      getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:   getEnv("DATABASE_URL", "file:gridiq.db?cache=shared&mode=rwc"),
		AssistURL:     getEnv("ASSIST_URL", "http://localhost:8091"),
		AssistTimeout: time.Duration(getEnvInt("ASSIST_TIMEOUT_MS", 30000)) * time.Millisecond,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
