// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything main needs to wire the service.
type Config struct {
	// HTTP server
	Port string

	// Storage: when DatabaseURL is empty the in-memory store is used.
	DatabaseURL string

	// Logging
	LogLevel  string
	LogFormat string

	// Upload cap in bytes for POST /v1/sessions.
	MaxUploadBytes int64
}

// Load reads the environment. A .env file is applied first when present;
// missing files are not an error.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 32<<20),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
