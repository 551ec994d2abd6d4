package config

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	APIBaseURL   string // Base URL of the remote user directory
	DatabasePath string
	JWTSecret    string
	LogLevel     string
	Production   bool
}

const devJWTSecret = "dev-secret-change-me"

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		log.Warn().Msg("JWT_SECRET not set, using development default")
		secret = devJWTSecret
	}

	return &Config{
		ServerPort:   port,
		APIBaseURL:   getEnv("API_BASE_URL", "https://reqres.in/api"),
		DatabasePath: getEnv("DATABASE_PATH", "./userboard.db"),
		JWTSecret:    secret,
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Production:   getEnv("APP_ENV", "") == "production",
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
