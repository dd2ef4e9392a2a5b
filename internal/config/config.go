package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all client configuration
type Config struct {
	API     APIConfig
	Logging LoggingConfig
}

// APIConfig holds backend endpoint configuration
type APIConfig struct {
	BaseURL string // REST base URL
	WSURL   string // websocket endpoint
	Token   string // access token for both transports
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from the environment with defaults. A local
// .env file is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
			WSURL:   getEnv("WS_URL", "ws://localhost:8080/ws"),
			Token:   os.Getenv("ACCESS_TOKEN"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
