package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, "ws://localhost:8080/ws", cfg.API.WSURL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://game.example.com")
	t.Setenv("WS_URL", "wss://game.example.com/ws")
	t.Setenv("ACCESS_TOKEN", "tok")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()

	assert.Equal(t, "https://game.example.com", cfg.API.BaseURL)
	assert.Equal(t, "wss://game.example.com/ws", cfg.API.WSURL)
	assert.Equal(t, "tok", cfg.API.Token)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, getEnvInt("SOME_INT", 7))
	assert.Equal(t, 7, getEnvInt("MISSING_INT", 7))

	t.Setenv("BAD_INT", "not a number")
	assert.Equal(t, 7, getEnvInt("BAD_INT", 7))
}
