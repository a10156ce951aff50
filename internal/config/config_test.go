package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.BaseURL)
	assert.Equal(t, "sqlite", cfg.StoreBackend)
	assert.Equal(t, "none", cfg.VisionBackend)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("BASE_URL", "https://totes.example.com")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("VISION_BACKEND", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test123")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "https://totes.example.com", cfg.BaseURL)
	assert.Equal(t, "redis", cfg.StoreBackend)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, "anthropic", cfg.VisionBackend)
	assert.Equal(t, "sk-test123", cfg.AnthropicAPIKey)
}
