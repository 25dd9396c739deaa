package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_URI", "redis://cache:6379")
	t.Setenv("TOKEN_TTL_HOURS", "not-a-number")
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("AI_TIMEOUT_MS", "")
	t.Setenv("GROQ_API_KEY", "")

	cfg := Load()
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, ProviderGroq, cfg.AI.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout())
	assert.False(t, cfg.AI.IsEnabled())
}

func TestDefaultAIConfigGemini(t *testing.T) {
	t.Setenv("AI_PROVIDER", ProviderGemini)
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("AI_MODEL", "")
	t.Setenv("AI_BASE_URL", "")
	t.Setenv("AI_TIMEOUT_MS", "1500")

	cfg := DefaultAIConfig()
	assert.True(t, cfg.IsEnabled())
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout())
}
