package config

import (
	"os"
	"time"
)

// Supported summarization providers
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// AIConfig holds all AI-related configuration
type AIConfig struct {
	Provider  string `json:"provider"`
	APIKey    string `json:"-"` // Never serialize
	BaseURL   string `json:"baseUrl,omitempty"`
	Model     string `json:"model"`
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	provider := getEnv("AI_PROVIDER", ProviderGroq)

	cfg := &AIConfig{
		Provider:  provider,
		BaseURL:   os.Getenv("AI_BASE_URL"),
		TimeoutMS: getEnvInt("AI_TIMEOUT_MS", 30000),
	}

	switch provider {
	case ProviderGemini:
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		cfg.Model = getEnv("AI_MODEL", "gemini-2.0-flash")
	default:
		cfg.APIKey = os.Getenv("GROQ_API_KEY")
		cfg.Model = getEnv("AI_MODEL", "llama-3.3-70b-versatile")
		if cfg.BaseURL == "" {
			cfg.BaseURL = "https://api.groq.com/openai/v1"
		}
	}
	return cfg
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Timeout returns the upstream deadline
func (c *AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
