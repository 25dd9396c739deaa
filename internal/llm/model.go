// Package llm holds the hosted language-model providers used for Ikigai synthesis.
package llm

import (
	"careerai/internal/config"
	"context"
	"errors"
	"fmt"
)

var ErrNotConfigured = errors.New("summarization provider is not configured")

// Model sends one system instruction and one user message and returns the single text reply
type Model interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Name() string
}

// New builds the provider selected by cfg
func New(ctx context.Context, cfg *config.AIConfig) (Model, error) {
	if !cfg.IsEnabled() {
		return disabled{provider: cfg.Provider}, nil
	}
	switch cfg.Provider {
	case config.ProviderGroq:
		return NewGroq(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case config.ProviderGemini:
		return NewGemini(ctx, cfg.APIKey, cfg.BaseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

type disabled struct {
	provider string
}

func (d disabled) Complete(context.Context, string, string) (string, error) {
	return "", ErrNotConfigured
}

func (d disabled) Name() string {
	return d.provider + ":disabled"
}
