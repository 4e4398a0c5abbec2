package llm

import (
	"fmt"

	"github.com/Rorical/Nyssa/internal/config"
)

// New builds the generator for the active profile.
func New(cfg *config.Config) (Generator, error) {
	opts := Options{
		Model:           cfg.GetModel(),
		Temperature:     cfg.Temperature(),
		MaxOutputTokens: cfg.Chat.MaxOutputTokens,
	}

	switch cfg.GetProvider() {
	case config.ProviderGemini:
		return NewGeminiClient(cfg.GetAPIKey(), cfg.GetBaseURL(), opts, cfg.RequestTimeout()), nil
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.GetAPIKey(), cfg.GetBaseURL(), opts, cfg.RequestTimeout()), nil
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.GetProvider())
}
