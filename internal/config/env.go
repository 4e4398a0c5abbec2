package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envOverrides holds values taken from the process environment. They apply
// to the running process only and are never written back to config.json.
type envOverrides struct {
	GeminiAPIKey   string        `env:"GEMINI_API_KEY"`
	APIKey         string        `env:"NYSSA_API_KEY"`
	Provider       string        `env:"NYSSA_PROVIDER"`
	Model          string        `env:"NYSSA_MODEL"`
	BaseURL        string        `env:"NYSSA_BASE_URL"`
	RequestTimeout time.Duration `env:"NYSSA_REQUEST_TIMEOUT"`
	AlertDelay     time.Duration `env:"NYSSA_ALERT_DELAY"`
	SoundFile      string        `env:"NYSSA_ALERT_SOUND"`
	LogLevel       string        `env:"NYSSA_LOG_LEVEL"`
}

// applyEnv loads a .env file from the working directory if present and
// overlays the environment onto the active profile.
func (c *Config) applyEnv() error {
	// a missing .env is the common case
	_ = godotenv.Load()

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	c.env = overrides

	if c.currentProfile == nil {
		return nil
	}
	if overrides.Provider != "" {
		c.currentProfile.Provider = overrides.Provider
	}
	if c.currentProfile.APIKey == "" {
		switch {
		case overrides.APIKey != "":
			c.currentProfile.APIKey = overrides.APIKey
		case overrides.GeminiAPIKey != "" && c.GetProvider() == ProviderGemini:
			c.currentProfile.APIKey = overrides.GeminiAPIKey
		}
	}
	if overrides.Model != "" {
		c.currentProfile.Model = overrides.Model
	}
	if overrides.BaseURL != "" {
		c.currentProfile.BaseURL = overrides.BaseURL
	}
	return nil
}
