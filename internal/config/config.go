package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultModel       = "gemini-2.0-flash"
	DefaultBaseURL     = "https://generativelanguage.googleapis.com"
	DefaultTemperature = 0.7
)

// DefaultPreamble is prepended to every chat request. Topic boundaries and
// the embedded period data are left to the model.
const DefaultPreamble = `You are an AI assistant called Nyssa that helps women with their period tracking and help advice regarding period assistant advice and health chat like a doctor and health advisor. 
Here's the user's period data from our database:  user was on period from 6-8 march 2025 with mild pain and cramps. your expected period date in the enxt month is 7-8 April, 2025. Tell these info only when asked.
You will only answer questions around your job. If the user asks anything unrelated to health, period or provided data, politely refuse to answer.`

type Profile struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	BaseURL  string `json:"base_url,omitempty"`
	Model    string `json:"model"`
}

type ChatSettings struct {
	Preamble         string   `json:"preamble"`
	Temperature      *float64 `json:"temperature,omitempty"` // nil means DefaultTemperature
	MaxOutputTokens  int      `json:"max_output_tokens"`
	RequestTimeoutMs int      `json:"request_timeout_ms"`
}

type AlertSettings struct {
	DelayMs   int    `json:"delay_ms"`
	SoundFile string `json:"sound_file,omitempty"`
	Sound     *bool  `json:"sound,omitempty"` // nil means on
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	Chat           ChatSettings       `json:"chat"`
	Alert          AlertSettings      `json:"alert"`
	LogLevel       string             `json:"log_level,omitempty"`
	currentProfile *Profile
	env            envOverrides
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Load existing config or create default
	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	config.applyDefaults()

	// Validate and set current profile
	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}

	return config, nil
}

// Default returns an in-memory config with a single empty gemini profile.
func Default() *Config {
	c := &Config{
		Profiles: map[string]Profile{
			"default": defaultProfile(),
		},
		ActiveProfile: "default",
	}
	c.applyDefaults()
	_ = c.setCurrentProfile()
	return c
}

func defaultProfile() Profile {
	return Profile{
		Provider: ProviderGemini,
		APIKey:   "",
		BaseURL:  "",
		Model:    DefaultModel,
	}
}

func (c *Config) IsValid() bool {
	return c.currentProfile != nil && c.currentProfile.APIKey != ""
}

func (c *Config) GetAPIKey() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.APIKey
}

func (c *Config) GetProvider() string {
	if c.currentProfile == nil || c.currentProfile.Provider == "" {
		return ProviderGemini
	}
	return c.currentProfile.Provider
}

func (c *Config) GetModel() string {
	if c.currentProfile == nil || c.currentProfile.Model == "" {
		return DefaultModel
	}
	return c.currentProfile.Model
}

func (c *Config) GetBaseURL() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.BaseURL
}

func (c *Config) RequestTimeout() time.Duration {
	if c.env.RequestTimeout > 0 {
		return c.env.RequestTimeout
	}
	return time.Duration(c.Chat.RequestTimeoutMs) * time.Millisecond
}

func (c *Config) AlertDelay() time.Duration {
	if c.env.AlertDelay > 0 {
		return c.env.AlertDelay
	}
	return time.Duration(c.Alert.DelayMs) * time.Millisecond
}

// SetAlertDelay overrides the alert delay for this run only.
func (c *Config) SetAlertDelay(d time.Duration) {
	c.env.AlertDelay = d
}

func (c *Config) Temperature() float64 {
	if c.Chat.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Chat.Temperature
}

func (c *Config) SoundEnabled() bool {
	return c.Alert.Sound == nil || *c.Alert.Sound
}

// DisableSound turns the alert sound off for this run.
func (c *Config) DisableSound() {
	off := false
	c.Alert.Sound = &off
}

func (c *Config) SoundFile() string {
	if c.env.SoundFile != "" {
		return c.env.SoundFile
	}
	return c.Alert.SoundFile
}

func (c *Config) GetLogLevel() string {
	if c.env.LogLevel != "" {
		return c.env.LogLevel
	}
	return c.LogLevel
}

// HomeDir is the directory holding config.json and the log file.
func HomeDir() (string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

func getConfigPath() (string, error) {
	var configDir string

	// Use NYSSA_HOME if set, otherwise use user's home directory
	if nyssaHome := os.Getenv("NYSSA_HOME"); nyssaHome != "" {
		configDir = nyssaHome
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".nyssa", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	configDir := filepath.Dir(configPath)
	return os.MkdirAll(configDir, 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	// If config file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := Default()

	// Save default config to file
	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

// applyDefaults fills settings missing from older or hand-edited config
// files. An explicit temperature of 0 or sound of false is kept.
func (c *Config) applyDefaults() {
	if c.Chat.Preamble == "" {
		c.Chat.Preamble = DefaultPreamble
	}
	if c.Chat.Temperature == nil {
		temperature := DefaultTemperature
		c.Chat.Temperature = &temperature
	}
	if c.Chat.MaxOutputTokens == 0 {
		c.Chat.MaxOutputTokens = 1000
	}
	if c.Chat.RequestTimeoutMs == 0 {
		c.Chat.RequestTimeoutMs = 30000
	}
	if c.Alert.DelayMs == 0 {
		c.Alert.DelayMs = 8000
	}
	if c.Alert.Sound == nil {
		sound := true
		c.Alert.Sound = &sound
	}
}

func (c *Config) setCurrentProfile() error {
	if c.Profiles == nil {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// If active profile doesn't exist, try to use the first available profile
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	c.currentProfile = &profile
	return nil
}

// UseProfile makes name the active profile for this process.
func (c *Config) UseProfile(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	c.ActiveProfile = name
	if err := c.setCurrentProfile(); err != nil {
		return err
	}
	return c.applyEnv()
}
