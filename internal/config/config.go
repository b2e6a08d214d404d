// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// profile-chat.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. File location: ~/.profile-chat/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete profile-chat configuration.
type Config struct {
	// Widget identity and canned messages
	Widget WidgetConfig `toml:"widget"`

	// Provider (remote completion) configuration
	Provider ProviderConfig `toml:"provider"`

	// GitHub metadata source configuration
	GitHub GitHubConfig `toml:"github"`

	// Streaming relay configuration
	Stream StreamConfig `toml:"stream"`
}

// WidgetConfig holds the assistant's identity and fixed messages.
type WidgetConfig struct {
	// Name shown in the chat header.
	Name string `toml:"name"`

	// WelcomeMessage is the bubble shown before the chat is opened.
	WelcomeMessage string `toml:"welcome_message"`

	// FirstMessage is the assistant's opening message.
	FirstMessage string `toml:"first_message"`

	// SystemPromptPath points to the system prompt file. Empty means the
	// built-in prompt.
	SystemPromptPath string `toml:"system_prompt_path"`
}

// ProviderConfig holds the remote completion endpoint settings. Immutable
// after initialization.
type ProviderConfig struct {
	// ProxyURL is the CORS proxy fronting the completion API.
	ProxyURL string `toml:"proxy_url"`

	// Model identifier sent with every completion request.
	Model string `toml:"model"`

	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`

	// TimeoutSeconds for completion requests.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// GitHubConfig holds the repository metadata source settings.
type GitHubConfig struct {
	// Username is the GitHub account whose repositories are looked up.
	Username string `toml:"username"`

	// BaseURL overrides the GitHub API base URL (tests).
	BaseURL string `toml:"base_url"`

	// CacheTTLMinutes is how long repository snapshots stay cached.
	CacheTTLMinutes int `toml:"cache_ttl_minutes"`

	// RequestsPerSecond caps outgoing GitHub API calls.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// StreamConfig holds the UI relay and pacing settings.
type StreamConfig struct {
	// RelayMillis is the cadence of UI text pushes during streaming.
	RelayMillis int `toml:"relay_millis"`

	// Initial "thinking" delay bounds before the first fragment.
	InitialDelayMinMillis int `toml:"initial_delay_min_millis"`
	InitialDelayMaxMillis int `toml:"initial_delay_max_millis"`

	// Delay bounds between consecutive fragments.
	FragmentDelayMinMillis int `toml:"fragment_delay_min_millis"`
	FragmentDelayMaxMillis int `toml:"fragment_delay_max_millis"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Widget: WidgetConfig{
			Name:           "LukG AI Assistant",
			WelcomeMessage: "👋 Olá! Sou o assistente do LukG",
			FirstMessage: "Sou o assistente pessoal do LukG. Posso te ajudar com informações sobre " +
				"projetos, tecnologias e experiências dele. O que você gostaria de saber?",
		},
		Provider: ProviderConfig{
			ProxyURL:       "https://profile-chat.vercel.app/api/chat",
			Model:          "llama-3.1-8b-instant",
			Temperature:    0.7,
			MaxTokens:      1000,
			TimeoutSeconds: 30,
		},
		GitHub: GitHubConfig{
			Username:          "lukasdevjobs1",
			BaseURL:           "https://api.github.com",
			CacheTTLMinutes:   10,
			RequestsPerSecond: 1,
		},
		Stream: StreamConfig{
			RelayMillis:            200,
			InitialDelayMinMillis:  1500,
			InitialDelayMaxMillis:  2500,
			FragmentDelayMinMillis: 50,
			FragmentDelayMaxMillis: 150,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the profile-chat configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".profile-chat"), nil
}

// ConfigPath returns the TOML config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when the file does not exist. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, err
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation, bypassing the default location.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// ENV OVERRIDES / DEFAULTS / VALIDATION
// =============================================================================

// ApplyEnvOverrides applies PROFILE_CHAT_* environment variables over the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("PROFILE_CHAT_PROXY_URL"); v != "" {
		c.Provider.ProxyURL = v
	}
	if v := os.Getenv("PROFILE_CHAT_MODEL"); v != "" {
		c.Provider.Model = v
	}
	if v := os.Getenv("PROFILE_CHAT_GITHUB_USERNAME"); v != "" {
		c.GitHub.Username = v
	}
	if v := os.Getenv("PROFILE_CHAT_GITHUB_BASE_URL"); v != "" {
		c.GitHub.BaseURL = v
	}
	if v := os.Getenv("PROFILE_CHAT_CACHE_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			c.GitHub.CacheTTLMinutes = minutes
		}
	}
	if v := os.Getenv("PROFILE_CHAT_SYSTEM_PROMPT"); v != "" {
		c.Widget.SystemPromptPath = v
	}
}

// SetDefaults fills zero values with the built-in defaults.
func (c *Config) SetDefaults() {
	def := Default()

	if c.Widget.Name == "" {
		c.Widget.Name = def.Widget.Name
	}
	if c.Widget.FirstMessage == "" {
		c.Widget.FirstMessage = def.Widget.FirstMessage
	}
	if c.Provider.Model == "" {
		c.Provider.Model = def.Provider.Model
	}
	if c.Provider.Temperature == 0 {
		c.Provider.Temperature = def.Provider.Temperature
	}
	if c.Provider.MaxTokens == 0 {
		c.Provider.MaxTokens = def.Provider.MaxTokens
	}
	if c.Provider.TimeoutSeconds == 0 {
		c.Provider.TimeoutSeconds = def.Provider.TimeoutSeconds
	}
	if c.GitHub.Username == "" {
		c.GitHub.Username = def.GitHub.Username
	}
	if c.GitHub.BaseURL == "" {
		c.GitHub.BaseURL = def.GitHub.BaseURL
	}
	if c.GitHub.CacheTTLMinutes == 0 {
		c.GitHub.CacheTTLMinutes = def.GitHub.CacheTTLMinutes
	}
	if c.GitHub.RequestsPerSecond == 0 {
		c.GitHub.RequestsPerSecond = def.GitHub.RequestsPerSecond
	}
	if c.Stream.RelayMillis == 0 {
		c.Stream.RelayMillis = def.Stream.RelayMillis
	}
	if c.Stream.InitialDelayMinMillis == 0 {
		c.Stream.InitialDelayMinMillis = def.Stream.InitialDelayMinMillis
	}
	if c.Stream.InitialDelayMaxMillis == 0 {
		c.Stream.InitialDelayMaxMillis = def.Stream.InitialDelayMaxMillis
	}
	if c.Stream.FragmentDelayMinMillis == 0 {
		c.Stream.FragmentDelayMinMillis = def.Stream.FragmentDelayMinMillis
	}
	if c.Stream.FragmentDelayMaxMillis == 0 {
		c.Stream.FragmentDelayMaxMillis = def.Stream.FragmentDelayMaxMillis
	}
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Provider.Temperature < 0 || c.Provider.Temperature > 2 {
		return fmt.Errorf("provider.temperature %v out of range [0, 2]", c.Provider.Temperature)
	}
	if c.Provider.MaxTokens < 1 {
		return fmt.Errorf("provider.max_tokens must be positive, got %d", c.Provider.MaxTokens)
	}
	if c.GitHub.CacheTTLMinutes < 1 {
		return fmt.Errorf("github.cache_ttl_minutes must be positive, got %d", c.GitHub.CacheTTLMinutes)
	}
	if c.Stream.RelayMillis < 1 {
		return fmt.Errorf("stream.relay_millis must be positive, got %d", c.Stream.RelayMillis)
	}
	if c.Stream.InitialDelayMaxMillis < c.Stream.InitialDelayMinMillis {
		return fmt.Errorf("stream.initial_delay bounds inverted: min %d > max %d",
			c.Stream.InitialDelayMinMillis, c.Stream.InitialDelayMaxMillis)
	}
	if c.Stream.FragmentDelayMaxMillis < c.Stream.FragmentDelayMinMillis {
		return fmt.Errorf("stream.fragment_delay bounds inverted: min %d > max %d",
			c.Stream.FragmentDelayMinMillis, c.Stream.FragmentDelayMaxMillis)
	}
	return nil
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// CacheTTL returns the metadata cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.GitHub.CacheTTLMinutes) * time.Minute
}

// ProviderTimeout returns the completion request timeout as a duration.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Provider.TimeoutSeconds) * time.Second
}

// RelayInterval returns the UI push cadence as a duration.
func (c *Config) RelayInterval() time.Duration {
	return time.Duration(c.Stream.RelayMillis) * time.Millisecond
}

// PacingBounds returns the four pacing delays as durations, in the order
// initial min/max then fragment min/max.
func (c *Config) PacingBounds() (time.Duration, time.Duration, time.Duration, time.Duration) {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return ms(c.Stream.InitialDelayMinMillis), ms(c.Stream.InitialDelayMaxMillis),
		ms(c.Stream.FragmentDelayMinMillis), ms(c.Stream.FragmentDelayMaxMillis)
}

// SystemPrompt returns the system prompt text, reading the configured file
// when set and falling back to the built-in prompt.
func (c *Config) SystemPrompt() string {
	if c.Widget.SystemPromptPath != "" {
		if data, err := os.ReadFile(c.Widget.SystemPromptPath); err == nil {
			return string(data)
		}
	}
	return defaultSystemPrompt
}

// defaultSystemPrompt is used when no prompt file is configured.
const defaultSystemPrompt = "Você é o assistente pessoal do Lukas Gomes (LukG), desenvolvedor junior de " +
	"Fortaleza-CE. Responda em português, de forma curta e amigável, sobre os projetos, tecnologias " +
	"(JavaScript, Python) e a jornada dele como desenvolvedor. Quando houver dados reais de um repositório " +
	"no contexto, use-os na resposta."
