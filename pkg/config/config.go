// Package config loads the runtime configuration for the postwire commands.
// The translator library itself takes no configuration; this covers the outer
// surface (logging, default sender identity, model connection settings).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const envConfigPath = "POSTWIRE_CONFIG"

// Config is the root runtime configuration loaded from config.json.
type Config struct {
	Defaults  Defaults        `json:"defaults"`
	Providers ProvidersConfig `json:"providers"`
	Logging   LoggingConfig   `json:"logging,omitempty"`
}

// LoggingConfig controls structured log output format and verbosity.
type LoggingConfig struct {
	Format string `json:"format,omitempty"`
	Level  string `json:"level,omitempty"`
}

// Defaults describes the identity and model used when a command does not
// override them.
type Defaults struct {
	SendFrom string `json:"send_from"`
	Model    string `json:"model"`
}

// ProvidersConfig stores per-provider connection settings.
type ProvidersConfig struct {
	OpenAI OpenAIProviderConfig `json:"openai"`
}

// OpenAIProviderConfig configures the live model stream source.
type OpenAIProviderConfig struct {
	BaseURL               string `json:"base_url"`
	APIKeyEnv             string `json:"api_key_env"`
	Organization          string `json:"organization"`
	Project               string `json:"project"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
}

// LoadConfig resolves config.json, unmarshals it, and applies defaults.
func LoadConfig() (*Config, error) {
	configPath, err := findConfigPath()
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if strings.TrimSpace(cfg.Defaults.SendFrom) == "" {
		cfg.Defaults.SendFrom = "Agent"
	}
	if strings.TrimSpace(cfg.Defaults.Model) == "" {
		cfg.Defaults.Model = "gpt-5.2"
	}
}

// findConfigPath resolves the active config file location.
//
// Precedence is POSTWIRE_CONFIG first, then cwd-local fallback paths.
func findConfigPath() (string, error) {
	if value := strings.TrimSpace(os.Getenv(envConfigPath)); value != "" {
		if info, err := os.Stat(value); err == nil && !info.IsDir() {
			return value, nil
		}
		return "", fmt.Errorf("%s does not point to a file: %s", envConfigPath, value)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get current working directory: %w", err)
	}

	candidates := []string{
		filepath.Join(cwd, "config.json"),
		filepath.Join(cwd, "config", "config.json"),
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("config.json not found (checked %s and %s)", candidates[0], candidates[1])
}
