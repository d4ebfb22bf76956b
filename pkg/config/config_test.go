package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromEnvPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
	  "defaults": {"send_from": "Planner", "model": "gpt-5.2"},
	  "providers": {"openai": {"base_url": "http://127.0.0.1:8080/v1", "request_timeout_seconds": 30}},
	  "logging": {"format": "json", "level": "debug"}
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv(envConfigPath, path)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Defaults.SendFrom != "Planner" {
		t.Fatalf("defaults.send_from = %q, want %q", cfg.Defaults.SendFrom, "Planner")
	}
	if cfg.Providers.OpenAI.BaseURL != "http://127.0.0.1:8080/v1" {
		t.Fatalf("providers.openai.base_url = %q", cfg.Providers.OpenAI.BaseURL)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("logging.format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv(envConfigPath, path)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Defaults.SendFrom == "" {
		t.Fatal("expected default send_from")
	}
	if cfg.Defaults.Model == "" {
		t.Fatal("expected default model")
	}
}

func TestLoadConfigInvalidEnvPath(t *testing.T) {
	t.Setenv(envConfigPath, filepath.Join(t.TempDir(), "missing.json"))

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing config path")
	}
}
