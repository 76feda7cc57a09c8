// Package config loads user preferences for the debater client from
// ~/.debater/config.json, with environment variables taking precedence.
// A .env file in the working directory is honored for local development.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultBackendURL is where the real backend (and the debaterd stub)
// listen by default.
const DefaultBackendURL = "http://localhost:8001"

// Config holds user preferences.
type Config struct {
	// BackendURL is the base URL of the classification/analysis service.
	BackendURL string `json:"backend_url,omitempty"`
	// Theme for the TUI ("light" or "dark").
	Theme string `json:"theme,omitempty"`
	// Offline swaps the HTTP backend for the built-in canned one.
	Offline bool `json:"offline,omitempty"`
	// Debug lowers the file log level to debug.
	Debug bool `json:"debug,omitempty"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		BackendURL: DefaultBackendURL,
		Theme:      "light",
	}
}

// Dir returns the directory where config and logs are stored.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".debater"), nil
}

// File returns the full path to the config file.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk and applies env overrides.
// A missing file yields the defaults, not an error.
func Load() (Config, error) {
	// Best effort: a missing .env is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	path, err := File()
	if err != nil {
		cfg.applyEnvOverrides()
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	if err != nil {
		cfg.applyEnvOverrides()
		return cfg, err
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		// The environment still wins even when the file is unusable.
		cfg = Default()
		cfg.applyEnvOverrides()
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	if cfg.Theme == "" {
		cfg.Theme = "light"
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets the environment win over the config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DEBATER_BACKEND_URL"); v != "" {
		c.BackendURL = v
	}
	if v := os.Getenv("DEBATER_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("DEBATER_OFFLINE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Offline = b
		}
	}
	if v := os.Getenv("DEBATER_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

// Save writes the configuration to disk.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := File()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
