// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management.
//
// Configuration lives in TOML at ~/.sinhalagpt/config.toml, with
// environment variable overrides and built-in defaults.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/sinhalagpt-tui/internal/gemini"
	"github.com/jeranaias/sinhalagpt-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete application configuration.
type Config struct {
	// Gemini holds gateway settings.
	Gemini GeminiConfig `toml:"gemini"`

	// Voice holds the optional speech-to-text settings.
	Voice VoiceConfig `toml:"voice"`

	// UI holds presentation settings.
	UI UIConfig `toml:"ui"`

	// Debug enables the debug log at ~/.sinhalagpt/debug.log.
	Debug bool `toml:"debug"`
}

// GeminiConfig contains gateway settings.
type GeminiConfig struct {
	// APIKey authenticates against the Gemini API. Usually supplied via
	// the GEMINI_API_KEY environment variable instead of the file.
	APIKey string `toml:"api_key"`
	// ChatModel is the streaming chat model.
	ChatModel string `toml:"chat_model"`
	// ImageModel is the image generation model.
	ImageModel string `toml:"image_model"`
}

// VoiceConfig contains the external transcriber command. Voice input is
// offered only when the command resolves on PATH.
type VoiceConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// ShowSplash controls the startup splash screen.
	ShowSplash bool `toml:"show_splash"`
	// SplashMillis is the minimum splash display time.
	SplashMillis int `toml:"splash_millis"`
	// DownloadDir is where generated images are saved. Empty means the
	// current working directory.
	DownloadDir string `toml:"download_dir"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Gemini: GeminiConfig{
			ChatModel:  gemini.DefaultChatModel,
			ImageModel: gemini.DefaultImageModel,
		},
		UI: UIConfig{
			ShowSplash:   true,
			SplashMillis: 500,
		},
	}
}

// Dir returns the configuration directory (~/.sinhalagpt).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".sinhalagpt"), nil
}

// Path returns the configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file, applies environment overrides, and fills
// defaults. A missing file is not an error; defaults plus environment are
// returned.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to env overrides.
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	return cfg, nil
}

// ApplyEnvOverrides applies environment variables over file values.
// GEMINI_API_KEY wins over the file key so the secret can stay out of it.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("SINHALAGPT_CHAT_MODEL"); v != "" {
		c.Gemini.ChatModel = v
	}
	if v := os.Getenv("SINHALAGPT_IMAGE_MODEL"); v != "" {
		c.Gemini.ImageModel = v
	}
}

func (c *Config) fillDefaults() {
	if c.Gemini.ChatModel == "" {
		c.Gemini.ChatModel = gemini.DefaultChatModel
	}
	if c.Gemini.ImageModel == "" {
		c.Gemini.ImageModel = gemini.DefaultImageModel
	}
	if c.UI.SplashMillis <= 0 {
		c.UI.SplashMillis = 500
	}
}

// Validate checks the configuration for fatal problems.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("no Gemini API key: set GEMINI_API_KEY or gemini.api_key in the config file")
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to its default path atomically.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to an explicit path atomically.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	// Config may carry the API key; keep it private to the owner.
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}
