// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Analyze    AnalyzeConfig    `toml:"analyze"`
	Deck       DeckConfig       `toml:"deck"`
	Definition DefinitionConfig `toml:"definition"`
	Store      StoreConfig      `toml:"store"`
}

// AnalyzeConfig maps frequency table settings.
type AnalyzeConfig struct {
	PageSize *int    `toml:"page-size"`
	Sort     *string `toml:"sort"`
	Order    *string `toml:"order"`
}

// DeckConfig maps flashcard deck generation settings.
type DeckConfig struct {
	Min         *int `toml:"min"`
	Max         *int `toml:"max"`
	Size        *int `toml:"size"`
	Sentences   *int `toml:"sentences"`
	Concurrency *int `toml:"concurrency"`
}

// DefinitionConfig maps definition provider settings. API keys are read
// from the environment, never from this file.
type DefinitionConfig struct {
	Provider *string `toml:"provider"`
	Model    *string `toml:"model"`
}

// StoreConfig maps deck store settings.
type StoreConfig struct {
	Driver *string `toml:"driver"`
	DSN    *string `toml:"dsn"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
