package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
}

// LoggingConfig controls the rotating writer and console output.
type LoggingConfig struct {
	Dir        string `json:"dir" yaml:"dir"`
	Level      string `json:"level" yaml:"level"`
	MaxBytes   int64  `json:"maxBytes" yaml:"maxBytes"`
	MaxBackups int    `json:"maxBackups" yaml:"maxBackups"`
	Console    bool   `json:"console" yaml:"console"`
}

// ArchiveConfig controls maintenance defaults.
type ArchiveConfig struct {
	Dir               string `json:"dir" yaml:"dir"`
	CompressAfterDays int    `json:"compressAfterDays" yaml:"compressAfterDays"`
	KeepDays          int    `json:"keepDays" yaml:"keepDays"`
	Format            string `json:"format" yaml:"format"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Dir:        DefaultLogDir(),
			Level:      "INFO",
			MaxBytes:   10 << 20,
			MaxBackups: 30,
			Console:    true,
		},
		Archive: ArchiveConfig{
			CompressAfterDays: 7,
			KeepDays:          30,
			Format:            "zip",
		},
	}
}

// Load reads configuration from a YAML or JSON file (by extension). If path
// is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return cfg, nil
}
