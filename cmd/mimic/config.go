package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// Config holds every setting of a mimic run. Values come from the defaults,
// then an optional config file, then MIMIC_* environment variables, then flags.
type Config struct {
	Words        int    `json:"words" yaml:"words" env:"MIMIC_WORDS"`
	Wrap         int    `json:"wrap" yaml:"wrap" env:"MIMIC_WRAP"`
	Seed         uint64 `json:"seed" yaml:"seed" env:"MIMIC_SEED"`
	LogLevel     string `json:"log_level" yaml:"log_level" env:"MIMIC_LOG_LEVEL"`
	DatabasePath string `json:"database_path" yaml:"database_path" env:"MIMIC_DB"`
	ModelName    string `json:"model_name" yaml:"model_name" env:"MIMIC_MODEL"`
	ExportPath   string `json:"export_path" yaml:"export_path" env:"MIMIC_EXPORT"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Words:        200,
		Wrap:         0,
		Seed:         0,
		LogLevel:     "warn",
		DatabasePath: "",
		ModelName:    "default",
		ExportPath:   "",
	}
}

// isYAML reports whether path names a YAML file.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadConfig reads the configuration from a JSON or YAML file at the given
// path, chosen by extension. If the file doesn't exist, it creates one with
// default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			var data []byte
			if isYAML(path) {
				data, err = yaml.Marshal(config)
			} else {
				data, err = json.MarshalIndent(config, "", "  ")
			}
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The run can still go ahead with defaults.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(file, config)
	} else {
		err = json.Unmarshal(file, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// ApplyEnv overrides config with any MIMIC_* environment variables that are set.
func ApplyEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Validate rejects settings that cannot produce a run.
func (c *Config) Validate() error {
	if c.Words < 0 {
		return fmt.Errorf("words must not be negative, got %d", c.Words)
	}
	if c.Wrap < 0 {
		return fmt.Errorf("wrap must not be negative, got %d", c.Wrap)
	}
	if c.DatabasePath != "" && c.ModelName == "" {
		return errors.New("a model name is required when a database is set")
	}
	return nil
}

// parseLogLevel maps a level name to a slog.Level, defaulting to warn.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
