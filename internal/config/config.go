// Package config handles loader and tool configuration.
package config

import "time"

// Config holds all settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Model   ModelConfig   `yaml:"model"`
	Watch   WatchConfig   `yaml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// ModelConfig holds model loading settings.
type ModelConfig struct {
	// StrictTexture makes a texture decode failure fail the whole load.
	// When false the model loads without a texture and a warning is logged.
	StrictTexture bool `yaml:"strict_texture"`
}

// WatchConfig holds reload-on-change settings.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Model: ModelConfig{
			StrictTexture: true,
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}
