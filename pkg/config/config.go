// Package config loads and saves wren.yml settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory
const FileName = "wren.yml"

var envKeyReplacer = strings.NewReplacer(".", "_")

// Config represents wren.yml configuration
type Config struct {
	Schema SchemaConfig `yaml:"schema"`
	Log    LogConfig    `yaml:"log"`
	Strict bool         `yaml:"strict"`
}

// SchemaConfig locates the schema source and tunes how it is read
type SchemaConfig struct {
	Path             string `yaml:"path"`
	Extension        string `yaml:"extension"`
	TranslatableType string `yaml:"translatable_type"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Schema: SchemaConfig{
			Path:             "data/schema.cfg",
			Extension:        ".cfg",
			TranslatableType: "tstring",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path (FileName in the working directory when
// path is empty). A missing file yields the defaults. Every key can be
// overridden from the environment with the WREN_ prefix, e.g.
// WREN_SCHEMA_PATH or WREN_LOG_LEVEL.
func Load(path string) (*Config, error) {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("WREN")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	v.SetDefault("schema.path", defaults.Schema.Path)
	v.SetDefault("schema.extension", defaults.Schema.Extension)
	v.SetDefault("schema.translatable_type", defaults.Schema.TranslatableType)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("strict", defaults.Strict)

	explicit := path != ""
	if !explicit {
		path = FileName
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), !explicit && errors.Is(err, os.ErrNotExist):
			// defaults plus environment
		default:
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	cfg := &Config{
		Schema: SchemaConfig{
			Path:             v.GetString("schema.path"),
			Extension:        v.GetString("schema.extension"),
			TranslatableType: v.GetString("schema.translatable_type"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
		Strict: v.GetBool("strict"),
	}

	if cfg.Schema.Path == "" {
		return nil, fmt.Errorf("schema.path must not be empty")
	}
	return cfg, nil
}

// Save writes configuration to a YAML file
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
