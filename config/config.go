// Package config provides Viper-based configuration management for wikiq
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/wikiq/core/wiki"
)

// Config represents the complete wikiq configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
	Export  ExportConfig  `mapstructure:"export"`
}

// APIConfig contains Wikipedia API settings
type APIConfig struct {
	// Endpoint overrides the URL derived from Language when set.
	Endpoint  string        `mapstructure:"endpoint"`
	Language  string        `mapstructure:"language"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig contains terminal output settings
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// ExportConfig contains file export settings
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads configuration from file and environment variables. Values in
// overrides (keyed like "api.language") win over both.
func Load(cfgFile string, overrides map[string]any) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".wikiq")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wikiq")
	}

	// WIKIQ_API_ENDPOINT → api.endpoint
	v.SetEnvPrefix("WIKIQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	for key, val := range overrides {
		v.Set(key, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.endpoint", "")
	v.SetDefault("api.language", "en")
	v.SetDefault("api.user_agent", wiki.DefaultUserAgent)
	v.SetDefault("api.timeout", "30s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("output.colors", true)

	v.SetDefault("export.dir", "")
}

// validate checks the configuration for errors
func validate(cfg *Config) error {
	if cfg.API.Endpoint == "" && cfg.API.Language == "" {
		return fmt.Errorf("api.language must not be empty when api.endpoint is unset")
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("invalid api.timeout: %s (must be positive)", cfg.API.Timeout)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s (must be text or json)", cfg.Logging.Format)
	}

	return nil
}

// Endpoint returns the API endpoint to query.
func (c *Config) Endpoint() string {
	if c.API.Endpoint != "" {
		return c.API.Endpoint
	}
	return wiki.EndpointForLanguage(c.API.Language)
}
