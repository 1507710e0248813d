// Package app provides application-level configuration.
package app

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config represents application-specific configuration settings.
type Config struct {
	// Name is the name of the application
	Name string `yaml:"name"`
	// Version is the version of the application
	Version string `yaml:"version"`
	// Environment is the application environment (development, staging, production)
	Environment string `yaml:"environment"`
	// Debug indicates whether debug mode is enabled
	Debug bool `yaml:"debug"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return errors.New("environment must be specified")
	}

	switch c.Environment {
	case "development", "staging", "production", "test":
		// Valid environment
	default:
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	if c.Name == "" {
		return errors.New("application name must be specified")
	}

	if c.Version == "" {
		return errors.New("application version must be specified")
	}

	return nil
}

// IsDevelopment reports whether the application runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadFromViper loads application configuration from Viper.
func LoadFromViper(v *viper.Viper) *Config {
	cfg := NewConfig()
	if name := v.GetString("app.name"); name != "" {
		cfg.Name = name
	}
	if version := v.GetString("app.version"); version != "" {
		cfg.Version = version
	}
	if env := v.GetString("app.environment"); env != "" {
		cfg.Environment = env
	}
	cfg.Debug = v.GetBool("app.debug")
	return cfg
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Name:        "seo-monitor",
		Version:     "1.0.0",
		Environment: "production",
		Debug:       false,
	}
}
