// Package server provides server configuration types and functions.
package server

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Default configuration values
const (
	DefaultAddress      = ":3001"
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 15 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
)

// Config represents server-specific configuration settings.
type Config struct {
	// Address is the address to listen on (e.g., ":3001")
	Address string `env:"SERVER_ADDRESS" yaml:"address"`
	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" yaml:"read_timeout"`
	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" yaml:"write_timeout"`
	// IdleTimeout is the maximum amount of time to wait for the next request
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" yaml:"idle_timeout"`
	// CORSOrigins lists origins allowed to call the API; empty allows all
	CORSOrigins []string `env:"SERVER_CORS_ORIGINS" yaml:"cors_origins"`
	// APIKey, when set, is required in the X-API-Key header of /api routes
	APIKey string `env:"SERVER_API_KEY" yaml:"api_key"`
}

// LoadFromViper loads server configuration from Viper.
func LoadFromViper(v *viper.Viper) *Config {
	cfg := NewConfig()
	if addr := v.GetString("server.address"); addr != "" {
		cfg.Address = addr
	}
	if d := v.GetDuration("server.read_timeout"); d > 0 {
		cfg.ReadTimeout = d
	}
	if d := v.GetDuration("server.write_timeout"); d > 0 {
		cfg.WriteTimeout = d
	}
	if d := v.GetDuration("server.idle_timeout"); d > 0 {
		cfg.IdleTimeout = d
	}
	cfg.CORSOrigins = v.GetStringSlice("server.cors_origins")
	cfg.APIKey = v.GetString("server.api_key")
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Address == "" {
		return errors.New("server address must be specified")
	}
	return nil
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Address:      DefaultAddress,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}
}
