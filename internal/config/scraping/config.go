// Package scraping provides configuration for the search-page probes.
package scraping

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Backend names.
const (
	BackendChromedp = "chromedp"
	BackendHTTP     = "http"
)

// Default configuration values
const (
	DefaultHeadless          = true
	DefaultBackend           = BackendChromedp
	DefaultMinDelayMS        = 30000
	DefaultMaxDelayMS        = 60000
	DefaultNavigationTimeout = 60 * time.Second
	DefaultSettleDelay       = 2 * time.Second
)

// Config controls how probes drive the browser backend.
type Config struct {
	// Headless runs the browser without a window
	Headless bool `env:"SCRAPING_HEADLESS" yaml:"headless"`
	// Backend selects the session implementation (chromedp or http)
	Backend string `env:"SCRAPING_BACKEND" yaml:"backend"`
	// MinDelay is the lower bound of the randomized pause between requests
	MinDelay time.Duration `env:"SCRAPING_MIN_DELAY" yaml:"min_delay"`
	// MaxDelay is the upper bound of the randomized pause between requests
	MaxDelay time.Duration `env:"SCRAPING_MAX_DELAY" yaml:"max_delay"`
	// NavigationTimeout bounds a single page load
	NavigationTimeout time.Duration `env:"SCRAPING_NAVIGATION_TIMEOUT" yaml:"navigation_timeout"`
	// SettleDelay is waited after load so late scripts can render
	SettleDelay time.Duration `env:"SCRAPING_SETTLE_DELAY" yaml:"settle_delay"`
	// ExecPath overrides the browser binary location
	ExecPath string `env:"SCRAPING_EXEC_PATH" yaml:"exec_path"`
}

// LoadFromViper loads scraping configuration from Viper.
// Delays are expressed in milliseconds.
func LoadFromViper(v *viper.Viper) *Config {
	cfg := NewConfig()
	if v.IsSet("scraping.headless") {
		cfg.Headless = v.GetBool("scraping.headless")
	}
	if backend := v.GetString("scraping.backend"); backend != "" {
		cfg.Backend = backend
	}
	if v.IsSet("scraping.min_delay") {
		cfg.MinDelay = time.Duration(v.GetInt64("scraping.min_delay")) * time.Millisecond
	}
	if v.IsSet("scraping.max_delay") {
		cfg.MaxDelay = time.Duration(v.GetInt64("scraping.max_delay")) * time.Millisecond
	}
	if d := v.GetDuration("scraping.navigation_timeout"); d > 0 {
		cfg.NavigationTimeout = d
	}
	if v.IsSet("scraping.settle_delay") {
		cfg.SettleDelay = v.GetDuration("scraping.settle_delay")
	}
	cfg.ExecPath = v.GetString("scraping.exec_path")
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MinDelay < 0 {
		return errors.New("min delay must not be negative")
	}
	if c.MaxDelay < c.MinDelay {
		return fmt.Errorf("max delay %s is below min delay %s", c.MaxDelay, c.MinDelay)
	}
	if c.NavigationTimeout <= 0 {
		return errors.New("navigation timeout must be positive")
	}
	switch c.Backend {
	case BackendChromedp, BackendHTTP:
	default:
		return fmt.Errorf("unknown scraping backend: %q", c.Backend)
	}
	return nil
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Headless:          DefaultHeadless,
		Backend:           DefaultBackend,
		MinDelay:          DefaultMinDelayMS * time.Millisecond,
		MaxDelay:          DefaultMaxDelayMS * time.Millisecond,
		NavigationTimeout: DefaultNavigationTimeout,
		SettleDelay:       DefaultSettleDelay,
	}
}
