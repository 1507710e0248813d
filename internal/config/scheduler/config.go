// Package scheduler provides configuration for the daily monitoring trigger.
package scheduler

import (
	"fmt"
	"time"
	_ "time/tzdata" // timezone lookups must not depend on the host's zoneinfo

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Default configuration values
const (
	DefaultEnabled  = true
	DefaultCron     = "0 9 * * *"
	DefaultTimezone = "Europe/Paris"
)

// Config holds schedule trigger settings.
type Config struct {
	Enabled  bool   `env:"SCHEDULER_ENABLED" yaml:"enabled"`
	Cron     string `env:"CRON_SCHEDULE"     yaml:"cron"`
	Timezone string `env:"CRON_TIMEZONE"     yaml:"timezone"`
}

// LoadFromViper loads scheduler configuration from Viper.
func LoadFromViper(v *viper.Viper) *Config {
	cfg := &Config{Enabled: DefaultEnabled, Cron: DefaultCron, Timezone: DefaultTimezone}
	if v.IsSet("scheduler.enabled") {
		cfg.Enabled = v.GetBool("scheduler.enabled")
	}
	if expr := v.GetString("scheduler.cron"); expr != "" {
		cfg.Cron = expr
	}
	if tz := v.GetString("scheduler.timezone"); tz != "" {
		cfg.Timezone = tz
	}
	return cfg
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(c.Cron); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", c.Cron, err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}
