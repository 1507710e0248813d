// Package alerts provides configuration for alert thresholds.
package alerts

import (
	"errors"

	"github.com/spf13/viper"
)

// DefaultPositionDropThreshold is the rank drop that raises an alert.
const DefaultPositionDropThreshold = 5

// Config holds alert rule settings.
type Config struct {
	// PositionDropThreshold is the minimum rank drop that creates a position_drop alert
	PositionDropThreshold int `env:"ALERT_POSITION_DROP_THRESHOLD" yaml:"position_drop_threshold"`
}

// LoadFromViper loads alert configuration from Viper.
func LoadFromViper(v *viper.Viper) *Config {
	cfg := &Config{PositionDropThreshold: DefaultPositionDropThreshold}
	if v.IsSet("alerts.position_drop_threshold") {
		cfg.PositionDropThreshold = v.GetInt("alerts.position_drop_threshold")
	}
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.PositionDropThreshold < 1 {
		return errors.New("position drop threshold must be at least 1")
	}
	return nil
}
