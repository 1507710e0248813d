// Package logging maps logger settings from Viper onto the logger package.
package logging

import (
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
	"github.com/spf13/viper"
)

// Config holds logging-specific configuration settings.
type Config struct {
	// Level is the logging level (debug, info, warn, error)
	Level string `yaml:"level"`
	// Encoding is the log encoding format (json, console)
	Encoding string `yaml:"encoding"`
	// Development enables development mode
	Development bool `yaml:"development"`
	// EnableColor colorizes console output
	EnableColor bool `yaml:"enable_color"`
	// OutputPaths lists zap sinks (stdout, stderr, file paths)
	OutputPaths []string `yaml:"output_paths"`
}

// LoadFromViper loads logging configuration from Viper.
func LoadFromViper(v *viper.Viper) *Config {
	return &Config{
		Level:       v.GetString("logger.level"),
		Encoding:    v.GetString("logger.encoding"),
		Development: v.GetBool("logger.development"),
		EnableColor: v.GetBool("logger.enable_color"),
		OutputPaths: v.GetStringSlice("logger.output_paths"),
	}
}

// LoggerConfig converts the settings into a logger configuration.
func (c *Config) LoggerConfig() *logger.Config {
	return &logger.Config{
		Level:       logger.Level(c.Level),
		Encoding:    c.Encoding,
		Development: c.Development,
		EnableColor: c.EnableColor,
		OutputPaths: c.OutputPaths,
	}
}
