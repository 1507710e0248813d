// Package logger provides structured logging for the monitoring service.
package logger

import "fmt"

// Level represents the logging level.
type Level string

const (
	// DebugLevel logs debug messages.
	DebugLevel Level = "debug"
	// InfoLevel logs info messages.
	InfoLevel Level = "info"
	// WarnLevel logs warning messages.
	WarnLevel Level = "warn"
	// ErrorLevel logs error messages.
	ErrorLevel Level = "error"
	// FatalLevel logs fatal messages and exits.
	FatalLevel Level = "fatal"
)

// Config represents the logger configuration.
type Config struct {
	// Level is the minimum logging level.
	Level Level `yaml:"level" json:"level"`
	// Development enables development mode.
	Development bool `yaml:"development" json:"development"`
	// Encoding sets the logger's encoding (json or console).
	Encoding string `yaml:"encoding" json:"encoding"`
	// OutputPaths is a list of URLs or file paths to write logging output to.
	OutputPaths []string `yaml:"outputPaths" json:"outputPaths"`
	// EnableColor enables colored levels in development mode.
	EnableColor bool `yaml:"enableColor" json:"enableColor"`
}

// applyDefaults fills unset fields and rejects unknown values.
func (c *Config) applyDefaults() error {
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	if _, ok := logLevels[string(c.Level)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.Level)
	}
	if c.Encoding == "" {
		c.Encoding = DefaultEncoding
	}
	if c.Encoding != "json" && c.Encoding != "console" {
		return fmt.Errorf("%w: %q", ErrInvalidEncoding, c.Encoding)
	}
	if len(c.OutputPaths) == 0 {
		c.OutputPaths = DefaultOutputPaths
	}
	return nil
}
