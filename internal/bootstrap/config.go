// Package bootstrap wires the SEO monitor's components from configuration
// and manages their lifecycle.
package bootstrap

import (
	"errors"
	"fmt"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
	"github.com/spf13/viper"
)

var (
	// errLoggerRequired is returned when CommandDeps.Logger is nil.
	errLoggerRequired = errors.New("logger is required")
	// errConfigRequired is returned when CommandDeps.Config is nil.
	errConfigRequired = errors.New("config is required")
)

// CommandDeps holds the dependencies every command needs.
type CommandDeps struct {
	Logger logger.Interface
	Config *config.Config
}

// NewCommandDeps loads the configuration from v and creates the logger.
func NewCommandDeps(v *viper.Viper) (*CommandDeps, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := CreateLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	deps := &CommandDeps{
		Logger: log.With("service", cfg.App.Name),
		Config: cfg,
	}
	if validateErr := deps.Validate(); validateErr != nil {
		return nil, fmt.Errorf("validate deps: %w", validateErr)
	}
	return deps, nil
}

// CreateLogger creates the zap-backed logger described by cfg.
func CreateLogger(cfg *config.Config) (logger.Interface, error) {
	return logger.New(cfg.Logger.LoggerConfig())
}

// Validate ensures all required dependencies are present.
func (d *CommandDeps) Validate() error {
	if d.Logger == nil {
		return errLoggerRequired
	}
	if d.Config == nil {
		return errConfigRequired
	}
	return nil
}
