// Package config provides configuration management for the SEO monitor.
// It builds a typed Config from Viper, which reads YAML files, .env and
// environment variables.
package config

import (
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/alerts"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/app"
	dbconfig "github.com/jonesrussell/north-cloud/seo-monitor/internal/config/database"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/logging"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/redis"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/scheduler"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/scraping"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/server"
	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	App       *app.Config       `yaml:"app"`
	Logger    *logging.Config   `yaml:"logger"`
	Server    *server.Config    `yaml:"server"`
	Database  *dbconfig.Config  `yaml:"database"`
	Scraping  *scraping.Config  `yaml:"scraping"`
	Alerts    *alerts.Config    `yaml:"alerts"`
	Scheduler *scheduler.Config `yaml:"scheduler"`
	Redis     *redis.Config     `yaml:"redis"`
}

type validator interface {
	Validate() error
}

// Load builds the configuration from v and validates every section.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App:       app.LoadFromViper(v),
		Logger:    logging.LoadFromViper(v),
		Server:    server.LoadFromViper(v),
		Database:  dbconfig.LoadFromViper(v),
		Scraping:  scraping.LoadFromViper(v),
		Alerts:    alerts.LoadFromViper(v),
		Scheduler: scheduler.LoadFromViper(v),
		Redis:     redis.LoadFromViper(v),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	sections := []struct {
		name string
		v    validator
	}{
		{"app", c.App},
		{"server", c.Server},
		{"database", c.Database},
		{"scraping", c.Scraping},
		{"alerts", c.Alerts},
		{"scheduler", c.Scheduler},
		{"redis", c.Redis},
	}
	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			return &ValidationError{Section: s.name, Err: err}
		}
	}
	return nil
}
