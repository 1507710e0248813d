package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/alerts"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/redis"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/scheduler"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/scraping"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/server"
	"github.com/spf13/viper"
)

// InitializeViper prepares v to read .env, config.yaml and environment variables.
// It must be called before Load. cfgFile overrides the config file lookup when set.
func InitializeViper(v *viper.Viper, cfgFile string) error {
	loadEnvFile()
	setupViper(v, cfgFile)
	setDefaults(v)
	readConfigFile(v)

	if err := bindEnvironmentVariables(v); err != nil {
		return fmt.Errorf("failed to bind environment variables: %w", err)
	}

	setupDevelopmentLogging(v)
	return nil
}

// loadEnvFile loads .env file (ignores error if file doesn't exist).
func loadEnvFile() {
	_ = godotenv.Load()
}

// setupViper configures Viper for environment variable and config file reading.
func setupViper(v *viper.Viper, cfgFile string) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		return
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
}

// readConfigFile reads config file (ignores error if file doesn't exist).
func readConfigFile(v *viper.Viper) {
	_ = v.ReadInConfig()
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("app", map[string]any{
		"name":        "seo-monitor",
		"version":     "1.0.0",
		"environment": "production",
		"debug":       false,
	})

	v.SetDefault("logger", map[string]any{
		"level":        "info",
		"development":  false,
		"encoding":     "json",
		"output_paths": []string{"stdout"},
		"enable_color": false,
	})

	v.SetDefault("server", map[string]any{
		"address":       server.DefaultAddress,
		"read_timeout":  server.DefaultReadTimeout.String(),
		"write_timeout": server.DefaultWriteTimeout.String(),
		"idle_timeout":  server.DefaultIdleTimeout.String(),
	})

	v.SetDefault("scraping", map[string]any{
		"headless":           scraping.DefaultHeadless,
		"backend":            scraping.DefaultBackend,
		"min_delay":          scraping.DefaultMinDelayMS,
		"max_delay":          scraping.DefaultMaxDelayMS,
		"navigation_timeout": scraping.DefaultNavigationTimeout.String(),
		"settle_delay":       scraping.DefaultSettleDelay.String(),
	})

	v.SetDefault("alerts", map[string]any{
		"position_drop_threshold": alerts.DefaultPositionDropThreshold,
	})

	v.SetDefault("scheduler", map[string]any{
		"enabled":  scheduler.DefaultEnabled,
		"cron":     scheduler.DefaultCron,
		"timezone": scheduler.DefaultTimezone,
	})

	v.SetDefault("redis", map[string]any{
		"enabled":  false,
		"address":  redis.DefaultAddress,
		"db":       0,
		"lock_ttl": redis.DefaultLockTTL.String(),
	})
}

// bindEnvironmentVariables binds all environment variables to config keys.
func bindEnvironmentVariables(v *viper.Viper) error {
	bindings := map[string][]string{
		"app.environment":                {"APP_ENV"},
		"app.debug":                      {"APP_DEBUG"},
		"logger.level":                   {"LOG_LEVEL"},
		"logger.encoding":                {"LOG_FORMAT"},
		"server.address":                 {"SERVER_ADDRESS", "PORT"},
		"server.api_key":                 {"SERVER_API_KEY", "API_KEY"},
		"server.cors_origins":            {"SERVER_CORS_ORIGINS", "CORS_ORIGINS"},
		"scraping.backend":               {"SCRAPING_BACKEND"},
		"scraping.headless":              {"SCRAPING_HEADLESS", "HEADLESS"},
		"scraping.min_delay":             {"SCRAPING_MIN_DELAY", "MIN_DELAY"},
		"scraping.max_delay":             {"SCRAPING_MAX_DELAY", "MAX_DELAY"},
		"alerts.position_drop_threshold": {"ALERT_POSITION_DROP_THRESHOLD", "POSITION_DROP_THRESHOLD"},
		"scheduler.enabled":              {"SCHEDULER_ENABLED"},
		"scheduler.cron":                 {"CRON_SCHEDULE"},
		"scheduler.timezone":             {"CRON_TIMEZONE"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", strings.Join(envs, ", "), err)
		}
	}
	return nil
}

// setupDevelopmentLogging switches to console output in development.
// Debug level is only set when explicitly requested.
func setupDevelopmentLogging(v *viper.Viper) {
	if v.GetBool("app.debug") {
		v.Set("logger.level", "debug")
	}
	if v.GetString("app.environment") == "development" {
		v.Set("logger.development", true)
		v.Set("logger.enable_color", true)
		v.Set("logger.encoding", "console")
	}
}
