package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	require.NoError(t, config.InitializeViper(v, ""))

	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.Server.Address)
	assert.Equal(t, "seo_monitor", cfg.Database.DBName)
	assert.True(t, cfg.Scraping.Headless)
	assert.Equal(t, 30*time.Second, cfg.Scraping.MinDelay)
	assert.Equal(t, 60*time.Second, cfg.Scraping.MaxDelay)
	assert.Equal(t, 5, cfg.Alerts.PositionDropThreshold)
	assert.Equal(t, "0 9 * * *", cfg.Scheduler.Cron)
	assert.Equal(t, "Europe/Paris", cfg.Scheduler.Timezone)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	t.Setenv("POSITION_DROP_THRESHOLD", "8")
	t.Setenv("HEADLESS", "false")
	t.Setenv("MIN_DELAY", "1000")
	t.Setenv("MAX_DELAY", "2000")

	v := viper.New()
	require.NoError(t, config.InitializeViper(v, ""))

	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Alerts.PositionDropThreshold)
	assert.False(t, cfg.Scraping.Headless)
	assert.Equal(t, time.Second, cfg.Scraping.MinDelay)
	assert.Equal(t, 2*time.Second, cfg.Scraping.MaxDelay)
}

func TestLoad_InvalidDelayBounds(t *testing.T) {
	t.Setenv("SCRAPING_MIN_DELAY", "5000")
	t.Setenv("SCRAPING_MAX_DELAY", "1000")

	v := viper.New()
	require.NoError(t, config.InitializeViper(v, ""))

	_, err := config.Load(v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrConfigInvalid))

	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "scraping", verr.Section)
}
