package scraping_test

import (
	"testing"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/scraping"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromViper_Milliseconds(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.Set("scraping.min_delay", 1500)
	v.Set("scraping.max_delay", "2500")
	v.Set("scraping.headless", false)
	v.Set("scraping.backend", "http")

	cfg := scraping.LoadFromViper(v)
	assert.Equal(t, 1500*time.Millisecond, cfg.MinDelay)
	assert.Equal(t, 2500*time.Millisecond, cfg.MaxDelay)
	assert.False(t, cfg.Headless)
	assert.Equal(t, scraping.BackendHTTP, cfg.Backend)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromViper_Defaults(t *testing.T) {
	t.Parallel()

	cfg := scraping.LoadFromViper(viper.New())
	assert.True(t, cfg.Headless)
	assert.Equal(t, 30*time.Second, cfg.MinDelay)
	assert.Equal(t, time.Minute, cfg.MaxDelay)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := scraping.NewConfig()
	cfg.MaxDelay = cfg.MinDelay - time.Second
	require.Error(t, cfg.Validate())

	cfg = scraping.NewConfig()
	cfg.Backend = "selenium"
	require.Error(t, cfg.Validate())
}
