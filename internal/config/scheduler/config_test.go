package scheduler_test

import (
	"testing"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/scheduler"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  scheduler.Config
		wantErr bool
	}{
		{name: "default", config: scheduler.Config{Enabled: true, Cron: "0 9 * * *", Timezone: "Europe/Paris"}},
		{name: "bad cron", config: scheduler.Config{Enabled: true, Cron: "every day", Timezone: "UTC"}, wantErr: true},
		{name: "bad timezone", config: scheduler.Config{Enabled: true, Cron: "0 9 * * *", Timezone: "Mars/Base"}, wantErr: true},
		{name: "disabled skips checks", config: scheduler.Config{Enabled: false, Cron: "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoadFromViper(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.Set("scheduler.enabled", false)

	cfg := scheduler.LoadFromViper(v)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, scheduler.DefaultCron, cfg.Cron)
	assert.Equal(t, scheduler.DefaultTimezone, cfg.Timezone)
}
