package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "run", "sites", "report", "migrate"})
	require.NotNil(t, rootCmd.PersistentPreRunE)
}

func TestInitConfig_BindsDebugFlag(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("APP_DEBUG", "")

	require.NoError(t, rootCmd.PersistentFlags().Set("debug", "true"))
	t.Cleanup(func() { _ = rootCmd.PersistentFlags().Set("debug", "false") })

	require.NoError(t, initConfig(rootCmd))
	assert.True(t, viper.GetBool("app.debug"))
	assert.Equal(t, "seo-monitor", viper.GetString("app.name"))
}
