// Package cmd implements the seo-monitor command-line interface.
package cmd

import (
	"context"
	"fmt"

	"github.com/jonesrussell/north-cloud/seo-monitor/cmd/migrate"
	"github.com/jonesrussell/north-cloud/seo-monitor/cmd/report"
	"github.com/jonesrussell/north-cloud/seo-monitor/cmd/run"
	"github.com/jonesrussell/north-cloud/seo-monitor/cmd/serve"
	"github.com/jonesrussell/north-cloud/seo-monitor/cmd/sites"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug logging for all commands.
	Debug bool

	// rootCmd represents the root command.
	rootCmd = &cobra.Command{
		Use:   "seo-monitor",
		Short: "Track search rankings, business listings and backlinks",
		Long: `seo-monitor checks each tracked site's organic positions, its business
listing and its referring pages, keeps the history and raises alerts on drops.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd.Root())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		serve.Command(),
		run.Command(),
		sites.Command(),
		report.Command(),
		migrate.Command(),
	)
}

// initConfig binds the global flags and reads .env, the config file and the environment.
func initConfig(root *cobra.Command) error {
	v := viper.GetViper()
	if err := v.BindPFlag("app.debug", root.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	if err := config.InitializeViper(v, cfgFile); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}
	return nil
}
