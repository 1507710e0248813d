// Package serve implements the command that runs the API and scheduler.
package serve

import (
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/bootstrap"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Command returns the serve command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database, then serve the API and run the daily schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap.Start(cmd.Context(), viper.GetViper())
		},
	}
}
