// Package migrate implements schema migration commands.
package migrate

import (
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/bootstrap"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Command returns the migrate command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDatabase(func(db *bootstrap.DatabaseComponents, deps *bootstrap.CommandDeps) error {
				return database.MigrateDown(db.DB, steps, deps.Logger)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDatabase(func(db *bootstrap.DatabaseComponents, deps *bootstrap.CommandDeps) error {
				return database.RunMigrations(db.DB, deps.Logger)
			})
		},
	}, down)
	return cmd
}

func withDatabase(fn func(*bootstrap.DatabaseComponents, *bootstrap.CommandDeps) error) error {
	deps, err := bootstrap.NewCommandDeps(viper.GetViper())
	if err != nil {
		return err
	}
	defer func() { _ = deps.Logger.Sync() }()

	db, err := bootstrap.SetupDatabase(deps.Config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db, deps)
}
