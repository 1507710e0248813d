// Package common provides the setup shared by the CLI commands.
package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/bootstrap"
	"github.com/spf13/viper"
)

// Env is what a one-shot command runs against.
type Env struct {
	*bootstrap.CommandDeps
	DB       *bootstrap.DatabaseComponents
	Services *bootstrap.ServiceComponents
}

// NewEnv loads the configuration, opens the database and builds the services.
func NewEnv(ctx context.Context) (*Env, error) {
	deps, err := bootstrap.NewCommandDeps(viper.GetViper())
	if err != nil {
		return nil, err
	}

	db, err := bootstrap.SetupDatabase(deps.Config.Database)
	if err != nil {
		return nil, err
	}

	services, err := bootstrap.SetupServices(ctx, deps, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to setup services: %w", err)
	}

	return &Env{CommandDeps: deps, DB: db, Services: services}, nil
}

// Close releases the services, the database pool and flushes the logger.
func (e *Env) Close() error {
	err := errors.Join(e.Services.Close(), e.DB.Close())
	_ = e.Logger.Sync()
	return err
}

// NewTable returns a table writer rendering to out in the CLI's style.
func NewTable(out io.Writer) table.Writer {
	if out == nil {
		out = os.Stdout
	}
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	return t
}
