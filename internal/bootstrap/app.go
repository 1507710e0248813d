package bootstrap

// The serve process follows these phases:
//   - Phase 1: Config & Logger - load configuration and create logger
//   - Phase 2: Database - connect to PostgreSQL, migrate, create repositories
//   - Phase 3: Services - probes, monitor, reports, sites, optional Redis lock
//   - Phase 4: Recovery - fail executions a crash left running
//   - Phase 5: Server - HTTP API and the daily scheduler
//   - Phase 6: Run - wait for a signal or a server error

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/api"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/job"
	"github.com/spf13/viper"
)

// Start runs the API server and scheduler until SIGINT or SIGTERM.
func Start(ctx context.Context, v *viper.Viper) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Phase 1
	deps, err := NewCommandDeps(v)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	log := deps.Logger
	defer func() { _ = log.Sync() }()

	// Phase 2
	db, err := SetupDatabase(deps.Config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err = database.RunMigrations(db.DB, log); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Phase 3
	services, err := SetupServices(ctx, deps, db)
	if err != nil {
		return fmt.Errorf("failed to setup services: %w", err)
	}
	defer services.Close()

	// Phase 4
	RecoverInterrupted(ctx, services.Monitor, log)

	// Phase 5
	runCtx, cancelRuns := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelRuns()

	monitoring := api.NewMonitoringHandler(runCtx, api.MonitorStarter(services.Monitor), log)
	if !deps.Config.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.SetupRouter(api.RouterParams{
		Config: deps.Config.Server,
		Handlers: api.Handlers{
			Sites:      api.NewSitesHandler(services.Sites),
			Monitoring: monitoring,
			History:    api.NewHistoryHandler(services.Reports),
			Alerts:     api.NewAlertsHandler(db.Alerts),
		},
		Gatherer: services.Registry,
		DB:       db.DB,
		Logger:   log,
	})

	var scheduler *job.Scheduler
	if deps.Config.Scheduler.Enabled {
		scheduler, err = job.NewScheduler(deps.Config.Scheduler, services.Monitor, log)
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
	}

	// Phase 6
	return RunUntilInterrupt(ctx, log, &Lifecycle{
		Server:     api.NewHTTPServer(deps.Config.Server, router),
		Scheduler:  scheduler,
		Monitoring: monitoring,
		Cancel:     cancelRuns,
	})
}
