package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/browser"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/scraping"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/evasion"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/metrics"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/monitor"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/probe"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/report"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/sites"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// ServiceComponents holds the domain services.
type ServiceComponents struct {
	Monitor  *monitor.Service
	Reports  *report.Service
	Sites    *sites.Service
	Registry *prometheus.Registry
	Redis    *redis.Client
}

// Close releases the Redis client, if any.
func (s *ServiceComponents) Close() error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Close()
}

// SetupServices builds the probes, the monitor, and the read-side services.
// Redis is optional: when it is disabled runs are only exclusive in-process.
func SetupServices(ctx context.Context, deps *CommandDeps, db *DatabaseComponents) (*ServiceComponents, error) {
	cfg := deps.Config
	log := deps.Logger

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	redisClient, err := CreateRedisClient(ctx, cfg.Redis)
	switch {
	case errors.Is(err, ErrRedisDisabled):
		log.Info("Redis disabled, run lock is in-process only")
	case err != nil:
		return nil, err
	}

	launcher, err := NewLauncher(cfg.Scraping, log)
	if err != nil {
		return nil, err
	}

	probeOpts := probe.Options{}
	monitorSvc := monitor.NewService(
		monitor.Config{PositionDropThreshold: cfg.Alerts.PositionDropThreshold},
		monitor.Dependencies{
			Sites:         db.Sites,
			Keywords:      db.Keywords,
			Positions:     db.Positions,
			Listings:      db.Listings,
			Backlinks:     db.Backlinks,
			Alerts:        db.Alerts,
			Executions:    db.Executions,
			PositionProbe: probe.NewPositionProbe(launcher, probeOpts, log),
			ListingProbe:  probe.NewListingProbe(launcher, probeOpts, log),
			BacklinkProbe: probe.NewBacklinkProbe(launcher, probeOpts, log),
			Pacer:         evasion.NewPacer(cfg.Scraping.MinDelay, cfg.Scraping.MaxDelay, nil),
			Lock:          newRunLock(redisClient, cfg.Redis),
			Metrics:       metrics.NewMetrics(registry),
			Logger:        log,
			Now:           time.Now,
		},
	)

	reports := report.NewService(report.Repositories{
		Sites:      db.Sites,
		Positions:  db.Positions,
		Listings:   db.Listings,
		Backlinks:  db.Backlinks,
		Executions: db.Executions,
		Changes:    db.Changes,
	}, log, time.Now)

	return &ServiceComponents{
		Monitor:  monitorSvc,
		Reports:  reports,
		Sites:    sites.NewService(db.Sites, db.Keywords, log),
		Registry: registry,
		Redis:    redisClient,
	}, nil
}

// NewLauncher selects the browser backend named by the scraping config.
func NewLauncher(cfg *scraping.Config, log logger.Interface) (browser.Launcher, error) {
	opts := browser.Options{
		Headless:          cfg.Headless,
		NavigationTimeout: cfg.NavigationTimeout,
		SettleDelay:       cfg.SettleDelay,
		ExecPath:          cfg.ExecPath,
	}
	switch cfg.Backend {
	case scraping.BackendChromedp:
		return browser.NewChromeLauncher(opts, log), nil
	case scraping.BackendHTTP:
		return browser.NewHTTPLauncher(opts, nil, log), nil
	default:
		return nil, fmt.Errorf("unknown scraping backend: %q", cfg.Backend)
	}
}

// RecoverInterrupted fails executions a previous process left running.
func RecoverInterrupted(ctx context.Context, svc *monitor.Service, log logger.Interface) {
	if _, err := svc.RecoverInterrupted(ctx); err != nil {
		log.Error("Failed to recover interrupted executions", "error", err)
	}
}
