// Package monitor orchestrates monitoring runs: it drives the probes site by
// site, records observations, detects regressions and raises alerts.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/browser"
	alertconfig "github.com/jonesrussell/north-cloud/seo-monitor/internal/config/alerts"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/coordination"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/metrics"
)

// finalizeTimeout bounds the write that closes an execution.
const finalizeTimeout = 10 * time.Second

// InterruptedMessage is recorded on executions left running by a previous process.
const InterruptedMessage = "interrupted"

// ErrRunInProgress is returned when a run is requested while another is active.
var ErrRunInProgress = errors.New("a monitoring run is already in progress")

// Config tunes alerting.
type Config struct {
	PositionDropThreshold int
}

// Dependencies wires a Service.
type Dependencies struct {
	Sites      SiteStore
	Keywords   KeywordStore
	Positions  PositionStore
	Listings   ListingStore
	Backlinks  BacklinkStore
	Alerts     AlertStore
	Executions ExecutionStore

	PositionProbe PositionChecker
	ListingProbe  ListingChecker
	BacklinkProbe BacklinkChecker
	Pacer         Pacer

	// Lock is optional. When set, runs are also exclusive across replicas.
	Lock    *coordination.RunLock
	Metrics *metrics.Metrics
	Logger  logger.Interface
	Now     func() time.Time
}

// Service runs monitoring strictly one probe at a time.
type Service struct {
	sites      SiteStore
	keywords   KeywordStore
	positions  PositionStore
	listings   ListingStore
	backlinks  BacklinkStore
	alerts     AlertStore
	executions ExecutionStore

	positionProbe PositionChecker
	listingProbe  ListingChecker
	backlinkProbe BacklinkChecker
	pacer         Pacer

	guard     *runGuard
	metrics   *metrics.Metrics
	log       logger.Interface
	now       func() time.Time
	threshold int
}

// NewService creates a monitoring service.
func NewService(cfg Config, deps Dependencies) *Service {
	threshold := cfg.PositionDropThreshold
	if threshold < 1 {
		threshold = alertconfig.DefaultPositionDropThreshold
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOp()
	}
	log = log.WithComponent("monitor")

	return &Service{
		sites:         deps.Sites,
		keywords:      deps.Keywords,
		positions:     deps.Positions,
		listings:      deps.Listings,
		backlinks:     deps.Backlinks,
		alerts:        deps.Alerts,
		executions:    deps.Executions,
		positionProbe: deps.PositionProbe,
		listingProbe:  deps.ListingProbe,
		backlinkProbe: deps.BacklinkProbe,
		pacer:         deps.Pacer,
		guard:         newRunGuard(deps.Lock, log),
		metrics:       deps.Metrics,
		log:           log,
		now:           now,
		threshold:     threshold,
	}
}

// RunResult reports how a run ended.
type RunResult struct {
	Success     bool  `json:"success"`
	ExecutionID int64 `json:"executionId"`
}

// Run is an execution that has been started but not yet executed. It holds
// the run guard until Execute returns.
type Run struct {
	svc       *Service
	execution *domain.Execution
	release   func()
	body      func(ctx context.Context) error
}

// Execution returns the tracked execution row.
func (r *Run) Execution() *domain.Execution {
	return r.execution
}

// Execute performs the run, finalizes its execution and releases the guard.
// The execution is never left running when Execute returns.
func (r *Run) Execute(ctx context.Context) (*RunResult, error) {
	defer r.release()

	s := r.svc
	exec := r.execution
	started := s.now()
	s.metrics.RunStarted()
	s.log.Info("Monitoring run started", "execution_id", exec.ID, "type", exec.Type)

	runErr := r.body(ctx)

	status := domain.ExecutionStatusCompleted
	var errMsg *string
	if runErr != nil {
		status = domain.ExecutionStatusFailed
		msg := runErr.Error()
		errMsg = &msg
	}

	finalizeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
	defer cancel()
	completedAt := s.now()
	if err := s.executions.Finish(finalizeCtx, exec.ID, status, errMsg, completedAt); err != nil {
		s.log.Error("Failed to finalize execution", "execution_id", exec.ID, "error", err)
	}
	exec.Status, exec.CompletedAt, exec.ErrorMessage = status, &completedAt, errMsg
	s.metrics.RunFinished(string(exec.Type), string(status), completedAt.Sub(started))

	result := &RunResult{Success: runErr == nil, ExecutionID: exec.ID}
	if runErr != nil {
		s.log.Error("Monitoring run failed", "execution_id", exec.ID, "type", exec.Type, "error", runErr)
		return result, runErr
	}
	s.log.Info("Monitoring run completed",
		"execution_id", exec.ID,
		"type", exec.Type,
		"duration", completedAt.Sub(started).String(),
	)
	return result, nil
}

// StartFull claims the run guard and records a full execution over all active sites.
func (s *Service) StartFull(ctx context.Context) (*Run, error) {
	return s.start(ctx, domain.ExecutionTypeFull, nil, s.runAllSites)
}

// StartPositions records a positions-only execution for one site.
func (s *Service) StartPositions(ctx context.Context, siteID int64) (*Run, error) {
	return s.startForSite(ctx, domain.ExecutionTypePositions, siteID, s.checkPositions)
}

// StartListing records a listing-only execution for one site.
func (s *Service) StartListing(ctx context.Context, siteID int64) (*Run, error) {
	return s.startForSite(ctx, domain.ExecutionTypeListing, siteID, s.checkListing)
}

// StartBacklinks records a backlinks-only execution for one site.
func (s *Service) StartBacklinks(ctx context.Context, siteID int64) (*Run, error) {
	return s.startForSite(ctx, domain.ExecutionTypeBacklinks, siteID, s.checkBacklinks)
}

// RunFull monitors every active site and waits for the run to finish.
func (s *Service) RunFull(ctx context.Context) (*RunResult, error) {
	run, err := s.StartFull(ctx)
	if err != nil {
		return nil, err
	}
	return run.Execute(ctx)
}

// RunPositions checks every active keyword of one site.
func (s *Service) RunPositions(ctx context.Context, siteID int64) (*RunResult, error) {
	run, err := s.StartPositions(ctx, siteID)
	if err != nil {
		return nil, err
	}
	return run.Execute(ctx)
}

// RunListing checks the business listing of one site.
func (s *Service) RunListing(ctx context.Context, siteID int64) (*RunResult, error) {
	run, err := s.StartListing(ctx, siteID)
	if err != nil {
		return nil, err
	}
	return run.Execute(ctx)
}

// RunBacklinks checks the backlinks of one site.
func (s *Service) RunBacklinks(ctx context.Context, siteID int64) (*RunResult, error) {
	run, err := s.StartBacklinks(ctx, siteID)
	if err != nil {
		return nil, err
	}
	return run.Execute(ctx)
}

// RecoverInterrupted fails executions a previous process left running.
func (s *Service) RecoverInterrupted(ctx context.Context) (int64, error) {
	n, err := s.executions.FailRunning(ctx, InterruptedMessage, s.now())
	if err != nil {
		return 0, fmt.Errorf("recover interrupted executions: %w", err)
	}
	if n > 0 {
		s.log.Warn("Marked interrupted executions as failed", "count", n)
	}
	return n, nil
}

func (s *Service) startForSite(
	ctx context.Context,
	execType domain.ExecutionType,
	siteID int64,
	step func(context.Context, *domain.Site) error,
) (*Run, error) {
	site, err := s.sites.GetByID(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("load site %d: %w", siteID, err)
	}
	return s.start(ctx, execType, &site.ID, func(ctx context.Context) error {
		return step(ctx, site)
	})
}

func (s *Service) start(
	ctx context.Context,
	execType domain.ExecutionType,
	siteID *int64,
	body func(context.Context) error,
) (*Run, error) {
	release, err := s.guard.acquire(ctx)
	if err != nil {
		return nil, err
	}

	exec, err := s.executions.Start(ctx, execType, siteID, s.now())
	if err != nil {
		release()
		return nil, fmt.Errorf("start %s execution: %w", execType, err)
	}

	return &Run{svc: s, execution: exec, release: release, body: body}, nil
}

// isStructural reports whether err means no further probe can succeed in
// this run, as opposed to one probe failing.
func isStructural(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, browser.ErrBackendUnavailable)
}

// pause waits a randomized delay between probes.
func (s *Service) pause(ctx context.Context) error {
	if s.pacer == nil {
		return nil
	}
	d, err := s.pacer.Wait(ctx)
	if err != nil {
		return fmt.Errorf("pacing interrupted: %w", err)
	}
	s.log.Debug("Paced before next probe", "delay", d.String())
	return nil
}
