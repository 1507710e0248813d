// Package job triggers the daily monitoring run on a cron schedule.
package job

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	schedconfig "github.com/jonesrussell/north-cloud/seo-monitor/internal/config/scheduler"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/monitor"
	"github.com/robfig/cron/v3"
)

// Runner performs a full monitoring run.
type Runner interface {
	RunFull(ctx context.Context) (*monitor.RunResult, error)
}

// Scheduler fires a full run on the configured cron expression and timezone.
type Scheduler struct {
	log      logger.Interface
	runner   Runner
	cron     *cron.Cron
	schedule cron.Schedule
	expr     string
	location *time.Location
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewScheduler builds a scheduler from cfg. The cron expression uses the
// standard five fields (minute hour day month weekday).
func NewScheduler(cfg *schedconfig.Config, runner Runner, log logger.Interface) (*Scheduler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Timezone, err)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cfg.Cron)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cron expression: %w", err)
	}

	log = log.WithComponent("scheduler")
	cronLog := cronLogger{log: log}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		log:    log,
		runner: runner,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(loc),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		schedule: schedule,
		expr:     cfg.Cron,
		location: loc,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start registers the daily run and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.expr, s.trigger); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	s.cron.Start()

	now := time.Now().In(s.location)
	next := s.NextRun(now)
	s.log.Info("Scheduler started",
		"schedule", s.expr,
		"timezone", s.location.String(),
		"next_run", next.Format("2006-01-02 15:04:05 MST"),
		"time_until_next", next.Sub(now).String(),
	)
	return nil
}

// Stop halts the cron loop, cancels an in-flight scheduled run and waits for it.
func (s *Scheduler) Stop() {
	s.log.Info("Stopping scheduler")
	cronCtx := s.cron.Stop()
	s.cancel()
	<-cronCtx.Done()
	s.wg.Wait()
	s.log.Info("Scheduler stopped")
}

// NextRun returns the first scheduled fire time after t, in the schedule's timezone.
func (s *Scheduler) NextRun(t time.Time) time.Time {
	return s.schedule.Next(t.In(s.location))
}

// RunNow performs one scheduled run synchronously. Failures are logged, never returned.
func (s *Scheduler) RunNow(ctx context.Context) {
	s.wg.Add(1)
	defer s.wg.Done()

	s.log.Info("Scheduled monitoring run triggered")
	result, err := s.runner.RunFull(ctx)
	switch {
	case errors.Is(err, monitor.ErrRunInProgress):
		s.log.Warn("Skipping scheduled run, another run is active")
	case err != nil:
		fields := []any{"error", err}
		if result != nil {
			fields = append(fields, "execution_id", result.ExecutionID)
		}
		s.log.Error("Scheduled monitoring run failed", fields...)
	default:
		s.log.Info("Scheduled monitoring run completed", "execution_id", result.ExecutionID)
	}
}

func (s *Scheduler) trigger() {
	s.RunNow(s.ctx)
}

// cronLogger routes cron's own logging through the service logger.
type cronLogger struct {
	log logger.Interface
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
