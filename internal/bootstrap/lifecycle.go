package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/api"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/job"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
)

const runDrainTimeout = 30 * time.Second

// Lifecycle holds what must be stopped on shutdown.
type Lifecycle struct {
	Server     *http.Server
	Scheduler  *job.Scheduler
	Monitoring *api.MonitoringHandler
	Cancel     context.CancelFunc
}

// RunUntilInterrupt serves HTTP until ctx is cancelled by a signal or the
// server fails, then shuts everything down in order.
func RunUntilInterrupt(ctx context.Context, log logger.Interface, lc *Lifecycle) error {
	if lc.Scheduler != nil {
		if err := lc.Scheduler.Start(); err != nil {
			return err
		}
	}

	serveErr := api.Serve(ctx, lc.Server, log)
	if serveErr != nil {
		log.Error("Server error", "error", serveErr)
	}

	Shutdown(log, lc)
	return serveErr
}

// Shutdown stops the scheduler, cancels in-flight runs and waits for them
// to finalize their executions.
func Shutdown(log logger.Interface, lc *Lifecycle) {
	log.Info("Shutting down")

	if lc.Scheduler != nil {
		lc.Scheduler.Stop()
	}
	if lc.Cancel != nil {
		lc.Cancel()
	}
	if lc.Monitoring != nil {
		done := make(chan struct{})
		go func() {
			lc.Monitoring.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(runDrainTimeout):
			log.Warn("Timed out waiting for background runs", "timeout", runDrainTimeout.String())
		}
	}

	log.Info("Shutdown complete")
}
