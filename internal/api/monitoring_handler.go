package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/monitor"
)

// PendingRun is a claimed execution waiting to be executed.
type PendingRun interface {
	Execution() *domain.Execution
	Execute(ctx context.Context) (*monitor.RunResult, error)
}

// RunStarter claims an execution of the given type. siteID is ignored for full runs.
type RunStarter interface {
	Start(ctx context.Context, execType domain.ExecutionType, siteID int64) (PendingRun, error)
	// Running reports whether this process currently holds a run.
	Running() bool
}

// MonitorStarter adapts a monitor service to RunStarter.
func MonitorStarter(svc *monitor.Service) RunStarter {
	return monitorStarter{svc: svc}
}

type monitorStarter struct {
	svc *monitor.Service
}

func (m monitorStarter) Running() bool {
	return m.svc.Running()
}

func (m monitorStarter) Start(ctx context.Context, execType domain.ExecutionType, siteID int64) (PendingRun, error) {
	var (
		run *monitor.Run
		err error
	)
	switch execType {
	case domain.ExecutionTypePositions:
		run, err = m.svc.StartPositions(ctx, siteID)
	case domain.ExecutionTypeListing:
		run, err = m.svc.StartListing(ctx, siteID)
	case domain.ExecutionTypeBacklinks:
		run, err = m.svc.StartBacklinks(ctx, siteID)
	default:
		run, err = m.svc.StartFull(ctx)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// MonitoringHandler triggers monitoring runs in the background.
type MonitoringHandler struct {
	starter RunStarter
	// runCtx bounds background runs to the server lifetime.
	runCtx context.Context
	wg     sync.WaitGroup
	log    logger.Interface
}

// NewMonitoringHandler creates a monitoring handler. Runs it starts are
// cancelled when runCtx is done.
func NewMonitoringHandler(runCtx context.Context, starter RunStarter, log logger.Interface) *MonitoringHandler {
	return &MonitoringHandler{starter: starter, runCtx: runCtx, log: log.WithComponent("api.monitoring")}
}

// RunAll handles POST /api/monitoring/run
func (h *MonitoringHandler) RunAll(c *gin.Context) {
	h.trigger(c, domain.ExecutionTypeFull, 0)
}

// RunPositions handles POST /api/monitoring/positions/:siteId
func (h *MonitoringHandler) RunPositions(c *gin.Context) {
	h.triggerForSite(c, domain.ExecutionTypePositions)
}

// RunListing handles POST /api/monitoring/listing/:siteId
func (h *MonitoringHandler) RunListing(c *gin.Context) {
	h.triggerForSite(c, domain.ExecutionTypeListing)
}

// RunBacklinks handles POST /api/monitoring/backlinks/:siteId
func (h *MonitoringHandler) RunBacklinks(c *gin.Context) {
	h.triggerForSite(c, domain.ExecutionTypeBacklinks)
}

// Status handles GET /api/monitoring/status
func (h *MonitoringHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"running": h.starter.Running()})
}

// Wait blocks until every background run has finished.
func (h *MonitoringHandler) Wait() {
	h.wg.Wait()
}

func (h *MonitoringHandler) triggerForSite(c *gin.Context, execType domain.ExecutionType) {
	siteID, ok := parseID(c, "siteId")
	if !ok {
		return
	}
	h.trigger(c, execType, siteID)
}

func (h *MonitoringHandler) trigger(c *gin.Context, execType domain.ExecutionType, siteID int64) {
	run, err := h.starter.Start(c.Request.Context(), execType, siteID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	exec := run.Execution()
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		if _, runErr := run.Execute(h.runCtx); runErr != nil {
			h.log.Warn("Background run failed", "execution_id", exec.ID, "type", execType, "error", runErr)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"message":     "Monitoring started",
		"executionId": exec.ID,
		"type":        execType,
		"status":      domain.ExecutionStatusRunning,
	})
}
