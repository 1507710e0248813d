package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/report"
)

// HistoryHandler serves observation history and dashboards.
type HistoryHandler struct {
	reports ReportService
}

// NewHistoryHandler creates a history handler.
func NewHistoryHandler(reports ReportService) *HistoryHandler {
	return &HistoryHandler{reports: reports}
}

// Dashboard handles GET /api/history/dashboard/:siteId
func (h *HistoryHandler) Dashboard(c *gin.Context) {
	siteID, ok := parseID(c, "siteId")
	if !ok {
		return
	}
	dash, err := h.reports.SiteDashboard(c.Request.Context(), siteID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// Positions handles GET /api/history/positions/:siteId?keywordId&days
func (h *HistoryHandler) Positions(c *gin.Context) {
	siteID, ok := parseID(c, "siteId")
	if !ok {
		return
	}
	keywordID, ok := queryInt64(c, "keywordId")
	if !ok {
		respondBadRequest(c, "invalid keywordId")
		return
	}
	rows, err := h.reports.PositionHistory(c.Request.Context(), siteID, keywordID,
		queryInt(c, "days", report.DefaultHistoryDays))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ComparePositions handles GET /api/history/positions/:siteId/compare
func (h *HistoryHandler) ComparePositions(c *gin.Context) {
	siteID, ok := parseID(c, "siteId")
	if !ok {
		return
	}
	rows, err := h.reports.ComparePositions(c.Request.Context(), siteID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Listing handles GET /api/history/listing/:siteId?days
func (h *HistoryHandler) Listing(c *gin.Context) {
	siteID, ok := parseID(c, "siteId")
	if !ok {
		return
	}
	rows, err := h.reports.ListingHistory(c.Request.Context(), siteID,
		queryInt(c, "days", report.DefaultHistoryDays))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Backlinks handles GET /api/history/backlinks/:siteId
func (h *HistoryHandler) Backlinks(c *gin.Context) {
	siteID, ok := parseID(c, "siteId")
	if !ok {
		return
	}
	rows, err := h.reports.BacklinksHistory(c.Request.Context(), siteID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// BacklinksByStatus handles GET /api/history/backlinks/:siteId/status/:status
func (h *HistoryHandler) BacklinksByStatus(c *gin.Context) {
	siteID, ok := parseID(c, "siteId")
	if !ok {
		return
	}
	rows, err := h.reports.BacklinksByStatus(c.Request.Context(), siteID, domain.BacklinkStatus(c.Param("status")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// BacklinkStats handles GET /api/history/backlinks/:siteId/stats
func (h *HistoryHandler) BacklinkStats(c *gin.Context) {
	siteID, ok := parseID(c, "siteId")
	if !ok {
		return
	}
	stats, err := h.reports.BacklinkStats(c.Request.Context(), siteID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Executions handles GET /api/history/executions?limit
func (h *HistoryHandler) Executions(c *gin.Context) {
	limit := clampLimit(queryInt(c, "limit", defaultExecutionLimit), maxListLimit)
	rows, err := h.reports.RecentExecutions(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Changes handles GET /api/changes?days
func (h *HistoryHandler) Changes(c *gin.Context) {
	changes, err := h.reports.RecentChanges(c.Request.Context(), queryInt(c, "days", report.DefaultChangeDays))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, changes)
}

// ChangeStats handles GET /api/changes/stats?days
func (h *HistoryHandler) ChangeStats(c *gin.Context) {
	stats, err := h.reports.ChangeStats(c.Request.Context(), queryInt(c, "days", report.DefaultChangeDays))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
