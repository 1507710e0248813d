package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
)

// AlertsHandler serves alert management.
type AlertsHandler struct {
	repo database.AlertRepositoryInterface
}

// NewAlertsHandler creates an alerts handler.
func NewAlertsHandler(repo database.AlertRepositoryInterface) *AlertsHandler {
	return &AlertsHandler{repo: repo}
}

// ListAlerts handles GET /api/alerts?read&siteId&severity&limit
func (h *AlertsHandler) ListAlerts(c *gin.Context) {
	filter := database.AlertFilter{
		Limit: clampLimit(queryInt(c, "limit", defaultAlertLimit), maxListLimit),
	}

	var ok bool
	if filter.Read, ok = queryBool(c, "read"); !ok {
		respondBadRequest(c, "invalid read filter")
		return
	}
	if filter.SiteID, ok = queryInt64(c, "siteId"); !ok {
		respondBadRequest(c, "invalid siteId")
		return
	}
	if raw := c.Query("severity"); raw != "" {
		severity := domain.Severity(raw)
		if !severity.Valid() {
			respondBadRequest(c, "invalid severity")
			return
		}
		filter.Severity = &severity
	}

	alerts, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// UnreadCount handles GET /api/alerts/unread/count?siteId
func (h *AlertsHandler) UnreadCount(c *gin.Context) {
	siteID, ok := queryInt64(c, "siteId")
	if !ok {
		respondBadRequest(c, "invalid siteId")
		return
	}
	count, err := h.repo.UnreadCount(c.Request.Context(), siteID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetAlert handles GET /api/alerts/:id
func (h *AlertsHandler) GetAlert(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	alert, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

// MarkRead handles PATCH /api/alerts/:id/read
func (h *AlertsHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.repo.MarkRead(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alert marked as read"})
}

// MarkAllRead handles PATCH /api/alerts/read/all?siteId
func (h *AlertsHandler) MarkAllRead(c *gin.Context) {
	siteID, ok := queryInt64(c, "siteId")
	if !ok {
		respondBadRequest(c, "invalid siteId")
		return
	}
	updated, err := h.repo.MarkAllRead(c.Request.Context(), siteID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// DeleteAlert handles DELETE /api/alerts/:id
func (h *AlertsHandler) DeleteAlert(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
