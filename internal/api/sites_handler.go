package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/sites"
)

// SitesHandler serves site and keyword management.
type SitesHandler struct {
	sites SiteService
}

// NewSitesHandler creates a sites handler.
func NewSitesHandler(svc SiteService) *SitesHandler {
	return &SitesHandler{sites: svc}
}

// BulkImportRequest lists site URLs to import.
type BulkImportRequest struct {
	URLs []string `binding:"required" json:"urls"`
}

// KeywordRequest is the body of keyword create and update calls.
type KeywordRequest struct {
	Keyword string `binding:"required" json:"keyword"`
	Active  *bool  `json:"active"`
}

// ListSites handles GET /api/sites. Inactive sites are included with ?all=true.
func (h *SitesHandler) ListSites(c *gin.Context) {
	list := h.sites.List
	if c.Query("all") == "true" {
		list = h.sites.ListAll
	}
	rows, err := list(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetSite handles GET /api/sites/:id
func (h *SitesHandler) GetSite(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	site, err := h.sites.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

// CreateSite handles POST /api/sites
func (h *SitesHandler) CreateSite(c *gin.Context) {
	var in sites.SiteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}
	site, err := h.sites.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, site)
}

// BulkImport handles POST /api/sites/bulk
func (h *SitesHandler) BulkImport(c *gin.Context) {
	var req BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}
	result, err := h.sites.BulkImport(c.Request.Context(), req.URLs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateSite handles PUT /api/sites/:id
func (h *SitesHandler) UpdateSite(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in sites.SiteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}
	site, err := h.sites.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

// DeleteSite handles DELETE /api/sites/:id
func (h *SitesHandler) DeleteSite(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.sites.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListKeywords handles GET /api/sites/:id/keywords
func (h *SitesHandler) ListKeywords(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rows, err := h.sites.Keywords(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateKeyword handles POST /api/sites/:id/keywords
func (h *SitesHandler) CreateKeyword(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req KeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}
	kw, err := h.sites.AddKeyword(c.Request.Context(), id, req.Keyword)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, kw)
}

// UpdateKeyword handles PUT /api/sites/:id/keywords/:keywordId
func (h *SitesHandler) UpdateKeyword(c *gin.Context) {
	siteID, ok := parseID(c, "id")
	if !ok {
		return
	}
	keywordID, ok := parseID(c, "keywordId")
	if !ok {
		return
	}
	var req KeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}
	kw, err := h.sites.UpdateKeyword(c.Request.Context(), siteID, keywordID, req.Keyword, req.Active)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, kw)
}

// DeleteKeyword handles DELETE /api/sites/:id/keywords/:keywordId
func (h *SitesHandler) DeleteKeyword(c *gin.Context) {
	siteID, ok := parseID(c, "id")
	if !ok {
		return
	}
	keywordID, ok := parseID(c, "keywordId")
	if !ok {
		return
	}
	if err := h.sites.DeleteKeyword(c.Request.Context(), siteID, keywordID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
