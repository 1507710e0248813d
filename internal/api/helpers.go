package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/monitor"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/report"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/sites"
)

const (
	defaultExecutionLimit = 20
	defaultAlertLimit     = 50
	maxListLimit          = 500
)

// parseID reads a positive integer path parameter, answering 400 when it is not one.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// queryInt reads a positive integer query parameter with a default.
func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// queryInt64 reads an optional integer query parameter. ok is false when the
// value is present but malformed.
func queryInt64(c *gin.Context, key string) (value *int64, ok bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// queryBool reads an optional boolean query parameter.
func queryBool(c *gin.Context, key string) (value *bool, ok bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// clampLimit bounds a limit to maxLimit, treating non-positive values as maxLimit.
func clampLimit(limit, maxLimit int) int {
	if limit <= 0 || limit > maxLimit {
		return maxLimit
	}
	return limit
}

// respondError sends a JSON error response.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondNotFound sends a 404 with resource not found message.
func respondNotFound(c *gin.Context, resource string) {
	respondError(c, http.StatusNotFound, resource+" not found")
}

// respondBadRequest sends a 400 with message.
func respondBadRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, message)
}

// respondInternalError sends a 500 with message.
func respondInternalError(c *gin.Context, message string) {
	respondError(c, http.StatusInternalServerError, message)
}

// respondServiceError maps a service error onto a status code.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrSiteNotFound):
		respondNotFound(c, "site")
	case errors.Is(err, database.ErrKeywordNotFound):
		respondNotFound(c, "keyword")
	case errors.Is(err, database.ErrAlertNotFound):
		respondNotFound(c, "alert")
	case errors.Is(err, database.ErrExecutionNotFound):
		respondNotFound(c, "execution")
	case errors.Is(err, sites.ErrInvalidInput), errors.Is(err, report.ErrInvalidStatus):
		respondBadRequest(c, err.Error())
	case errors.Is(err, monitor.ErrRunInProgress):
		respondError(c, http.StatusConflict, err.Error())
	default:
		respondInternalError(c, err.Error())
	}
}
