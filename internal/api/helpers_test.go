//nolint:testpackage // Testing unexported query helpers
package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/monitor"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/sites"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(query string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/"+query, http.NoBody)
	return c, w
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing uses default", "", 7},
		{"valid value", "?days=30", 30},
		{"zero uses default", "?days=0", 7},
		{"garbage uses default", "?days=abc", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testContext(tt.query)
			assert.Equal(t, tt.want, queryInt(c, "days", 7))
		})
	}
}

func TestQueryOptionals(t *testing.T) {
	c, _ := testContext("?siteId=12&read=false&bad=x")

	siteID, ok := queryInt64(c, "siteId")
	require.True(t, ok)
	assert.Equal(t, int64(12), *siteID)

	read, ok := queryBool(c, "read")
	require.True(t, ok)
	assert.False(t, *read)

	missing, ok := queryInt64(c, "keywordId")
	assert.True(t, ok)
	assert.Nil(t, missing)

	_, ok = queryBool(c, "bad")
	assert.False(t, ok)
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		maxLimit int
		want     int
	}{
		{"normal value", 50, 250, 50},
		{"exceeds max", 500, 250, 250},
		{"zero uses max", 0, 250, 250},
		{"negative uses max", -10, 250, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampLimit(tt.limit, tt.maxLimit))
		})
	}
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("get: %w", database.ErrSiteNotFound), http.StatusNotFound},
		{database.ErrAlertNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: domain is required", sites.ErrInvalidInput), http.StatusBadRequest},
		{monitor.ErrRunInProgress, http.StatusConflict},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			c, w := testContext("")
			respondServiceError(c, tt.err)
			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}
