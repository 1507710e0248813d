package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/api/middleware"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/server"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newRouter(cfg *server.Config) *gin.Engine {
	sec := middleware.NewSecurity(cfg, logger.NewNoOp())

	r := gin.New()
	r.Use(middleware.RequestID(), sec.Headers())
	api := r.Group("/api", sec.RequireAPIKey())
	api.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})
	return r
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	r := newRouter(server.NewConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	generated := w.Header().Get(middleware.RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestSecurity_APIKey(t *testing.T) {
	t.Parallel()

	cfg := server.NewConfig()
	cfg.APIKey = "secret"
	r := newRouter(cfg)

	tests := []struct {
		name   string
		header string
		value  string
		status int
	}{
		{name: "missing", status: http.StatusUnauthorized},
		{name: "wrong", header: middleware.APIKeyHeader, value: "nope", status: http.StatusUnauthorized},
		{name: "valid", header: middleware.APIKeyHeader, value: "secret", status: http.StatusOK},
		{name: "bearer", header: "Authorization", value: "Bearer secret", status: http.StatusOK},
		{name: "bearer wrong", header: "Authorization", value: "Bearer nope", status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestSecurity_CORS(t *testing.T) {
	t.Parallel()

	cfg := server.NewConfig()
	cfg.CORSOrigins = []string{"https://dashboard.example.com"}
	r := newRouter(cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/ping", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://dashboard.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
