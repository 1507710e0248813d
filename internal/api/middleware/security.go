// Package middleware provides the gin middleware shared by every API route.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/server"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// APIKeyHeader carries the API key when one is configured.
const APIKeyHeader = "X-API-Key"

const requestIDKey = "request_id"

// RequestID tags each request with an id, reusing the caller's when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id set by RequestID.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Logger logs each request once it completes.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start).String(),
		}
		if status >= http.StatusInternalServerError {
			log.Error("HTTP request", fields...)
			return
		}
		log.Debug("HTTP request", fields...)
	}
}

// Security adds hardening headers, answers CORS preflights for the allowed
// origins, and enforces the API key when one is configured.
type Security struct {
	origins []string
	apiKey  string
	log     logger.Interface
}

// NewSecurity creates the security middleware from server settings.
func NewSecurity(cfg *server.Config, log logger.Interface) *Security {
	return &Security{origins: cfg.CORSOrigins, apiKey: cfg.APIKey, log: log}
}

// Headers sets response hardening headers and CORS.
func (m *Security) Headers() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if origin := c.GetHeader("Origin"); origin != "" && m.originAllowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")
			c.Header("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequireAPIKey rejects requests without the configured key. It is a no-op
// when no key is configured.
func (m *Security) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.apiKey == "" {
			c.Next()
			return
		}
		if err := m.checkAPIKey(apiKeyFrom(c)); err != nil {
			m.log.Warn("Rejected API request",
				"request_id", GetRequestID(c),
				"path", c.Request.URL.Path,
				"error", err,
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Next()
	}
}

// apiKeyFrom reads X-API-Key, falling back to an Authorization bearer token.
func apiKeyFrom(c *gin.Context) string {
	if key := c.GetHeader(APIKeyHeader); key != "" {
		return key
	}
	if token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func (m *Security) checkAPIKey(key string) error {
	if key == "" {
		return ErrMissingAPIKey
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) != 1 {
		return ErrInvalidAPIKey
	}
	return nil
}

func (m *Security) originAllowed(origin string) bool {
	return len(m.origins) == 0 || slices.Contains(m.origins, origin)
}
