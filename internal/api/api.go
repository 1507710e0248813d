// Package api implements the HTTP API of the SEO monitor.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/api/middleware"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/config/server"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers groups the route handlers.
type Handlers struct {
	Sites      *SitesHandler
	Monitoring *MonitoringHandler
	History    *HistoryHandler
	Alerts     *AlertsHandler
}

// RouterParams holds what SetupRouter needs.
type RouterParams struct {
	Config   *server.Config
	Handlers Handlers
	// Gatherer backs /metrics. Nil serves the default registry.
	Gatherer prometheus.Gatherer
	// DB is pinged by /health when set.
	DB     Pinger
	Logger logger.Interface
}

// SetupRouter creates the gin engine with every route.
func SetupRouter(p RouterParams) *gin.Engine {
	security := middleware.NewSecurity(p.Config, p.Logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(p.Logger))
	router.Use(security.Headers())

	router.GET("/health", healthHandler(p.DB))

	gatherer := p.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := router.Group("/api", security.RequireAPIKey())
	setupSiteRoutes(api.Group("/sites"), p.Handlers.Sites)
	setupMonitoringRoutes(api.Group("/monitoring"), p.Handlers.Monitoring)
	setupHistoryRoutes(api, p.Handlers.History)
	setupAlertRoutes(api.Group("/alerts"), p.Handlers.Alerts)

	return router
}

func setupSiteRoutes(g *gin.RouterGroup, h *SitesHandler) {
	g.GET("", h.ListSites)
	g.POST("", h.CreateSite)
	g.POST("/bulk", h.BulkImport)
	g.GET("/:id", h.GetSite)
	g.PUT("/:id", h.UpdateSite)
	g.DELETE("/:id", h.DeleteSite)
	g.GET("/:id/keywords", h.ListKeywords)
	g.POST("/:id/keywords", h.CreateKeyword)
	g.PUT("/:id/keywords/:keywordId", h.UpdateKeyword)
	g.DELETE("/:id/keywords/:keywordId", h.DeleteKeyword)
}

func setupMonitoringRoutes(g *gin.RouterGroup, h *MonitoringHandler) {
	g.GET("/status", h.Status)
	g.POST("/run", h.RunAll)
	g.POST("/positions/:siteId", h.RunPositions)
	g.POST("/listing/:siteId", h.RunListing)
	g.POST("/backlinks/:siteId", h.RunBacklinks)
}

func setupHistoryRoutes(api *gin.RouterGroup, h *HistoryHandler) {
	history := api.Group("/history")
	history.GET("/dashboard/:siteId", h.Dashboard)
	history.GET("/positions/:siteId", h.Positions)
	history.GET("/positions/:siteId/compare", h.ComparePositions)
	history.GET("/listing/:siteId", h.Listing)
	history.GET("/backlinks/:siteId", h.Backlinks)
	history.GET("/backlinks/:siteId/status/:status", h.BacklinksByStatus)
	history.GET("/backlinks/:siteId/stats", h.BacklinkStats)
	history.GET("/executions", h.Executions)

	changes := api.Group("/changes")
	changes.GET("", h.Changes)
	changes.GET("/stats", h.ChangeStats)
}

func setupAlertRoutes(g *gin.RouterGroup, h *AlertsHandler) {
	g.GET("", h.ListAlerts)
	g.GET("/unread/count", h.UnreadCount)
	g.PATCH("/read/all", h.MarkAllRead)
	g.GET("/:id", h.GetAlert)
	g.PATCH("/:id/read", h.MarkRead)
	g.DELETE("/:id", h.DeleteAlert)
}

func healthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
