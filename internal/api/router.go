package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skylens/routemetrics/internal/config"
	"github.com/skylens/routemetrics/internal/handler"
	"github.com/skylens/routemetrics/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Pipeline    *handler.PipelineHandler
	KPI         *handler.KPIHandler
	Mart        *handler.MartHandler
	Diagnostics *handler.DiagnosticsHandler
}

// SetupRouter wires the HTTP surface. Reads are open; the pipeline
// trigger mutates every mart and therefore requires a token.
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Route Metrics API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(300, time.Minute))
	{
		pipeline := api.Group("/pipeline")
		{
			pipeline.POST("/run", middleware.Auth(cfg.JWTSecret), h.Pipeline.Run)
			pipeline.GET("/runs/latest", h.Pipeline.LatestRun)
		}

		kpis := api.Group("/kpis")
		{
			kpis.GET("", h.KPI.ListNames)
			kpis.GET("/:name", h.KPI.GetByName)
		}

		marts := api.Group("/marts")
		{
			marts.GET("/legs", h.Mart.GetLegFacts)
			marts.GET("/segments", h.Mart.GetSegments)
		}

		diagnostics := api.Group("/diagnostics")
		{
			diagnostics.GET("/quality", h.Diagnostics.GetQuality)
			diagnostics.GET("/breakdowns/:name", h.Diagnostics.GetBreakdown)
			diagnostics.GET("/cancel-timing", h.Diagnostics.GetCancelTiming)
			diagnostics.GET("/revenue-load-correlation", h.Diagnostics.GetCorrelation)
			diagnostics.GET("/rankings", h.Diagnostics.GetRankings)
		}

		api.GET("/config/params", h.KPI.GetParams)
	}

	return r
}
