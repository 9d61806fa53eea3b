package http

import (
	"github.com/gin-gonic/gin"

	"github.com/pricecart/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	{
		compare := v1.Group("/compare")
		{
			compare.POST("", handler.Compare)
			compare.POST("/export", handler.ExportComparison)
		}

		v1.GET("/catalog", handler.Catalog)
		v1.GET("/stores", handler.Stores)

		history := v1.Group("/history")
		{
			history.GET("", handler.History)
			history.DELETE("", handler.ClearHistory)
		}
	}

	return router
}
