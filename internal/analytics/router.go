package analytics

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAnalyticsRoutes configures admin-only analytics routes
func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller *Controller) {
	stats := rg.Group("/stats")
	stats.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		stats.GET("", controller.GetPlatformStats) // GET /api/v1/admin/stats
	}
}
