package reservations

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupReservationRoutes configures seat snapshot and hold routes
func SetupReservationRoutes(rg *gin.RouterGroup, controller *Controller) {
	shows := rg.Group("/shows")
	{
		// Seat snapshots are public so browsers can render the seat map
		shows.GET("/:id/seats", controller.SeatSnapshot)

		// Holding seats requires identity
		shows.POST("/:id/hold", middleware.JWTAuth(), middleware.RequireRoles(middleware.RoleUser, middleware.RoleAdmin), controller.HoldSeats)
	}

	holds := rg.Group("/holds")
	holds.Use(middleware.JWTAuth(), middleware.RequireRoles(middleware.RoleUser, middleware.RoleAdmin))
	{
		holds.DELETE("/:id", controller.ReleaseHold) // DELETE /api/v1/holds/:id
	}
}
