package bookings

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	authed := []gin.HandlerFunc{
		middleware.JWTAuth(),
		middleware.RequireRoles(middleware.RoleUser, middleware.RoleAdmin),
	}

	bookings := rg.Group("/bookings")
	bookings.Use(authed...)
	{
		bookings.POST("", controller.CreateBooking)             // POST /api/v1/bookings
		bookings.GET("/:id", controller.GetBooking)             // GET /api/v1/bookings/:id
		bookings.POST("/:id/payment", controller.SettlePayment) // POST /api/v1/bookings/:id/payment
		bookings.POST("/:id/cancel", controller.CancelBooking)  // POST /api/v1/bookings/:id/cancel
	}

	users := rg.Group("/users")
	users.Use(authed...)
	{
		users.GET("/bookings", controller.GetUserBookings) // GET /api/v1/users/bookings
	}
}
