package offers

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupOfferRoutes configures public offer routes
func SetupOfferRoutes(rg *gin.RouterGroup, controller *Controller) {
	offers := rg.Group("/offers")
	{
		offers.GET("", controller.ListOffers)              // GET /api/v1/offers
		offers.POST("/validate", controller.ValidateOffer) // POST /api/v1/offers/validate
	}
}

// SetupAdminOfferRoutes configures admin-only offer management routes
func SetupAdminOfferRoutes(rg *gin.RouterGroup, controller *Controller) {
	offers := rg.Group("/offers")
	offers.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		offers.POST("", controller.CreateOffer)          // POST /api/v1/admin/offers
		offers.DELETE("/:code", controller.DeleteOffer) // DELETE /api/v1/admin/offers/:code
	}
}
