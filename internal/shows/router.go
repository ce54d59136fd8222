package shows

import (
	"github.com/gin-gonic/gin"
)

// SetupShowRoutes configures the public show listing routes. The
// per-show seat endpoints live with the reservation routes.
func SetupShowRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/shows", controller.ListShows) // GET /api/v1/shows?movie_id=&city=&date=
}
