package catalog

import (
	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes configures the public browse routes
func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/cities", controller.ListCities)

	movies := rg.Group("/movies")
	{
		movies.GET("", controller.ListMovies)    // GET /api/v1/movies?city=Mumbai
		movies.GET("/:id", controller.GetMovie)  // GET /api/v1/movies/:id
	}
}
