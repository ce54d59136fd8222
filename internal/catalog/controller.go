package catalog

import (
	"errors"
	"net/http"

	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListCities handles GET /api/v1/cities
func (c *Controller) ListCities(ctx *gin.Context) {
	cities, err := c.service.ListCities(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list cities", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cities retrieved successfully", gin.H{
		"cities": cities,
		"count":  len(cities),
	}, nil)
}

// ListMovies handles GET /api/v1/movies?city=
func (c *Controller) ListMovies(ctx *gin.Context) {
	city := ctx.Query("city")

	movies, err := c.service.ListMovies(ctx.Request.Context(), city)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list movies", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Movies retrieved successfully", gin.H{
		"movies": movies,
		"count":  len(movies),
	}, nil)
}

// GetMovie handles GET /api/v1/movies/:id
func (c *Controller) GetMovie(ctx *gin.Context) {
	movieID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid movie ID", nil, nil)
		return
	}

	movie, err := c.service.GetMovie(ctx.Request.Context(), movieID)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Movie not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get movie", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Movie retrieved successfully", movie, nil)
}
