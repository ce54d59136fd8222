package shows

import (
	"net/http"

	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListShows handles GET /api/v1/shows?movie_id=&city=&date=
func (c *Controller) ListShows(ctx *gin.Context) {
	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	grouped, err := c.service.ListByTheatre(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list shows", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Shows retrieved successfully", gin.H{
		"theatres": grouped,
		"count":    len(grouped),
	}, nil)
}
