package analytics

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

// GetPlatformStats handles GET /api/v1/admin/stats
func (c *Controller) GetPlatformStats(ctx *gin.Context) {
	stats, err := c.service.GetPlatformStats(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to build platform stats", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Platform stats retrieved", stats, nil)
}
