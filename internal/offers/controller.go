package offers

import (
	"errors"
	"net/http"
	"time"

	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListOffers handles GET /api/v1/offers
func (c *Controller) ListOffers(ctx *gin.Context) {
	offers, err := c.service.ListActive(ctx.Request.Context(), time.Now())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list offers", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Active offers retrieved", offers, nil)
}

// ValidateOffer handles POST /api/v1/offers/validate
func (c *Controller) ValidateOffer(ctx *gin.Context) {
	var req ValidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := c.service.Validate(ctx.Request.Context(), req.Code, req.AmountCents, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, ErrOfferNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Offer not found", nil, nil)
		case errors.Is(err, ErrOfferExpired):
			response.RespondJSON(ctx, "error", http.StatusGone, "Offer has expired", nil, nil)
		case errors.Is(err, ErrOfferNotYetValid):
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Offer is not yet valid", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to validate offer", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Offer is valid", result, nil)
}

// CreateOffer handles POST /api/v1/admin/offers
func (c *Controller) CreateOffer(ctx *gin.Context) {
	var req CreateOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	offer, err := c.service.Create(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrOfferExists) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Offer code already exists", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to create offer", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Offer created successfully", offer, nil)
}

// DeleteOffer handles DELETE /api/v1/admin/offers/:code
func (c *Controller) DeleteOffer(ctx *gin.Context) {
	code := ctx.Param("code")

	if err := c.service.Delete(ctx.Request.Context(), code); err != nil {
		if errors.Is(err, ErrOfferNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Offer not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete offer", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Offer deleted successfully", nil, nil)
}
