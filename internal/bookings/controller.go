package bookings

import (
	"errors"
	"net/http"

	"cinebook/internal/reservations"
	"cinebook/internal/shared/utils/response"
	"cinebook/internal/shows"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.respondCreateError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

// SettlePayment handles POST /api/v1/bookings/:id/payment
func (c *Controller) SettlePayment(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	var req SettleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := c.service.SettlePayment(ctx.Request.Context(), userID, bookingID, &req)
	if err != nil {
		c.respondBookingError(ctx, err)
		return
	}

	if result.Status == StatusReleased.String() {
		// Payment declined: the booking is gone and the seats are free
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Payment declined, booking released", result, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking confirmed", result, nil)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.CancelBooking(ctx.Request.Context(), userID, bookingID)
	if err != nil {
		c.respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled", booking, nil)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), userID, bookingID)
	if err != nil {
		c.respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved", booking, nil)
}

// GetUserBookings handles GET /api/v1/users/bookings
func (c *Controller) GetUserBookings(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	bookings, err := c.service.GetUserBookings(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved", bookings, nil)
}

func (c *Controller) respondCreateError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, reservations.ErrHoldNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Hold not found", nil, nil)
	case errors.Is(err, reservations.ErrHoldExpired):
		response.RespondJSON(ctx, "error", http.StatusGone, "Hold has expired", nil, nil)
	case errors.Is(err, reservations.ErrNotHoldOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Hold belongs to another user", nil, nil)
	case errors.Is(err, shows.ErrShowNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Show not found", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create booking", nil, err.Error())
	}
}

func (c *Controller) respondBookingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
	case errors.Is(err, ErrNotBookingOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Booking belongs to another user", nil, nil)
	case errors.Is(err, ErrInvalidStateTransition):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Booking is already settled", nil, nil)
	case errors.Is(err, ErrPendingExpired):
		response.RespondJSON(ctx, "error", http.StatusGone, "Booking payment window has expired", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Booking operation failed", nil, err.Error())
	}
}

// userIDFromContext extracts the authenticated user from the JWT
// claims placed in the gin context by the auth middleware.
func userIDFromContext(ctx *gin.Context) (uuid.UUID, bool) {
	userIDInterface, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}

	userIDStr, ok := userIDInterface.(string)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, nil)
		return uuid.Nil, false
	}

	return userID, true
}
