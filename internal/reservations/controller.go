package reservations

import (
	"errors"
	"net/http"

	"cinebook/internal/shared/utils/response"
	"cinebook/internal/shows"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	manager Manager
}

func NewController(manager Manager) *Controller {
	return &Controller{manager: manager}
}

// HoldSeats handles POST /api/v1/shows/:id/hold
func (c *Controller) HoldSeats(ctx *gin.Context) {
	showID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid show ID", nil, nil)
		return
	}

	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	var req HoldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	hold, err := c.manager.Hold(ctx.Request.Context(), showID, req.SeatIndices, userID)
	if err != nil {
		c.respondHoldError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Seats held successfully", HoldResponse{
		HoldID:      hold.ID.String(),
		ShowID:      hold.ShowID.String(),
		SeatIndices: hold.SeatIndices,
		ExpiresAt:   hold.ExpiresAt,
	}, nil)
}

// ReleaseHold handles DELETE /api/v1/holds/:id
func (c *Controller) ReleaseHold(ctx *gin.Context) {
	holdID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid hold ID", nil, nil)
		return
	}

	// Idempotent: releasing an unknown or already-expired hold succeeds
	if err := c.manager.Release(ctx.Request.Context(), holdID); err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to release hold", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hold released", nil, nil)
}

// SeatSnapshot handles GET /api/v1/shows/:id/seats
func (c *Controller) SeatSnapshot(ctx *gin.Context) {
	showID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid show ID", nil, nil)
		return
	}

	snapshot, err := c.manager.Snapshot(ctx.Request.Context(), showID)
	if err != nil {
		if errors.Is(err, shows.ErrShowNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Show not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get seat snapshot", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat snapshot retrieved", snapshot, nil)
}

func (c *Controller) respondHoldError(ctx *gin.Context, err error) {
	var seatIndexErr *SeatIndexError
	var unavailableErr *SeatsUnavailableError

	switch {
	case errors.Is(err, ErrEmptySelection):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Seat selection is empty", nil, nil)
	case errors.As(err, &seatIndexErr):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat selection", nil, seatIndexErr.Error())
	case errors.As(err, &unavailableErr):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Some seats are no longer available", nil, gin.H{
			"unavailable_seats": unavailableErr.Indices,
		})
	case errors.Is(err, shows.ErrShowNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Show not found", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to hold seats", nil, err.Error())
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
