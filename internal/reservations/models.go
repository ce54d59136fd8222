package reservations

import (
	"time"

	"github.com/google/uuid"
)

// SeatState is the availability state of a single seat in the ledger
type SeatState string

const (
	SeatFree   SeatState = "FREE"
	SeatHeld   SeatState = "HELD"
	SeatBooked SeatState = "BOOKED"
)

// Hold is a short-lived, all-or-nothing claim on a set of seats. It is
// volatile: kept in the in-memory ledger and mirrored to Redis with a
// TTL. Losing holds on restart is accepted.
type Hold struct {
	ID          uuid.UUID `json:"id"`
	ShowID      uuid.UUID `json:"show_id"`
	UserID      uuid.UUID `json:"user_id"`
	SeatIndices []int     `json:"seat_indices"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the hold is past its expiry at the given time
func (h *Hold) Expired(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}

// Snapshot is a point-in-time view of a show's seat availability.
// Free + Held + Booked always equals the seat count.
type Snapshot struct {
	ShowID string      `json:"show_id"`
	Seats  []SeatState `json:"seats"`
	Free   int         `json:"free"`
	Held   int         `json:"held"`
	Booked int         `json:"booked"`
}

// HoldRequest is the body of POST /shows/:id/hold
type HoldRequest struct {
	SeatIndices []int `json:"seat_indices" binding:"required"`
}

// HoldResponse is returned on a successful hold
type HoldResponse struct {
	HoldID      string    `json:"hold_id"`
	ShowID      string    `json:"show_id"`
	SeatIndices []int     `json:"seat_indices"`
	ExpiresAt   time.Time `json:"expires_at"`
}
