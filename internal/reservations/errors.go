package reservations

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySelection is returned when a hold is requested with no seats.
	ErrEmptySelection = errors.New("seat selection is empty")

	// ErrHoldNotFound is returned for an unknown or already-consumed hold.
	ErrHoldNotFound = errors.New("hold not found")

	// ErrHoldExpired is returned when a hold is past its expiry. The hold
	// is reaped in the same step, so a retry sees ErrHoldNotFound.
	ErrHoldExpired = errors.New("hold has expired")

	// ErrNotHoldOwner is returned when a user tries to commit a hold
	// created by someone else.
	ErrNotHoldOwner = errors.New("hold belongs to another user")
)

// SeatIndexError reports a structurally invalid seat index. It is
// detected before any shared state is touched.
type SeatIndexError struct {
	Index  int
	Reason string // "out of range" or "duplicate"
}

func (e *SeatIndexError) Error() string {
	return fmt.Sprintf("invalid seat index %d: %s", e.Index, e.Reason)
}

// SeatsUnavailableError reports which requested seats are already held
// or booked. Holds are all-or-nothing: when this is returned, no seat
// from the request was taken.
type SeatsUnavailableError struct {
	Indices []int
}

func (e *SeatsUnavailableError) Error() string {
	return fmt.Sprintf("seats unavailable: %v", e.Indices)
}
