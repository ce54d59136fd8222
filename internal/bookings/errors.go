package bookings

import "errors"

var (
	ErrBookingNotFound        = errors.New("booking not found")
	ErrNotBookingOwner        = errors.New("booking belongs to another user")
	ErrInvalidStateTransition = errors.New("booking is already settled")
	ErrPendingExpired         = errors.New("booking pending window has expired")
)
