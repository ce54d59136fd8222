package bookings

// Status is the booking lifecycle state. PENDING is the only non-terminal
// state; CONFIRMED and RELEASED are terminal and never transition again.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusReleased  Status = "RELEASED"
)

// ReleaseReason records why a booking ended up RELEASED
type ReleaseReason string

const (
	ReleasePaymentFailed ReleaseReason = "PAYMENT_FAILED"
	ReleaseCancelled     ReleaseReason = "CANCELLED"
	ReleaseExpired       ReleaseReason = "EXPIRED"
)

// IsValid checks if the booking status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusReleased:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status accepts no further transitions
func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusReleased
}

// CanTransitionTo checks whether moving to the target status is legal
func (s Status) CanTransitionTo(target Status) bool {
	if s != StatusPending {
		return false
	}
	return target == StatusConfirmed || target == StatusReleased
}

// IsValid checks if the release reason is valid
func (r ReleaseReason) IsValid() bool {
	switch r {
	case ReleasePaymentFailed, ReleaseCancelled, ReleaseExpired:
		return true
	}
	return false
}

// String returns the string representation of ReleaseReason
func (r ReleaseReason) String() string {
	return string(r)
}

// PaymentStatus is the settlement state of a payment attempt
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// String returns the string representation of PaymentStatus
func (p PaymentStatus) String() string {
	return string(p)
}
