package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies what happened to a booking
type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingReleased  EventType = "booking.released"
)

// BookingEvent is the message published to Kafka when a booking reaches
// a terminal state. Downstream consumers (ticket delivery, analytics
// pipelines) key off Type and ReleaseReason.
type BookingEvent struct {
	ID               uuid.UUID `json:"id"`
	Type             EventType `json:"type"`
	BookingID        uuid.UUID `json:"booking_id"`
	BookingRef       string    `json:"booking_ref"`
	UserID           uuid.UUID `json:"user_id"`
	ShowID           uuid.UUID `json:"show_id"`
	SeatIndices      []int     `json:"seat_indices"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	ReleaseReason    string    `json:"release_reason,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// NewBookingEvent creates a booking event with a fresh ID and timestamp
func NewBookingEvent(eventType EventType, bookingID uuid.UUID, bookingRef string, userID, showID uuid.UUID, seatIndices []int, totalAmountCents int64) *BookingEvent {
	return &BookingEvent{
		ID:               uuid.New(),
		Type:             eventType,
		BookingID:        bookingID,
		BookingRef:       bookingRef,
		UserID:           userID,
		ShowID:           showID,
		SeatIndices:      seatIndices,
		TotalAmountCents: totalAmountCents,
		OccurredAt:       time.Now(),
	}
}

// ToJSON serializes the event for the wire
func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey routes all events of one booking to one partition so
// consumers see them in order
func (e *BookingEvent) GetPartitionKey() string {
	return e.BookingID.String()
}
