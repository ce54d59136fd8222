package notifications

import (
	"context"
	"fmt"
	"log"
)

// Notifier delivers a user-facing message for a booking event.
// Identity lives outside this service, so delivery targets the user ID
// and the channel implementation resolves the actual address.
type Notifier interface {
	Notify(ctx context.Context, event *BookingEvent) error
}

// LogNotifier writes notifications to the process log. Used in
// environments without a delivery channel configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, event *BookingEvent) error {
	subject, body, err := renderMessage(event)
	if err != nil {
		return err
	}

	log.Printf("🔔 [user %s] %s", event.UserID, subject)
	log.Printf("🔔 %s", body)
	return nil
}

func renderMessage(event *BookingEvent) (subject, body string, err error) {
	switch event.Type {
	case EventBookingConfirmed:
		subject = fmt.Sprintf("Booking %s confirmed", event.BookingRef)
		body = fmt.Sprintf(
			"Your booking %s is confirmed. %d seat(s) for show %s, total %s.",
			event.BookingRef,
			len(event.SeatIndices),
			event.ShowID,
			formatAmount(event.TotalAmountCents),
		)
		return subject, body, nil

	case EventBookingReleased:
		reason := "the booking was cancelled"
		switch event.ReleaseReason {
		case "PAYMENT_FAILED":
			reason = "the payment was declined"
		case "EXPIRED":
			reason = "the payment window expired"
		}
		subject = fmt.Sprintf("Booking %s released", event.BookingRef)
		body = fmt.Sprintf(
			"Your booking %s was released because %s. The seats are available again.",
			event.BookingRef,
			reason,
		)
		return subject, body, nil

	default:
		return "", "", fmt.Errorf("unknown event type %q", event.Type)
	}
}

func formatAmount(cents int64) string {
	return fmt.Sprintf("INR %d.%02d", cents/100, cents%100)
}
