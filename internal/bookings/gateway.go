package bookings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SettlementResult is the gateway's verdict on one settlement attempt.
// A decline is a normal result, not an error; errors mean the gateway
// itself could not be reached.
type SettlementResult struct {
	Approved      bool
	TransactionID string
	DeclineReason string
	ProcessedAt   time.Time
}

// SettlementGateway charges a payment method for a booking amount
type SettlementGateway interface {
	Settle(ctx context.Context, bookingRef string, amountCents int64, currency, method string) (*SettlementResult, error)
}

// simulatedGateway approves every settlement except those using the
// configured decline method. It stands in for a real payment provider
// so the booking flow can be exercised end to end.
type simulatedGateway struct {
	declineMethod string
}

func NewSimulatedGateway(declineMethod string) SettlementGateway {
	return &simulatedGateway{declineMethod: declineMethod}
}

func (g *simulatedGateway) Settle(ctx context.Context, bookingRef string, amountCents int64, currency, method string) (*SettlementResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	now := time.Now()

	if g.declineMethod != "" && strings.EqualFold(method, g.declineMethod) {
		return &SettlementResult{
			Approved:      false,
			DeclineReason: fmt.Sprintf("payment method %q was declined", method),
			ProcessedAt:   now,
		}, nil
	}

	return &SettlementResult{
		Approved:      true,
		TransactionID: "TXN-" + strings.ToUpper(uuid.New().String()[:12]),
		ProcessedAt:   now,
	}, nil
}
