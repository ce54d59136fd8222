package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"cinebook/internal/notifications"
	"cinebook/internal/offers"
	"cinebook/internal/reservations"
	"cinebook/internal/shows"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
)

// Service interface defines the contract for booking operations
type Service interface {
	// CreateBooking commits a hold into a PENDING booking. A bad offer
	// code does not fail the booking; the outcome reports the rejection.
	CreateBooking(ctx context.Context, userID uuid.UUID, req *CreateBookingRequest) (*BookingResponse, error)

	// SettlePayment runs one settlement attempt on a pending booking.
	// Success confirms it; a decline releases it and its seats.
	SettlePayment(ctx context.Context, userID, bookingID uuid.UUID, req *SettleRequest) (*SettleResponse, error)

	// CancelBooking releases a pending booking before settlement
	CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error)

	GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error)

	// ReleaseExpired releases pending bookings whose payment window has
	// passed. Called by the background sweeper.
	ReleaseExpired(ctx context.Context) (int, error)
}

type service struct {
	repo            Repository
	showRepo        shows.Repository
	reservationMgr  reservations.Manager
	offerService    offers.Service
	gateway         SettlementGateway
	producer        notifications.Producer
	pendingLifetime time.Duration
	currency        string
	log             *logger.Logger
}

// NewService creates a new booking service instance
func NewService(
	repo Repository,
	showRepo shows.Repository,
	reservationMgr reservations.Manager,
	offerService offers.Service,
	gateway SettlementGateway,
	producer notifications.Producer,
	pendingLifetime time.Duration,
	currency string,
) Service {
	if producer == nil {
		producer = notifications.NewNoopProducer()
	}
	return &service{
		repo:            repo,
		showRepo:        showRepo,
		reservationMgr:  reservationMgr,
		offerService:    offerService,
		gateway:         gateway,
		producer:        producer,
		pendingLifetime: pendingLifetime,
		currency:        currency,
		log:             logger.GetDefault(),
	}
}

func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req *CreateBookingRequest) (*BookingResponse, error) {
	holdID, err := uuid.Parse(req.HoldID)
	if err != nil {
		return nil, fmt.Errorf("invalid hold ID: %w", err)
	}
	showID, err := uuid.Parse(req.ShowID)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID: %w", err)
	}

	show, err := s.showRepo.GetByID(ctx, showID)
	if err != nil {
		return nil, err
	}

	// Consume the hold. After this point the seats are booked in the
	// ledger and only release paths can free them.
	hold, err := s.reservationMgr.Commit(ctx, holdID, userID)
	if err != nil {
		return nil, err
	}
	if hold.ShowID != showID {
		// The hold was taken on a different show. Undo the commit.
		if relErr := s.reservationMgr.ReleaseBooked(ctx, hold.ShowID, hold.SeatIndices); relErr != nil {
			s.log.ErrorWithContext(ctx, "Failed to release mismatched hold seats", relErr, map[string]interface{}{
				"hold_id": holdID.String(),
			})
		}
		return nil, fmt.Errorf("hold does not belong to show %s", showID)
	}

	originalAmount := int64(len(hold.SeatIndices)) * show.PriceCents

	// Offer failure is never fatal here: the booking proceeds at full
	// price and the outcome tells the caller what happened.
	var offerOutcome *offers.Outcome
	if req.OfferCode != "" {
		offerOutcome, err = s.offerService.Apply(ctx, req.OfferCode, originalAmount, time.Now())
		if err != nil {
			s.log.ErrorWithContext(ctx, "Offer evaluation failed", err, map[string]interface{}{
				"offer_code": req.OfferCode,
			})
			offerOutcome = &offers.Outcome{Code: req.OfferCode, Reason: "offer validation unavailable"}
		}
	}

	var discount int64
	var offerCode *string
	if offerOutcome != nil && offerOutcome.Applied {
		discount = offerOutcome.DiscountCents
		offerCode = &offerOutcome.Code
	}

	bookingRef, err := generateBookingReference()
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking reference: %w", err)
	}

	booking := &Booking{
		BookingRef:          bookingRef,
		UserID:              userID,
		ShowID:              showID,
		SeatIndices:         shows.SeatList(hold.SeatIndices),
		OriginalAmountCents: originalAmount,
		OfferCode:           offerCode,
		DiscountCents:       discount,
		TotalAmountCents:    originalAmount - discount,
		Status:              StatusPending.String(),
		PendingExpiresAt:    time.Now().Add(s.pendingLifetime),
	}

	if err := s.repo.CreateBooking(ctx, booking, nil); err != nil {
		// The ledger seats stay booked; the pending sweeper will not see
		// this booking, so free them here.
		if relErr := s.reservationMgr.ReleaseBooked(ctx, showID, hold.SeatIndices); relErr != nil {
			s.log.ErrorWithContext(ctx, "Failed to release seats after booking insert failure", relErr, map[string]interface{}{
				"show_id": showID.String(),
			})
		}
		return nil, err
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), showID.String(), userID.String())

	resp := booking.ToBookingResponse()
	if offerOutcome != nil {
		resp.Offer = &OfferOutcomeInfo{
			Applied:       offerOutcome.Applied,
			Code:          offerOutcome.Code,
			DiscountCents: offerOutcome.DiscountCents,
			Reason:        offerOutcome.Reason,
		}
	}
	return &resp, nil
}

func (s *service) SettlePayment(ctx context.Context, userID, bookingID uuid.UUID, req *SettleRequest) (*SettleResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	if Status(booking.Status).IsTerminal() {
		return nil, ErrInvalidStateTransition
	}

	now := time.Now()
	if booking.PendingExpired(now) {
		// Lapsed while the user dawdled. Release instead of settling.
		if err := s.releaseBooking(ctx, booking, ReleaseExpired, nil); err != nil && !errors.Is(err, ErrInvalidStateTransition) {
			return nil, err
		}
		return nil, ErrPendingExpired
	}

	// Re-validate the locked-in offer. If the code lapsed between
	// booking and settlement the discount is honored anyway; the price
	// the user saw is the price they pay.
	if booking.OfferCode != nil {
		outcome, err := s.offerService.Apply(ctx, *booking.OfferCode, booking.OriginalAmountCents, now)
		if err == nil && !outcome.Applied {
			s.log.InfoWithContext(ctx, "Offer no longer valid at settlement, keeping locked discount", map[string]interface{}{
				"booking_id": bookingID.String(),
				"offer_code": *booking.OfferCode,
				"reason":     outcome.Reason,
			})
		}
	}

	payment := &Payment{
		BookingID:     booking.ID,
		AmountCents:   booking.TotalAmountCents,
		Currency:      s.currency,
		PaymentMethod: req.PaymentMethod,
		Status:        PaymentPending.String(),
	}

	result, err := s.gateway.Settle(ctx, booking.BookingRef, booking.TotalAmountCents, s.currency, req.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("settlement gateway unavailable: %w", err)
	}

	if !result.Approved {
		payment.MarkFailed(result.DeclineReason)
		if err := s.releaseBooking(ctx, booking, ReleasePaymentFailed, payment); err != nil {
			return nil, err
		}

		return &SettleResponse{
			BookingID:        booking.ID.String(),
			BookingRef:       booking.BookingRef,
			Status:           StatusReleased.String(),
			TotalAmountCents: booking.TotalAmountCents,
			Payment:          payment.ToPaymentInfo(),
		}, nil
	}

	payment.MarkCompleted(result.TransactionID)
	if err := s.repo.ConfirmBooking(ctx, booking.ID, payment); err != nil {
		return nil, err
	}

	// Project the seats into the durable seat map. The CONFIRMED row
	// already carries the authoritative claim and ledger hydration
	// unions it in, so a failed projection loses nothing; it catches
	// up on the next confirmation of the show.
	if err := s.reservationMgr.ConfirmBooked(ctx, booking.ShowID, booking.SeatIndices); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to project booked seats into seat map", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
		})
	}

	s.log.LogBookingSettled(ctx, booking.ID.String(), StatusConfirmed.String(), booking.TotalAmountCents)
	s.publishEvent(ctx, notifications.EventBookingConfirmed, booking, "")

	return &SettleResponse{
		BookingID:        booking.ID.String(),
		BookingRef:       booking.BookingRef,
		Status:           StatusConfirmed.String(),
		TotalAmountCents: booking.TotalAmountCents,
		Payment:          payment.ToPaymentInfo(),
	}, nil
}

func (s *service) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	if Status(booking.Status).IsTerminal() {
		return nil, ErrInvalidStateTransition
	}

	if err := s.releaseBooking(ctx, booking, ReleaseCancelled, nil); err != nil {
		return nil, err
	}

	resp := booking.ToBookingResponse()
	return &resp, nil
}

func (s *service) GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}

	resp := booking.ToBookingResponse()
	return &resp, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error) {
	bookings, err := s.repo.GetUserBookings(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToBookingResponse())
	}
	return responses, nil
}

func (s *service) ReleaseExpired(ctx context.Context) (int, error) {
	expired, err := s.repo.ListExpiredPending(ctx, time.Now(), 100)
	if err != nil {
		return 0, err
	}

	released := 0
	for i := range expired {
		booking := &expired[i]
		if err := s.releaseBooking(ctx, booking, ReleaseExpired, nil); err != nil {
			if errors.Is(err, ErrInvalidStateTransition) {
				// Settled concurrently. Fine.
				continue
			}
			s.log.ErrorWithContext(ctx, "Failed to release expired booking", err, map[string]interface{}{
				"booking_id": booking.ID.String(),
			})
			continue
		}
		released++
	}
	return released, nil
}

// releaseBooking moves the booking to RELEASED and frees its seats. The
// status update is the arbiter: only its winner touches the ledger, so
// a concurrent settle and sweep cannot both free or sell the seats.
func (s *service) releaseBooking(ctx context.Context, booking *Booking, reason ReleaseReason, payment *Payment) error {
	if err := s.repo.ReleaseBooking(ctx, booking.ID, reason, payment); err != nil {
		return err
	}

	if err := s.reservationMgr.ReleaseBooked(ctx, booking.ShowID, booking.SeatIndices); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to free released seats in ledger", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
		})
	}

	booking.Status = StatusReleased.String()
	reasonStr := reason.String()
	booking.ReleaseReason = &reasonStr

	s.log.LogBookingReleased(ctx, booking.ID.String(), reason.String())
	s.publishEvent(ctx, notifications.EventBookingReleased, booking, reason.String())
	return nil
}

// publishEvent emits a booking lifecycle event. Best-effort: a broker
// outage never fails the booking operation.
func (s *service) publishEvent(ctx context.Context, eventType notifications.EventType, booking *Booking, releaseReason string) {
	event := notifications.NewBookingEvent(
		eventType,
		booking.ID,
		booking.BookingRef,
		booking.UserID,
		booking.ShowID,
		booking.SeatIndices,
		booking.TotalAmountCents,
	)
	event.ReleaseReason = releaseReason

	if err := s.producer.PublishBookingEvent(ctx, event); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to publish booking event", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
			"event_type": string(eventType),
		})
	}
}

// generateBookingReference generates a unique booking reference
func generateBookingReference() (string, error) {
	timestamp := time.Now().Format("20060102")

	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)

	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}

	return fmt.Sprintf("CNB-%s-%s", timestamp, string(randomPart)), nil
}
