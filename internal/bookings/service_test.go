package bookings

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"cinebook/internal/offers"
	"cinebook/internal/reservations"
	"cinebook/internal/shows"

	"github.com/google/uuid"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*Booking
	payments []*Payment
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func (f *fakeBookingRepo) CreateBooking(ctx context.Context, booking *Booking, payment *Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.CreatedAt = time.Now()
	clone := *booking
	f.bookings[booking.ID] = &clone
	return nil
}

func (f *fakeBookingRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	clone := *booking
	return &clone, nil
}

func (f *fakeBookingRepo) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			out = append(out, *booking)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ConfirmBooking(ctx context.Context, id uuid.UUID, payment *Payment) error {
	return f.transition(id, StatusConfirmed, "", payment)
}

func (f *fakeBookingRepo) ReleaseBooking(ctx context.Context, id uuid.UUID, reason ReleaseReason, payment *Payment) error {
	return f.transition(id, StatusReleased, reason, payment)
}

func (f *fakeBookingRepo) transition(id uuid.UUID, target Status, reason ReleaseReason, payment *Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	if booking.Status != StatusPending.String() {
		return ErrInvalidStateTransition
	}
	booking.Status = target.String()
	if target == StatusReleased {
		reasonStr := reason.String()
		booking.ReleaseReason = &reasonStr
	}
	if payment != nil {
		f.payments = append(f.payments, payment)
	}
	return nil
}

func (f *fakeBookingRepo) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Booking
	for _, booking := range f.bookings {
		if booking.Status == StatusPending.String() && now.After(booking.PendingExpiresAt) {
			out = append(out, *booking)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ClaimedSeatsByShow(ctx context.Context, showID uuid.UUID) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var seats []int
	for _, booking := range f.bookings {
		if booking.ShowID == showID && booking.Status != StatusReleased.String() {
			seats = append(seats, booking.SeatIndices...)
		}
	}
	return seats, nil
}

type fakeShowRepo struct {
	show *shows.Show

	// When set, MarkSeatsBooked fails and the seat map stays stale.
	failSeatMapWrites bool
}

func (f *fakeShowRepo) GetByID(ctx context.Context, id uuid.UUID) (*shows.Show, error) {
	if f.show == nil || f.show.ID != id {
		return nil, shows.ErrShowNotFound
	}
	return f.show, nil
}

func (f *fakeShowRepo) List(ctx context.Context, movieID uuid.UUID, city, date string) ([]shows.Show, error) {
	return nil, nil
}

func (f *fakeShowRepo) SeatMap(ctx context.Context, showID uuid.UUID) (shows.SeatMap, error) {
	if f.show == nil || f.show.ID != showID {
		return nil, shows.ErrShowNotFound
	}
	return f.show.SeatMap, nil
}

func (f *fakeShowRepo) MarkSeatsBooked(ctx context.Context, showID uuid.UUID, seats []int) error {
	if f.failSeatMapWrites {
		return errors.New("seat map write failed")
	}
	for _, idx := range seats {
		f.show.SeatMap[idx] = true
	}
	return nil
}

func testFixture(t *testing.T, declineMethod string) (Service, *fakeBookingRepo, reservations.Manager, uuid.UUID) {
	t.Helper()

	showID := uuid.New()
	showRepo := &fakeShowRepo{show: &shows.Show{
		ID:         showID,
		PriceCents: 25000,
		SeatCount:  20,
		SeatMap:    make(shows.SeatMap, 20),
	}}

	repo := newFakeBookingRepo()
	mgr := reservations.NewManager(showRepo, repo, nil, time.Minute)

	offerRepo := newFakeOfferRepo(
		&offers.Offer{
			Code:             "SAVE20",
			DiscountPercent:  20,
			MaxDiscountCents: 5000,
			ValidFrom:        time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
			ValidTo:          time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		},
	)

	svc := NewService(
		repo,
		showRepo,
		mgr,
		offers.NewService(offerRepo, nil),
		NewSimulatedGateway(declineMethod),
		nil,
		15*time.Minute,
		"INR",
	)

	return svc, repo, mgr, showID
}

type fakeOfferRepo struct {
	offers map[string]*offers.Offer
}

func newFakeOfferRepo(seed ...*offers.Offer) *fakeOfferRepo {
	repo := &fakeOfferRepo{offers: make(map[string]*offers.Offer)}
	for _, offer := range seed {
		repo.offers[offer.Code] = offer
	}
	return repo
}

func (f *fakeOfferRepo) Create(ctx context.Context, offer *offers.Offer) error {
	f.offers[offer.Code] = offer
	return nil
}

func (f *fakeOfferRepo) GetByCode(ctx context.Context, code string) (*offers.Offer, error) {
	offer, ok := f.offers[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, offers.ErrOfferNotFound
	}
	return offer, nil
}

func (f *fakeOfferRepo) ListActive(ctx context.Context, day string) ([]offers.Offer, error) {
	return nil, nil
}

func (f *fakeOfferRepo) Delete(ctx context.Context, code string) error {
	delete(f.offers, code)
	return nil
}

func holdSeats(t *testing.T, mgr reservations.Manager, showID, userID uuid.UUID, seats []int) *reservations.Hold {
	t.Helper()
	hold, err := mgr.Hold(context.Background(), showID, seats, userID)
	if err != nil {
		t.Fatalf("hold failed: %v", err)
	}
	return hold
}

func TestCreateBookingWithOffer(t *testing.T) {
	svc, _, mgr, showID := testFixture(t, "")
	ctx := context.Background()
	userID := uuid.New()

	hold := holdSeats(t, mgr, showID, userID, []int{2, 3})

	booking, err := svc.CreateBooking(ctx, userID, &CreateBookingRequest{
		HoldID:    hold.ID.String(),
		ShowID:    showID.String(),
		OfferCode: "SAVE20",
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	// 2 seats at 25000 = 50000; 20% = 10000, capped at 5000
	if booking.OriginalAmountCents != 50000 {
		t.Errorf("original = %d, want 50000", booking.OriginalAmountCents)
	}
	if booking.DiscountCents != 5000 {
		t.Errorf("discount = %d, want 5000", booking.DiscountCents)
	}
	if booking.TotalAmountCents != 45000 {
		t.Errorf("total = %d, want 45000", booking.TotalAmountCents)
	}
	if booking.Status != StatusPending.String() {
		t.Errorf("status = %s, want PENDING", booking.Status)
	}
	if booking.Offer == nil || !booking.Offer.Applied {
		t.Errorf("offer outcome not applied: %+v", booking.Offer)
	}
	if len(booking.SeatIndices) != 2 {
		t.Errorf("seat indices = %v, want 2 seats", booking.SeatIndices)
	}
	if !strings.HasPrefix(booking.BookingRef, "CNB-") {
		t.Errorf("booking ref = %q, want CNB- prefix", booking.BookingRef)
	}
}

func TestCreateBookingBadOfferNonFatal(t *testing.T) {
	svc, _, mgr, showID := testFixture(t, "")
	ctx := context.Background()
	userID := uuid.New()

	hold := holdSeats(t, mgr, showID, userID, []int{5})

	booking, err := svc.CreateBooking(ctx, userID, &CreateBookingRequest{
		HoldID:    hold.ID.String(),
		ShowID:    showID.String(),
		OfferCode: "BOGUS",
	})
	if err != nil {
		t.Fatalf("CreateBooking() with bad offer error = %v, want success", err)
	}

	if booking.DiscountCents != 0 {
		t.Errorf("discount = %d, want 0", booking.DiscountCents)
	}
	if booking.TotalAmountCents != booking.OriginalAmountCents {
		t.Errorf("total %d != original %d with rejected offer", booking.TotalAmountCents, booking.OriginalAmountCents)
	}
	if booking.Offer == nil || booking.Offer.Applied || booking.Offer.Reason == "" {
		t.Errorf("offer outcome = %+v, want rejection with reason", booking.Offer)
	}
}

func TestCreateBookingConsumesHold(t *testing.T) {
	svc, _, mgr, showID := testFixture(t, "")
	ctx := context.Background()
	userID := uuid.New()

	hold := holdSeats(t, mgr, showID, userID, []int{0})

	req := &CreateBookingRequest{HoldID: hold.ID.String(), ShowID: showID.String()}
	if _, err := svc.CreateBooking(ctx, userID, req); err != nil {
		t.Fatalf("first CreateBooking() error = %v", err)
	}
	if _, err := svc.CreateBooking(ctx, userID, req); !errors.Is(err, reservations.ErrHoldNotFound) {
		t.Errorf("second CreateBooking() = %v, want ErrHoldNotFound", err)
	}
}

func TestSettlementSuccessConfirms(t *testing.T) {
	svc, repo, mgr, showID := testFixture(t, "")
	ctx := context.Background()
	userID := uuid.New()

	hold := holdSeats(t, mgr, showID, userID, []int{1, 2})
	booking, err := svc.CreateBooking(ctx, userID, &CreateBookingRequest{
		HoldID: hold.ID.String(), ShowID: showID.String(),
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	bookingID := uuid.MustParse(booking.BookingID)

	result, err := svc.SettlePayment(ctx, userID, bookingID, &SettleRequest{PaymentMethod: "upi"})
	if err != nil {
		t.Fatalf("SettlePayment() error = %v", err)
	}

	if result.Status != StatusConfirmed.String() {
		t.Errorf("status = %s, want CONFIRMED", result.Status)
	}
	if result.Payment.Status != PaymentCompleted.String() {
		t.Errorf("payment status = %s, want COMPLETED", result.Payment.Status)
	}
	if result.Payment.TransactionID == "" {
		t.Errorf("completed payment has no transaction ID")
	}

	stored, _ := repo.GetBookingByID(ctx, bookingID)
	if stored.Status != StatusConfirmed.String() {
		t.Errorf("stored status = %s, want CONFIRMED", stored.Status)
	}

	// Confirmed seats persist into the durable seat map
	snapshot, err := mgr.Snapshot(ctx, showID)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snapshot.Booked != 2 {
		t.Errorf("booked = %d, want 2", snapshot.Booked)
	}
}

func TestSettlementSurvivesLostSeatMapWrite(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	showID := uuid.New()

	showRepo := &fakeShowRepo{
		show: &shows.Show{
			ID:         showID,
			PriceCents: 25000,
			SeatCount:  20,
			SeatMap:    make(shows.SeatMap, 20),
		},
		failSeatMapWrites: true,
	}
	repo := newFakeBookingRepo()
	mgr := reservations.NewManager(showRepo, repo, nil, time.Minute)

	svc := NewService(
		repo,
		showRepo,
		mgr,
		offers.NewService(newFakeOfferRepo(), nil),
		NewSimulatedGateway("decline"),
		nil,
		15*time.Minute,
		"INR",
	)

	hold := holdSeats(t, mgr, showID, userID, []int{6, 7})
	booking, err := svc.CreateBooking(ctx, userID, &CreateBookingRequest{
		HoldID: hold.ID.String(), ShowID: showID.String(),
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	bookingID := uuid.MustParse(booking.BookingID)

	// The seat map write fails, but the settlement must still confirm:
	// the booking row carries the authoritative claim.
	result, err := svc.SettlePayment(ctx, userID, bookingID, &SettleRequest{PaymentMethod: "upi"})
	if err != nil {
		t.Fatalf("SettlePayment() error = %v", err)
	}
	if result.Status != StatusConfirmed.String() {
		t.Fatalf("status = %s, want CONFIRMED", result.Status)
	}
	if showRepo.show.SeatMap.BookedCount() != 0 {
		t.Fatalf("seat map write unexpectedly landed")
	}

	// A manager hydrated after a restart sees the stale seat map but
	// must still refuse the confirmed seats.
	restarted := reservations.NewManager(showRepo, repo, nil, time.Minute)
	_, err = restarted.Hold(ctx, showID, []int{6, 7}, uuid.New())
	var unavailable *reservations.SeatsUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("hold on confirmed seats after restart = %v, want SeatsUnavailableError", err)
	}
}

func TestSettlementDeclineReleases(t *testing.T) {
	svc, repo, mgr, showID := testFixture(t, "decline")
	ctx := context.Background()
	userID := uuid.New()

	hold := holdSeats(t, mgr, showID, userID, []int{4, 5})
	booking, err := svc.CreateBooking(ctx, userID, &CreateBookingRequest{
		HoldID: hold.ID.String(), ShowID: showID.String(),
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	bookingID := uuid.MustParse(booking.BookingID)

	result, err := svc.SettlePayment(ctx, userID, bookingID, &SettleRequest{PaymentMethod: "decline"})
	if err != nil {
		t.Fatalf("SettlePayment() error = %v", err)
	}

	if result.Status != StatusReleased.String() {
		t.Errorf("status = %s, want RELEASED", result.Status)
	}
	if result.Payment.Status != PaymentFailed.String() {
		t.Errorf("payment status = %s, want FAILED", result.Payment.Status)
	}

	stored, _ := repo.GetBookingByID(ctx, bookingID)
	if stored.ReleaseReason == nil || *stored.ReleaseReason != ReleasePaymentFailed.String() {
		t.Errorf("release reason = %v, want PAYMENT_FAILED", stored.ReleaseReason)
	}

	// The seats must be back on sale
	if _, err := mgr.Hold(ctx, showID, []int{4, 5}, uuid.New()); err != nil {
		t.Errorf("hold on released seats = %v, want nil", err)
	}
}

func TestSettlementTerminalIdempotence(t *testing.T) {
	svc, _, mgr, showID := testFixture(t, "")
	ctx := context.Background()
	userID := uuid.New()

	hold := holdSeats(t, mgr, showID, userID, []int{7})
	booking, err := svc.CreateBooking(ctx, userID, &CreateBookingRequest{
		HoldID: hold.ID.String(), ShowID: showID.String(),
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	bookingID := uuid.MustParse(booking.BookingID)

	if _, err := svc.SettlePayment(ctx, userID, bookingID, &SettleRequest{PaymentMethod: "card"}); err != nil {
		t.Fatalf("first settle error = %v", err)
	}

	if _, err := svc.SettlePayment(ctx, userID, bookingID, &SettleRequest{PaymentMethod: "card"}); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("second settle = %v, want ErrInvalidStateTransition", err)
	}
	if _, err := svc.CancelBooking(ctx, userID, bookingID); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("cancel after confirm = %v, want ErrInvalidStateTransition", err)
	}
}

func TestSettlementOwnershipGuard(t *testing.T) {
	svc, _, mgr, showID := testFixture(t, "")
	ctx := context.Background()
	userID := uuid.New()

	hold := holdSeats(t, mgr, showID, userID, []int{9})
	booking, err := svc.CreateBooking(ctx, userID, &CreateBookingRequest{
		HoldID: hold.ID.String(), ShowID: showID.String(),
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	bookingID := uuid.MustParse(booking.BookingID)

	if _, err := svc.SettlePayment(ctx, uuid.New(), bookingID, &SettleRequest{PaymentMethod: "card"}); !errors.Is(err, ErrNotBookingOwner) {
		t.Errorf("settle by stranger = %v, want ErrNotBookingOwner", err)
	}
}

func TestCancelReleasesSeats(t *testing.T) {
	svc, repo, mgr, showID := testFixture(t, "")
	ctx := context.Background()
	userID := uuid.New()

	hold := holdSeats(t, mgr, showID, userID, []int{11, 12})
	booking, err := svc.CreateBooking(ctx, userID, &CreateBookingRequest{
		HoldID: hold.ID.String(), ShowID: showID.String(),
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	bookingID := uuid.MustParse(booking.BookingID)

	cancelled, err := svc.CancelBooking(ctx, userID, bookingID)
	if err != nil {
		t.Fatalf("CancelBooking() error = %v", err)
	}
	if cancelled.Status != StatusReleased.String() {
		t.Errorf("status = %s, want RELEASED", cancelled.Status)
	}

	stored, _ := repo.GetBookingByID(ctx, bookingID)
	if stored.ReleaseReason == nil || *stored.ReleaseReason != ReleaseCancelled.String() {
		t.Errorf("release reason = %v, want CANCELLED", stored.ReleaseReason)
	}

	if _, err := mgr.Hold(ctx, showID, []int{11, 12}, uuid.New()); err != nil {
		t.Errorf("hold on cancelled seats = %v, want nil", err)
	}
}

func TestReleaseExpiredSweep(t *testing.T) {
	svc, repo, mgr, showID := testFixture(t, "")
	ctx := context.Background()
	userID := uuid.New()

	hold := holdSeats(t, mgr, showID, userID, []int{15})
	booking, err := svc.CreateBooking(ctx, userID, &CreateBookingRequest{
		HoldID: hold.ID.String(), ShowID: showID.String(),
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	bookingID := uuid.MustParse(booking.BookingID)

	// Force the pending window into the past
	repo.mu.Lock()
	repo.bookings[bookingID].PendingExpiresAt = time.Now().Add(-time.Minute)
	repo.mu.Unlock()

	released, err := svc.ReleaseExpired(ctx)
	if err != nil {
		t.Fatalf("ReleaseExpired() error = %v", err)
	}
	if released != 1 {
		t.Errorf("released = %d, want 1", released)
	}

	stored, _ := repo.GetBookingByID(ctx, bookingID)
	if stored.Status != StatusReleased.String() {
		t.Errorf("status = %s, want RELEASED", stored.Status)
	}
	if stored.ReleaseReason == nil || *stored.ReleaseReason != ReleaseExpired.String() {
		t.Errorf("release reason = %v, want EXPIRED", stored.ReleaseReason)
	}

	if _, err := mgr.Hold(ctx, showID, []int{15}, uuid.New()); err != nil {
		t.Errorf("hold on swept seats = %v, want nil", err)
	}
}

func TestSettleExpiredPendingRejected(t *testing.T) {
	svc, repo, mgr, showID := testFixture(t, "")
	ctx := context.Background()
	userID := uuid.New()

	hold := holdSeats(t, mgr, showID, userID, []int{17})
	booking, err := svc.CreateBooking(ctx, userID, &CreateBookingRequest{
		HoldID: hold.ID.String(), ShowID: showID.String(),
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	bookingID := uuid.MustParse(booking.BookingID)

	repo.mu.Lock()
	repo.bookings[bookingID].PendingExpiresAt = time.Now().Add(-time.Minute)
	repo.mu.Unlock()

	if _, err := svc.SettlePayment(ctx, userID, bookingID, &SettleRequest{PaymentMethod: "card"}); !errors.Is(err, ErrPendingExpired) {
		t.Fatalf("settle of expired booking = %v, want ErrPendingExpired", err)
	}

	stored, _ := repo.GetBookingByID(ctx, bookingID)
	if stored.Status != StatusReleased.String() {
		t.Errorf("status = %s, want RELEASED after expired settle attempt", stored.Status)
	}
}
