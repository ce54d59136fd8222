package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Core booking operations
	CreateBooking(ctx context.Context, booking *Booking, payment *Payment) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error)

	// Settlement transitions. Each guards on status = PENDING at the
	// database level; a zero-row update means the booking was already
	// terminal and the caller must treat the transition as rejected.
	ConfirmBooking(ctx context.Context, id uuid.UUID, payment *Payment) error
	ReleaseBooking(ctx context.Context, id uuid.UUID, reason ReleaseReason, payment *Payment) error

	// Expiry sweep support
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]Booking, error)

	// Ledger hydration support: seats of every unreleased booking. The
	// booking row is the authoritative seat claim; the show's seat map
	// is a projection of it and may lag behind a confirmation.
	ClaimedSeatsByShow(ctx context.Context, showID uuid.UUID) ([]int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, booking *Booking, payment *Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		if payment != nil {
			payment.BookingID = booking.ID
			if err := tx.Create(payment).Error; err != nil {
				return fmt.Errorf("failed to create payment record: %w", err)
			}
		}
		return nil
	})
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Payments").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Payments").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	return bookings, nil
}

func (r *repository) ConfirmBooking(ctx context.Context, id uuid.UUID, payment *Payment) error {
	return r.transition(ctx, id, map[string]interface{}{
		"status":       StatusConfirmed.String(),
		"confirmed_at": time.Now(),
		"updated_at":   time.Now(),
	}, payment)
}

func (r *repository) ReleaseBooking(ctx context.Context, id uuid.UUID, reason ReleaseReason, payment *Payment) error {
	return r.transition(ctx, id, map[string]interface{}{
		"status":         StatusReleased.String(),
		"release_reason": reason.String(),
		"released_at":    time.Now(),
		"updated_at":     time.Now(),
	}, payment)
}

// transition applies a terminal status atomically. The WHERE clause on
// the current status makes concurrent settlements race safely: exactly
// one wins, the rest see zero rows and get ErrInvalidStateTransition.
func (r *repository) transition(ctx context.Context, id uuid.UUID, updates map[string]interface{}, payment *Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", id, StatusPending.String()).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to update booking status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&Booking{}).Where("id = ?", id).Count(&exists).Error; err != nil {
				return fmt.Errorf("failed to check booking: %w", err)
			}
			if exists == 0 {
				return ErrBookingNotFound
			}
			return ErrInvalidStateTransition
		}

		if payment != nil {
			if err := tx.Save(payment).Error; err != nil {
				return fmt.Errorf("failed to save payment record: %w", err)
			}
		}
		return nil
	})
}

func (r *repository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]Booking, error) {
	if limit <= 0 {
		limit = 100
	}
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND pending_expires_at < ?", StatusPending.String(), now).
		Order("pending_expires_at ASC").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expired pending bookings: %w", err)
	}
	return bookings, nil
}

func (r *repository) ClaimedSeatsByShow(ctx context.Context, showID uuid.UUID) ([]int, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Select("seat_indices").
		Where("show_id = ? AND status IN ?", showID, []string{StatusPending.String(), StatusConfirmed.String()}).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list claimed seats: %w", err)
	}

	var seats []int
	for _, booking := range bookings {
		seats = append(seats, booking.SeatIndices...)
	}
	return seats, nil
}
