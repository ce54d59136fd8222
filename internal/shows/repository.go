package shows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrShowNotFound = errors.New("show not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Show, error)
	List(ctx context.Context, movieID uuid.UUID, city, date string) ([]Show, error)

	// SeatMap returns the durable occupancy vector for a show.
	SeatMap(ctx context.Context, showID uuid.UUID) (SeatMap, error)

	// MarkSeatsBooked durably flips the given seat indices to occupied.
	// The show row is locked for the duration of the update so that two
	// confirmations can never interleave their read-modify-write.
	MarkSeatsBooked(ctx context.Context, showID uuid.UUID, seats []int) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Show, error) {
	var show Show
	err := r.db.WithContext(ctx).
		Preload("Movie").
		Preload("Theatre").
		Where("id = ?", id).
		First(&show).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &show, nil
}

func (r *repository) List(ctx context.Context, movieID uuid.UUID, city, date string) ([]Show, error) {
	var shows []Show

	query := r.db.WithContext(ctx).
		Preload("Theatre").
		Joins("JOIN theatres ON theatres.id = shows.theatre_id").
		Joins("JOIN cities ON cities.id = theatres.city_id").
		Where("shows.movie_id = ?", movieID).
		Where("cities.name = ?", city)

	if date != "" {
		query = query.Where("shows.date = ?", date)
	}

	err := query.Order("shows.date ASC, shows.time ASC").Find(&shows).Error
	return shows, err
}

func (r *repository) SeatMap(ctx context.Context, showID uuid.UUID) (SeatMap, error) {
	var show Show
	err := r.db.WithContext(ctx).
		Select("id, seat_map").
		Where("id = ?", showID).
		First(&show).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return show.SeatMap, nil
}

// lockedShow builds the FOR UPDATE read of a show row used by the
// seat map update. Kept as its own builder so the generated SQL can be
// asserted against.
func (r *repository) lockedShow(tx *gorm.DB, showID uuid.UUID) *gorm.DB {
	return tx.
		Select("id, seat_count, seat_map").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", showID)
}

func (r *repository) MarkSeatsBooked(ctx context.Context, showID uuid.UUID, seats []int) error {
	if len(seats) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var show Show

		err := r.lockedShow(tx, showID).First(&show).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShowNotFound
			}
			return fmt.Errorf("failed to lock show: %w", err)
		}

		for _, idx := range seats {
			if idx < 0 || idx >= len(show.SeatMap) {
				return fmt.Errorf("seat index %d out of range for show %s", idx, showID)
			}
			show.SeatMap[idx] = true
		}

		err = tx.Model(&Show{}).
			Where("id = ?", showID).
			Update("seat_map", show.SeatMap).Error
		if err != nil {
			return fmt.Errorf("failed to persist seat map: %w", err)
		}

		return nil
	})
}
