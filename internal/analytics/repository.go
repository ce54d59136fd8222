package analytics

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Repository defines the analytics repository interface
type Repository interface {
	GetBookingStats(ctx context.Context) (*BookingStats, error)
	GetRevenueStats(ctx context.Context) (*RevenueStats, error)
	GetCatalogStats(ctx context.Context) (*CatalogStats, error)
	GetTopMovies(ctx context.Context, limit int) ([]MovieSales, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new analytics repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBookingStats(ctx context.Context) (*BookingStats, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	stats := &BookingStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case "PENDING":
			stats.Pending = row.Count
		case "CONFIRMED":
			stats.Confirmed = row.Count
		case "RELEASED":
			stats.Released = row.Count
		}
	}
	return stats, nil
}

func (r *repository) GetRevenueStats(ctx context.Context) (*RevenueStats, error) {
	stats := &RevenueStats{}

	err := r.db.WithContext(ctx).
		Table("bookings").
		Where("status = ?", "CONFIRMED").
		Select("COALESCE(SUM(total_amount_cents), 0)").
		Scan(&stats.ConfirmedCents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum confirmed revenue: %w", err)
	}

	err = r.db.WithContext(ctx).
		Table("bookings").
		Where("status = ?", "CONFIRMED").
		Select("COALESCE(SUM(discount_cents), 0)").
		Scan(&stats.DiscountCents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum granted discounts: %w", err)
	}

	return stats, nil
}

func (r *repository) GetCatalogStats(ctx context.Context) (*CatalogStats, error) {
	stats := &CatalogStats{}

	counts := []struct {
		table string
		dest  *int64
	}{
		{"cities", &stats.Cities},
		{"movies", &stats.Movies},
		{"theatres", &stats.Theatres},
		{"shows", &stats.Shows},
	}
	for _, c := range counts {
		if err := r.db.WithContext(ctx).Table(c.table).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}
	return stats, nil
}

func (r *repository) GetTopMovies(ctx context.Context, limit int) ([]MovieSales, error) {
	if limit <= 0 {
		limit = 5
	}

	var sales []MovieSales
	err := r.db.WithContext(ctx).
		Table("bookings b").
		Select(`m.id as movie_id,
			m.name as movie_name,
			COUNT(b.id) as bookings,
			COALESCE(SUM(jsonb_array_length(b.seat_indices)), 0) as seats_sold,
			COALESCE(SUM(b.total_amount_cents), 0) as revenue_cents`).
		Joins("JOIN shows s ON s.id = b.show_id").
		Joins("JOIN movies m ON m.id = s.movie_id").
		Where("b.status = ?", "CONFIRMED").
		Group("m.id, m.name").
		Order("bookings DESC").
		Limit(limit).
		Scan(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank movies: %w", err)
	}
	return sales, nil
}
