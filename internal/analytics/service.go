package analytics

import (
	"context"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"
)

// Service defines the analytics service interface
type Service interface {
	GetPlatformStats(ctx context.Context) (*PlatformStats, error)
}

type service struct {
	repo     Repository
	cache    cache.Service
	currency string
}

// NewService creates a new analytics service instance
func NewService(repo Repository, cacheService cache.Service, currency string) Service {
	return &service{
		repo:     repo,
		cache:    cacheService,
		currency: currency,
	}
}

func (s *service) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	if s.cache != nil {
		var stats PlatformStats
		err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_ADMIN_STATS, constants.TTL_ADMIN_STATS, func() (interface{}, error) {
			return s.buildStats(ctx)
		}, &stats)
		if err == nil {
			return &stats, nil
		}
		// fall through to a direct build on cache errors
	}
	return s.buildStats(ctx)
}

func (s *service) buildStats(ctx context.Context) (*PlatformStats, error) {
	bookings, err := s.repo.GetBookingStats(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.repo.GetRevenueStats(ctx)
	if err != nil {
		return nil, err
	}
	revenue.Currency = s.currency

	catalog, err := s.repo.GetCatalogStats(ctx)
	if err != nil {
		return nil, err
	}

	topMovies, err := s.repo.GetTopMovies(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		Bookings:  *bookings,
		Revenue:   *revenue,
		Catalog:   *catalog,
		TopMovies: topMovies,
	}, nil
}
