package shows

import (
	"context"
	"fmt"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
)

// Service interface defines the contract for show browsing
type Service interface {
	GetShow(ctx context.Context, id uuid.UUID) (*Show, error)
	ListByTheatre(ctx context.Context, query ListQuery) ([]TheatreShows, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService creates a new show service instance
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *service) GetShow(ctx context.Context, id uuid.UUID) (*Show, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByTheatre returns shows for a movie in a city, grouped by theatre,
// with an availability summary derived from the durable seat map.
func (s *service) ListByTheatre(ctx context.Context, query ListQuery) ([]TheatreShows, error) {
	movieID, err := uuid.Parse(query.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}

	if s.cache != nil {
		var grouped []TheatreShows
		key := constants.BuildShowsListKey(query.MovieID, query.City, query.Date)
		err := s.cache.GetOrSet(ctx, key, constants.TTL_SHOWS_LIST, func() (interface{}, error) {
			return s.listByTheatre(ctx, movieID, query.City, query.Date)
		}, &grouped)
		if err == nil {
			return grouped, nil
		}
	}

	return s.listByTheatre(ctx, movieID, query.City, query.Date)
}

func (s *service) listByTheatre(ctx context.Context, movieID uuid.UUID, city, date string) ([]TheatreShows, error) {
	shows, err := s.repo.List(ctx, movieID, city, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}

	grouped := make([]TheatreShows, 0)
	index := make(map[uuid.UUID]int)

	for _, show := range shows {
		summary := ShowSummary{
			ID:             show.ID.String(),
			Time:           show.Time,
			Date:           show.Date,
			PriceCents:     show.PriceCents,
			SeatCount:      show.SeatCount,
			AvailableSeats: show.SeatCount - show.SeatMap.BookedCount(),
		}

		pos, ok := index[show.TheatreID]
		if !ok {
			group := TheatreShows{
				TheatreID: show.TheatreID.String(),
			}
			if show.Theatre != nil {
				group.Theatre = show.Theatre.Name
				group.Address = show.Theatre.Address
			}
			grouped = append(grouped, group)
			pos = len(grouped) - 1
			index[show.TheatreID] = pos
		}

		grouped[pos].Shows = append(grouped[pos].Shows, summary)
	}

	return grouped, nil
}
