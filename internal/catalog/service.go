package catalog

import (
	"context"
	"errors"
	"fmt"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrMovieNotFound = errors.New("movie not found")

// Service interface defines the contract for catalog browsing
type Service interface {
	ListCities(ctx context.Context) ([]City, error)
	ListMovies(ctx context.Context, city string) ([]Movie, error)
	GetMovie(ctx context.Context, id uuid.UUID) (*Movie, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService creates a new catalog service instance
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *service) ListCities(ctx context.Context) ([]City, error) {
	if s.cache != nil {
		var cities []City
		err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_CITIES, constants.TTL_CITIES, func() (interface{}, error) {
			return s.repo.ListCities(ctx)
		}, &cities)
		if err == nil {
			return cities, nil
		}
		// fall through to the repository on cache errors
	}
	return s.repo.ListCities(ctx)
}

func (s *service) ListMovies(ctx context.Context, city string) ([]Movie, error) {
	if s.cache != nil {
		var movies []Movie
		key := constants.BuildMoviesListKey(city)
		err := s.cache.GetOrSet(ctx, key, constants.TTL_MOVIES_LIST, func() (interface{}, error) {
			return s.repo.ListMovies(ctx, city)
		}, &movies)
		if err == nil {
			return movies, nil
		}
	}
	return s.repo.ListMovies(ctx, city)
}

func (s *service) GetMovie(ctx context.Context, id uuid.UUID) (*Movie, error) {
	movie, err := s.repo.GetMovieByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return movie, nil
}
