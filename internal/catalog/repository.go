package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	ListCities(ctx context.Context) ([]City, error)
	ListMovies(ctx context.Context, city string) ([]Movie, error)
	GetMovieByID(ctx context.Context, id uuid.UUID) (*Movie, error)
	GetCityByName(ctx context.Context, name string) (*City, error)
	ListTheatresByCity(ctx context.Context, cityID uuid.UUID) ([]Theatre, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListCities(ctx context.Context) ([]City, error) {
	var cities []City
	err := r.db.WithContext(ctx).Order("name ASC").Find(&cities).Error
	return cities, err
}

func (r *repository) ListMovies(ctx context.Context, city string) ([]Movie, error) {
	var movies []Movie

	query := r.db.WithContext(ctx).Model(&Movie{})
	if city != "" {
		// Only movies with at least one show in the city
		query = query.
			Joins("JOIN shows ON shows.movie_id = movies.id").
			Joins("JOIN theatres ON theatres.id = shows.theatre_id").
			Joins("JOIN cities ON cities.id = theatres.city_id").
			Where("cities.name = ?", city).
			Distinct("movies.*")
	}

	err := query.Order("name ASC").Find(&movies).Error
	return movies, err
}

func (r *repository) GetMovieByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	var movie Movie
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&movie).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *repository) GetCityByName(ctx context.Context, name string) (*City, error) {
	var city City
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&city).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *repository) ListTheatresByCity(ctx context.Context, cityID uuid.UUID) ([]Theatre, error) {
	var theatres []Theatre
	err := r.db.WithContext(ctx).Where("city_id = ?", cityID).Order("name ASC").Find(&theatres).Error
	return theatres, err
}
