package database

import (
	"cinebook/internal/bookings"
	"cinebook/internal/catalog"
	"cinebook/internal/offers"
	"cinebook/internal/shows"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.City{},
		&catalog.Movie{},
		&catalog.Theatre{},
		&shows.Show{},
		&offers.Offer{},
		&bookings.Booking{},
		&bookings.Payment{},
	)
}
