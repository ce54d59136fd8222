package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds database indexes that AutoMigrate does not create
func MigrateConstraints(db *gorm.DB) error {
	// Index for the pending-booking sweeper: it scans PENDING rows by expiry
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_pending_expiry
		ON bookings (pending_expires_at)
		WHERE status = 'PENDING';
	`).Error
	if err != nil {
		return err
	}

	// Index for seat-ledger hydration: claimed seats are looked up per
	// show across the unreleased statuses
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_show_status
		ON bookings (show_id, status);
	`).Error
	if err != nil {
		return err
	}

	// Index for show listings by movie and date
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_shows_movie_date
		ON shows (movie_id, date);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
