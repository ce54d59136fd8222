package shows

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"cinebook/internal/catalog"

	"github.com/google/uuid"
)

// SeatMap is the ordered occupancy vector of a show, persisted as JSONB.
// The index is the seat number; the length is fixed when the show is
// created and never changes. true = durably booked.
type SeatMap []bool

func (m SeatMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *SeatMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported seat map source type %T", value)
	}
}

// GormDataType tells the migrator to use JSONB for SeatMap columns
func (SeatMap) GormDataType() string {
	return "jsonb"
}

// BookedCount returns how many seats are durably occupied
func (m SeatMap) BookedCount() int {
	count := 0
	for _, booked := range m {
		if booked {
			count++
		}
	}
	return count
}

// SeatList is a list of seat indices persisted as JSONB. Bookings carry
// it end-to-end as the authoritative record of which seats were sold;
// seat counts are always derived from it, never re-computed from amounts.
type SeatList []int

func (l SeatList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]int{})
	}
	return json.Marshal(l)
}

func (l *SeatList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported seat list source type %T", value)
	}
}

func (SeatList) GormDataType() string {
	return "jsonb"
}

// Show is a single screening of a movie at a theatre
type Show struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	MovieID    uuid.UUID `json:"movie_id" gorm:"type:uuid;index;not null"`
	TheatreID  uuid.UUID `json:"theatre_id" gorm:"type:uuid;index;not null"`
	Date       string    `json:"date" gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	Time       string    `json:"time" gorm:"type:varchar(5);not null"`  // HH:MM
	PriceCents int64     `json:"price_cents" gorm:"not null;check:price_cents >= 0"`
	SeatCount  int       `json:"seat_count" gorm:"not null;check:seat_count > 0"`
	SeatMap    SeatMap   `json:"seat_map" gorm:"type:jsonb;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Movie   *catalog.Movie   `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
	Theatre *catalog.Theatre `json:"theatre,omitempty" gorm:"foreignKey:TheatreID"`
}

func (Show) TableName() string {
	return "shows"
}

// ShowSummary is a single show entry in a theatre group
type ShowSummary struct {
	ID             string `json:"id"`
	Time           string `json:"time"`
	Date           string `json:"date"`
	PriceCents     int64  `json:"price_cents"`
	SeatCount      int    `json:"seat_count"`
	AvailableSeats int    `json:"available_seats"`
}

// TheatreShows groups a theatre's shows for the listing endpoint
type TheatreShows struct {
	TheatreID string        `json:"theatre_id"`
	Theatre   string        `json:"theatre"`
	Address   string        `json:"address"`
	Shows     []ShowSummary `json:"shows"`
}

// ListQuery carries the show listing filters
type ListQuery struct {
	MovieID string `form:"movie_id" binding:"required,uuid"`
	City    string `form:"city" binding:"required"`
	Date    string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}
