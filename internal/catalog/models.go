package catalog

import (
	"time"

	"github.com/google/uuid"
)

// City is a bookable region. Catalog rows are seeded, not managed over HTTP.
type City struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type Movie struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Poster    string    `json:"poster" gorm:"size:500"`
	Genre     string    `json:"genre" gorm:"size:100"`
	Duration  string    `json:"duration" gorm:"size:20"`
	Language  string    `json:"language" gorm:"size:50"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type Theatre struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	CityID    uuid.UUID `json:"city_id" gorm:"type:uuid;index;not null"`
	Address   string    `json:"address" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	City *City `json:"city,omitempty" gorm:"foreignKey:CityID"`
}

func (City) TableName() string {
	return "cities"
}

func (Movie) TableName() string {
	return "movies"
}

func (Theatre) TableName() string {
	return "theatres"
}
