package offers

import (
	"time"

	"github.com/google/uuid"
)

// Offer is a percentage discount with a cap, valid between two dates
// inclusive. Codes are stored upper-case and matched case-insensitively.
type Offer struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Code             string    `json:"code" gorm:"type:varchar(50);uniqueIndex;not null"`
	Description      string    `json:"description" gorm:"type:text"`
	DiscountPercent  int       `json:"discount_percent" gorm:"not null"`
	MaxDiscountCents int64     `json:"max_discount_cents" gorm:"not null"`
	ValidFrom        string    `json:"valid_from" gorm:"type:varchar(10);not null"`
	ValidTo          string    `json:"valid_to" gorm:"type:varchar(10);not null"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Offer) TableName() string {
	return "offers"
}

// Outcome records what happened when a code was applied to an amount.
// Applied distinguishes a granted discount from a rejection; Reason is
// set only on rejection. A zero Outcome means no code was given at all.
type Outcome struct {
	Applied       bool   `json:"applied"`
	Code          string `json:"code,omitempty"`
	DiscountCents int64  `json:"discount_cents,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

type CreateOfferRequest struct {
	Code             string `json:"code" binding:"required,min=2,max=50"`
	Description      string `json:"description" binding:"max=500"`
	DiscountPercent  int    `json:"discount_percent" binding:"required,min=1,max=100"`
	MaxDiscountCents int64  `json:"max_discount_cents" binding:"required,min=1"`
	ValidFrom        string `json:"valid_from" binding:"required,datetime=2006-01-02"`
	ValidTo          string `json:"valid_to" binding:"required,datetime=2006-01-02"`
}

type ValidateRequest struct {
	Code        string `json:"code" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required,min=1"`
}

type ValidateResponse struct {
	Code             string `json:"code"`
	DiscountCents    int64  `json:"discount_cents"`
	PayableCents     int64  `json:"payable_cents"`
	DiscountPercent  int    `json:"discount_percent"`
	MaxDiscountCents int64  `json:"max_discount_cents"`
}
