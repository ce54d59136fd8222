package bookings

import (
	"time"

	"cinebook/internal/shows"

	"github.com/google/uuid"
)

// Booking defines the main booking structure. The seat list is carried
// on the booking itself so settlement and release always operate on the
// exact seats that were held, never on a count or a derived amount.
type Booking struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BookingRef          string         `gorm:"type:varchar(30);unique;not null" json:"booking_ref"`
	UserID              uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	ShowID              uuid.UUID      `gorm:"type:uuid;index;not null" json:"show_id"`
	SeatIndices         shows.SeatList `gorm:"type:jsonb;not null" json:"seat_indices"`
	OriginalAmountCents int64          `gorm:"not null" json:"original_amount_cents"`
	OfferCode           *string        `gorm:"type:varchar(50)" json:"offer_code,omitempty"`
	DiscountCents       int64          `gorm:"not null;default:0" json:"discount_cents"`
	TotalAmountCents    int64          `gorm:"not null" json:"total_amount_cents"`
	Status              string         `gorm:"type:varchar(20);check:status IN ('PENDING', 'CONFIRMED', 'RELEASED');default:'PENDING'" json:"status"`
	ReleaseReason       *string        `gorm:"type:varchar(30)" json:"release_reason,omitempty"`
	PendingExpiresAt    time.Time      `gorm:"not null" json:"pending_expires_at"`
	ConfirmedAt         *time.Time     `json:"confirmed_at,omitempty"`
	ReleasedAt          *time.Time     `json:"released_at,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`

	// Relationships
	Show     *shows.Show `json:"show,omitempty" gorm:"foreignKey:ShowID;constraint:OnDelete:RESTRICT;"`
	Payments []Payment   `json:"payments,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// Payment defines the structure for settlement attempt tracking
type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BookingID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"booking_id"`
	AmountCents   int64      `gorm:"not null" json:"amount_cents"`
	Currency      string     `gorm:"type:varchar(3);default:'INR'" json:"currency"`
	Status        string     `gorm:"type:varchar(20);check:status IN ('PENDING', 'COMPLETED', 'FAILED');default:'PENDING'" json:"status"`
	PaymentMethod string     `gorm:"type:varchar(50)" json:"payment_method"`
	TransactionID string     `gorm:"unique" json:"transaction_id"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	FailureReason string     `json:"failure_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relationships
	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// PendingExpired reports whether the booking sat unpaid past its window
func (b *Booking) PendingExpired(now time.Time) bool {
	return b.Status == StatusPending.String() && now.After(b.PendingExpiresAt)
}

// MarkCompleted records a successful settlement attempt
func (p *Payment) MarkCompleted(transactionID string) {
	p.Status = PaymentCompleted.String()
	p.TransactionID = transactionID
	now := time.Now()
	p.ProcessedAt = &now
	p.UpdatedAt = now
}

// MarkFailed records a declined settlement attempt
func (p *Payment) MarkFailed(reason string) {
	p.Status = PaymentFailed.String()
	p.FailureReason = reason
	now := time.Now()
	p.ProcessedAt = &now
	p.UpdatedAt = now
}

// CreateBookingRequest starts a booking from a live hold
type CreateBookingRequest struct {
	HoldID    string `json:"hold_id" binding:"required,uuid"`
	ShowID    string `json:"show_id" binding:"required,uuid"`
	OfferCode string `json:"offer_code" binding:"omitempty,max=50"`
}

// SettleRequest settles a pending booking
type SettleRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,max=50"`
}

// OfferOutcomeInfo reports how the offer code fared in responses
type OfferOutcomeInfo struct {
	Applied       bool   `json:"applied"`
	Code          string `json:"code,omitempty"`
	DiscountCents int64  `json:"discount_cents,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	BookingID           string            `json:"booking_id"`
	BookingRef          string            `json:"booking_ref"`
	ShowID              string            `json:"show_id"`
	SeatIndices         []int             `json:"seat_indices"`
	OriginalAmountCents int64             `json:"original_amount_cents"`
	DiscountCents       int64             `json:"discount_cents"`
	TotalAmountCents    int64             `json:"total_amount_cents"`
	Status              string            `json:"status"`
	ReleaseReason       string            `json:"release_reason,omitempty"`
	Offer               *OfferOutcomeInfo `json:"offer,omitempty"`
	PendingExpiresAt    time.Time         `json:"pending_expires_at"`
	CreatedAt           time.Time         `json:"created_at"`
}

// PaymentInfo represents a settlement attempt in API responses
type PaymentInfo struct {
	ID            string     `json:"id"`
	AmountCents   int64      `json:"amount_cents"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method"`
	TransactionID string     `json:"transaction_id"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	FailureReason string     `json:"failure_reason,omitempty"`
}

// SettleResponse represents the result of a settlement attempt
type SettleResponse struct {
	BookingID        string      `json:"booking_id"`
	BookingRef       string      `json:"booking_ref"`
	Status           string      `json:"status"`
	TotalAmountCents int64       `json:"total_amount_cents"`
	Payment          PaymentInfo `json:"payment"`
}

// ToBookingResponse converts a booking into its API shape
func (b *Booking) ToBookingResponse() BookingResponse {
	resp := BookingResponse{
		BookingID:           b.ID.String(),
		BookingRef:          b.BookingRef,
		ShowID:              b.ShowID.String(),
		SeatIndices:         b.SeatIndices,
		OriginalAmountCents: b.OriginalAmountCents,
		DiscountCents:       b.DiscountCents,
		TotalAmountCents:    b.TotalAmountCents,
		Status:              b.Status,
		PendingExpiresAt:    b.PendingExpiresAt,
		CreatedAt:           b.CreatedAt,
	}
	if b.ReleaseReason != nil {
		resp.ReleaseReason = *b.ReleaseReason
	}
	return resp
}

// ToPaymentInfo converts a payment into its API shape
func (p *Payment) ToPaymentInfo() PaymentInfo {
	return PaymentInfo{
		ID:            p.ID.String(),
		AmountCents:   p.AmountCents,
		Currency:      p.Currency,
		Status:        p.Status,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		ProcessedAt:   p.ProcessedAt,
		FailureReason: p.FailureReason,
	}
}
