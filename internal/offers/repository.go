package offers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, offer *Offer) error
	GetByCode(ctx context.Context, code string) (*Offer, error)
	ListActive(ctx context.Context, day string) ([]Offer, error)
	Delete(ctx context.Context, code string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, offer *Offer) error {
	offer.Code = strings.ToUpper(strings.TrimSpace(offer.Code))
	if err := r.db.WithContext(ctx).Create(offer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrOfferExists
		}
		return fmt.Errorf("failed to create offer: %w", err)
	}
	return nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Offer, error) {
	var offer Offer
	err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return &offer, nil
}

func (r *repository) ListActive(ctx context.Context, day string) ([]Offer, error) {
	var offers []Offer
	err := r.db.WithContext(ctx).
		Where("valid_from <= ? AND valid_to >= ?", day, day).
		Order("created_at DESC").
		Find(&offers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active offers: %w", err)
	}
	return offers, nil
}

func (r *repository) Delete(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Delete(&Offer{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete offer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOfferNotFound
	}
	return nil
}
