package offers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"
)

// Service interface defines the contract for offer management
type Service interface {
	// Apply evaluates a code against an amount and reports the outcome.
	// A rejected code is a normal outcome, not an error; errors are
	// reserved for infrastructure failures.
	Apply(ctx context.Context, code string, amountCents int64, today time.Time) (*Outcome, error)

	// Validate is the strict variant used by the validation endpoint:
	// rejections come back as typed errors for HTTP mapping.
	Validate(ctx context.Context, code string, amountCents int64, today time.Time) (*ValidateResponse, error)

	ListActive(ctx context.Context, today time.Time) ([]Offer, error)
	Create(ctx context.Context, req *CreateOfferRequest) (*Offer, error)
	Delete(ctx context.Context, code string) error
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

// NewService creates a new offers service instance
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
		log:   logger.GetDefault(),
	}
}

func (s *service) Apply(ctx context.Context, code string, amountCents int64, today time.Time) (*Outcome, error) {
	offer, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrOfferNotFound) {
			s.log.LogOfferRejected(ctx, code, "not found")
			return &Outcome{Code: normalizeCode(code), Reason: "offer not found"}, nil
		}
		return nil, err
	}

	discount, err := Evaluate(offer, amountCents, today)
	if err != nil {
		reason := "offer has expired"
		if errors.Is(err, ErrOfferNotYetValid) {
			reason = "offer is not yet valid"
		}
		s.log.LogOfferRejected(ctx, offer.Code, reason)
		return &Outcome{Code: offer.Code, Reason: reason}, nil
	}

	return &Outcome{
		Applied:       true,
		Code:          offer.Code,
		DiscountCents: discount,
	}, nil
}

func (s *service) Validate(ctx context.Context, code string, amountCents int64, today time.Time) (*ValidateResponse, error) {
	offer, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	discount, err := Evaluate(offer, amountCents, today)
	if err != nil {
		return nil, err
	}

	return &ValidateResponse{
		Code:             offer.Code,
		DiscountCents:    discount,
		PayableCents:     amountCents - discount,
		DiscountPercent:  offer.DiscountPercent,
		MaxDiscountCents: offer.MaxDiscountCents,
	}, nil
}

func (s *service) ListActive(ctx context.Context, today time.Time) ([]Offer, error) {
	day := today.Format(dateLayout)

	if s.cache != nil {
		var offers []Offer
		key := constants.CACHE_KEY_OFFERS_ACTIVE + ":" + day
		err := s.cache.GetOrSet(ctx, key, constants.TTL_OFFERS_ACTIVE, func() (interface{}, error) {
			return s.repo.ListActive(ctx, day)
		}, &offers)
		if err == nil {
			return offers, nil
		}
	}
	return s.repo.ListActive(ctx, day)
}

func (s *service) Create(ctx context.Context, req *CreateOfferRequest) (*Offer, error) {
	if req.ValidTo < req.ValidFrom {
		return nil, fmt.Errorf("valid_to must not be before valid_from")
	}

	offer := &Offer{
		Code:             normalizeCode(req.Code),
		Description:      req.Description,
		DiscountPercent:  req.DiscountPercent,
		MaxDiscountCents: req.MaxDiscountCents,
		ValidFrom:        req.ValidFrom,
		ValidTo:          req.ValidTo,
	}

	if err := s.repo.Create(ctx, offer); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return offer, nil
}

func (s *service) Delete(ctx context.Context, code string) error {
	if err := s.repo.Delete(ctx, code); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_OFFERS_ALL); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to invalidate offers cache", err, nil)
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
