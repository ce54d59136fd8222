package offers

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeOfferRepo struct {
	offers map[string]*Offer
}

func newFakeOfferRepo(offers ...*Offer) *fakeOfferRepo {
	repo := &fakeOfferRepo{offers: make(map[string]*Offer)}
	for _, offer := range offers {
		repo.offers[offer.Code] = offer
	}
	return repo
}

func (f *fakeOfferRepo) Create(ctx context.Context, offer *Offer) error {
	if _, ok := f.offers[offer.Code]; ok {
		return ErrOfferExists
	}
	f.offers[offer.Code] = offer
	return nil
}

func (f *fakeOfferRepo) GetByCode(ctx context.Context, code string) (*Offer, error) {
	offer, ok := f.offers[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, ErrOfferNotFound
	}
	return offer, nil
}

func (f *fakeOfferRepo) ListActive(ctx context.Context, day string) ([]Offer, error) {
	var active []Offer
	for _, offer := range f.offers {
		if day >= offer.ValidFrom && day <= offer.ValidTo {
			active = append(active, *offer)
		}
	}
	return active, nil
}

func (f *fakeOfferRepo) Delete(ctx context.Context, code string) error {
	key := strings.ToUpper(strings.TrimSpace(code))
	if _, ok := f.offers[key]; !ok {
		return ErrOfferNotFound
	}
	delete(f.offers, key)
	return nil
}

func testOffers() []*Offer {
	return []*Offer{
		{
			Code:             "SAVE20",
			DiscountPercent:  20,
			MaxDiscountCents: 5000,
			ValidFrom:        "2026-08-01",
			ValidTo:          "2026-08-31",
		},
		{
			Code:             "OLD10",
			DiscountPercent:  10,
			MaxDiscountCents: 10000,
			ValidFrom:        "2026-01-01",
			ValidTo:          "2026-01-31",
		},
	}
}

func TestApplyOutcomes(t *testing.T) {
	svc := NewService(newFakeOfferRepo(testOffers()...), nil)
	today := mustDay(t, "2026-08-15")
	ctx := context.Background()

	tests := []struct {
		name         string
		code         string
		amountCents  int64
		wantApplied  bool
		wantDiscount int64
	}{
		{name: "valid code capped", code: "SAVE20", amountCents: 40000, wantApplied: true, wantDiscount: 5000},
		{name: "valid code percent", code: "save20", amountCents: 10000, wantApplied: true, wantDiscount: 2000},
		{name: "expired code rejected", code: "OLD10", amountCents: 10000, wantApplied: false},
		{name: "unknown code rejected", code: "NOPE", amountCents: 10000, wantApplied: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := svc.Apply(ctx, tt.code, tt.amountCents, today)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if outcome.Applied != tt.wantApplied {
				t.Fatalf("Apply() applied = %v, want %v (reason %q)", outcome.Applied, tt.wantApplied, outcome.Reason)
			}
			if tt.wantApplied {
				if outcome.DiscountCents != tt.wantDiscount {
					t.Errorf("discount = %d, want %d", outcome.DiscountCents, tt.wantDiscount)
				}
			} else if outcome.Reason == "" {
				t.Errorf("rejected outcome has no reason")
			}
		})
	}
}

func TestValidateStrictErrors(t *testing.T) {
	svc := NewService(newFakeOfferRepo(testOffers()...), nil)
	today := mustDay(t, "2026-08-15")
	ctx := context.Background()

	if _, err := svc.Validate(ctx, "OLD10", 10000, today); !errors.Is(err, ErrOfferExpired) {
		t.Errorf("Validate(OLD10) = %v, want ErrOfferExpired", err)
	}
	if _, err := svc.Validate(ctx, "NOPE", 10000, today); !errors.Is(err, ErrOfferNotFound) {
		t.Errorf("Validate(NOPE) = %v, want ErrOfferNotFound", err)
	}

	result, err := svc.Validate(ctx, "SAVE20", 40000, today)
	if err != nil {
		t.Fatalf("Validate(SAVE20) error = %v", err)
	}
	if result.DiscountCents != 5000 || result.PayableCents != 35000 {
		t.Errorf("Validate(SAVE20) = discount %d payable %d, want 5000 / 35000", result.DiscountCents, result.PayableCents)
	}
}

func TestCreateNormalizesAndRejectsBadWindow(t *testing.T) {
	svc := NewService(newFakeOfferRepo(), nil)
	ctx := context.Background()

	offer, err := svc.Create(ctx, &CreateOfferRequest{
		Code:             "  fresh5 ",
		DiscountPercent:  5,
		MaxDiscountCents: 1000,
		ValidFrom:        "2026-09-01",
		ValidTo:          "2026-09-30",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if offer.Code != "FRESH5" {
		t.Errorf("code = %q, want FRESH5", offer.Code)
	}

	_, err = svc.Create(ctx, &CreateOfferRequest{
		Code:             "BACKWARDS",
		DiscountPercent:  5,
		MaxDiscountCents: 1000,
		ValidFrom:        "2026-09-30",
		ValidTo:          "2026-09-01",
	})
	if err == nil {
		t.Errorf("Create() with valid_to before valid_from succeeded, want error")
	}
}
