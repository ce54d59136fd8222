package offers

import (
	"errors"
	"testing"
	"time"
)

func mustDay(t *testing.T, day string) time.Time {
	t.Helper()
	parsed, err := time.Parse(dateLayout, day)
	if err != nil {
		t.Fatalf("bad test date %q: %v", day, err)
	}
	return parsed
}

func TestEvaluateDiscount(t *testing.T) {
	tests := []struct {
		name         string
		percent      int
		capCents     int64
		amountCents  int64
		wantDiscount int64
	}{
		{name: "cap binds", percent: 20, capCents: 5000, amountCents: 40000, wantDiscount: 5000},
		{name: "percent binds", percent: 20, capCents: 5000, amountCents: 20000, wantDiscount: 4000},
		{name: "truncates toward zero", percent: 15, capCents: 100000, amountCents: 333, wantDiscount: 49},
		{name: "full discount clamps to amount", percent: 100, capCents: 100000, amountCents: 2500, wantDiscount: 2500},
		{name: "tiny amount rounds to zero", percent: 10, capCents: 5000, amountCents: 9, wantDiscount: 0},
	}

	today := mustDay(t, "2026-08-15")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer := &Offer{
				Code:             "SAVE",
				DiscountPercent:  tt.percent,
				MaxDiscountCents: tt.capCents,
				ValidFrom:        "2026-08-01",
				ValidTo:          "2026-08-31",
			}

			discount, err := Evaluate(offer, tt.amountCents, today)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if discount != tt.wantDiscount {
				t.Errorf("Evaluate() = %d, want %d", discount, tt.wantDiscount)
			}
			if discount > tt.amountCents {
				t.Errorf("discount %d exceeds amount %d", discount, tt.amountCents)
			}
		})
	}
}

func TestEvaluateValidityWindow(t *testing.T) {
	offer := &Offer{
		Code:             "WINDOW",
		DiscountPercent:  10,
		MaxDiscountCents: 10000,
		ValidFrom:        "2026-08-10",
		ValidTo:          "2026-08-20",
	}

	tests := []struct {
		day     string
		wantErr error
	}{
		{day: "2026-08-09", wantErr: ErrOfferNotYetValid},
		{day: "2026-08-10", wantErr: nil}, // first day inclusive
		{day: "2026-08-15", wantErr: nil},
		{day: "2026-08-20", wantErr: nil}, // last day inclusive
		{day: "2026-08-21", wantErr: ErrOfferExpired},
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			_, err := Evaluate(offer, 10000, mustDay(t, tt.day))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Evaluate on %s = %v, want %v", tt.day, err, tt.wantErr)
			}
		})
	}
}
