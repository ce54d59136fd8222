package bookings

import "testing"

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusReleased, true},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusReleased, false},
		{StatusConfirmed, StatusPending, false},
		{StatusReleased, StatusConfirmed, false},
		{StatusReleased, StatusPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusPending.IsTerminal() {
		t.Errorf("PENDING reported terminal")
	}
	if !StatusConfirmed.IsTerminal() {
		t.Errorf("CONFIRMED not reported terminal")
	}
	if !StatusReleased.IsTerminal() {
		t.Errorf("RELEASED not reported terminal")
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusReleased} {
		if !s.IsValid() {
			t.Errorf("%s reported invalid", s)
		}
	}
	if Status("CANCELLED").IsValid() {
		t.Errorf("CANCELLED reported valid")
	}
}

func TestReleaseReasonIsValid(t *testing.T) {
	for _, r := range []ReleaseReason{ReleasePaymentFailed, ReleaseCancelled, ReleaseExpired} {
		if !r.IsValid() {
			t.Errorf("%s reported invalid", r)
		}
	}
	if ReleaseReason("REFUNDED").IsValid() {
		t.Errorf("REFUNDED reported valid")
	}
}
