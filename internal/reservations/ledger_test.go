package reservations

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLedgerHoldValidation(t *testing.T) {
	showID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name    string
		seats   []int
		wantErr error
	}{
		{name: "empty selection", seats: nil, wantErr: ErrEmptySelection},
		{name: "negative index", seats: []int{-1}, wantErr: &SeatIndexError{}},
		{name: "index past end", seats: []int{10}, wantErr: &SeatIndexError{}},
		{name: "duplicate index", seats: []int{2, 2}, wantErr: &SeatIndexError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newShowLedger(10)
			ledger.hydrate(nil)

			_, _, err := ledger.hold(showID, userID, tt.seats, time.Minute, time.Now())
			if err == nil {
				t.Fatalf("hold(%v) succeeded, want error", tt.seats)
			}

			var seatErr *SeatIndexError
			if errors.As(tt.wantErr, &seatErr) {
				if !errors.As(err, &seatErr) {
					t.Fatalf("hold(%v) = %v, want SeatIndexError", tt.seats, err)
				}
			} else if !errors.Is(err, tt.wantErr) {
				t.Fatalf("hold(%v) = %v, want %v", tt.seats, err, tt.wantErr)
			}

			// Validation failures must not change any seat state
			for idx, state := range ledger.seats {
				if state != SeatFree {
					t.Errorf("seat %d = %s after failed hold, want FREE", idx, state)
				}
			}
		})
	}
}

func TestLedgerHoldAllOrNothing(t *testing.T) {
	showID := uuid.New()
	ledger := newShowLedger(10)
	ledger.hydrate([]int{3})

	_, _, err := ledger.hold(showID, uuid.New(), []int{2, 3, 4}, time.Minute, time.Now())

	var unavailable *SeatsUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("hold on booked seat = %v, want SeatsUnavailableError", err)
	}
	if len(unavailable.Indices) != 1 || unavailable.Indices[0] != 3 {
		t.Errorf("unavailable indices = %v, want [3]", unavailable.Indices)
	}

	// Seats 2 and 4 must remain free: no partial holds
	if ledger.seats[2] != SeatFree || ledger.seats[4] != SeatFree {
		t.Errorf("partial hold took seats: 2=%s 4=%s", ledger.seats[2], ledger.seats[4])
	}
}

func TestLedgerCommitConsumesHold(t *testing.T) {
	showID := uuid.New()
	userID := uuid.New()
	ledger := newShowLedger(10)
	ledger.hydrate(nil)

	hold, _, err := ledger.hold(showID, userID, []int{2, 3}, time.Minute, time.Now())
	if err != nil {
		t.Fatalf("hold failed: %v", err)
	}

	committed, err := ledger.commit(hold.ID, userID, time.Now())
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if got := committed.SeatIndices; len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("committed seats = %v, want [2 3]", got)
	}

	if ledger.seats[2] != SeatBooked || ledger.seats[3] != SeatBooked {
		t.Errorf("seats not booked after commit: 2=%s 3=%s", ledger.seats[2], ledger.seats[3])
	}

	// Single-use: a second commit sees an unknown hold
	if _, err := ledger.commit(hold.ID, userID, time.Now()); !errors.Is(err, ErrHoldNotFound) {
		t.Errorf("second commit = %v, want ErrHoldNotFound", err)
	}
}

func TestLedgerCommitRejectsWrongOwner(t *testing.T) {
	showID := uuid.New()
	owner := uuid.New()
	ledger := newShowLedger(5)
	ledger.hydrate(nil)

	hold, _, err := ledger.hold(showID, owner, []int{0}, time.Minute, time.Now())
	if err != nil {
		t.Fatalf("hold failed: %v", err)
	}

	if _, err := ledger.commit(hold.ID, uuid.New(), time.Now()); !errors.Is(err, ErrNotHoldOwner) {
		t.Fatalf("commit by stranger = %v, want ErrNotHoldOwner", err)
	}

	// The hold survives a rejected commit
	if _, err := ledger.commit(hold.ID, owner, time.Now()); err != nil {
		t.Errorf("owner commit after rejected commit = %v, want nil", err)
	}
}

func TestLedgerExpiredHoldFreesSeats(t *testing.T) {
	showID := uuid.New()
	userID := uuid.New()
	ledger := newShowLedger(5)
	ledger.hydrate(nil)

	now := time.Now()
	hold, _, err := ledger.hold(showID, userID, []int{1, 2}, time.Minute, now)
	if err != nil {
		t.Fatalf("hold failed: %v", err)
	}

	later := now.Add(2 * time.Minute)

	if _, err := ledger.commit(hold.ID, userID, later); !errors.Is(err, ErrHoldExpired) {
		t.Fatalf("commit after expiry = %v, want ErrHoldExpired", err)
	}

	if ledger.seats[1] != SeatFree || ledger.seats[2] != SeatFree {
		t.Errorf("expired hold seats not freed: 1=%s 2=%s", ledger.seats[1], ledger.seats[2])
	}

	// Another user can claim the freed seats immediately
	if _, _, err := ledger.hold(showID, uuid.New(), []int{1, 2}, time.Minute, later); err != nil {
		t.Errorf("hold on reaped seats = %v, want nil", err)
	}
}

func TestLedgerReapOnlyExpired(t *testing.T) {
	showID := uuid.New()
	ledger := newShowLedger(10)
	ledger.hydrate(nil)

	now := time.Now()
	live, _, _ := ledger.hold(showID, uuid.New(), []int{5}, time.Minute, now)
	expired, _, _ := ledger.hold(showID, uuid.New(), []int{0, 1}, time.Minute, now.Add(-2*time.Minute))

	reaped := ledger.reap(now)
	if len(reaped) != 1 || reaped[0].ID != expired.ID {
		t.Fatalf("reaped %d holds, want exactly the expired one", len(reaped))
	}

	if ledger.seats[0] != SeatFree || ledger.seats[1] != SeatFree {
		t.Errorf("expired seats not freed")
	}
	if ledger.seats[5] != SeatHeld {
		t.Errorf("live hold seat reaped: 5=%s, want HELD", ledger.seats[5])
	}
	if _, ok := ledger.holds[live.ID]; !ok {
		t.Errorf("live hold removed by reap")
	}
}

func TestLedgerReleaseIdempotent(t *testing.T) {
	showID := uuid.New()
	ledger := newShowLedger(5)
	ledger.hydrate(nil)

	hold, _, _ := ledger.hold(showID, uuid.New(), []int{3}, time.Minute, time.Now())

	if _, released := ledger.release(hold.ID); !released {
		t.Fatalf("first release reported not released")
	}
	if _, released := ledger.release(hold.ID); released {
		t.Fatalf("second release reported released, want no-op")
	}
	if ledger.seats[3] != SeatFree {
		t.Errorf("seat 3 = %s after release, want FREE", ledger.seats[3])
	}
}

func TestLedgerReleaseBooked(t *testing.T) {
	showID := uuid.New()
	userID := uuid.New()
	ledger := newShowLedger(5)
	ledger.hydrate(nil)

	hold, _, _ := ledger.hold(showID, userID, []int{1, 2}, time.Minute, time.Now())
	if _, err := ledger.commit(hold.ID, userID, time.Now()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	ledger.releaseBooked([]int{1, 2})

	if ledger.seats[1] != SeatFree || ledger.seats[2] != SeatFree {
		t.Errorf("booked seats not released: 1=%s 2=%s", ledger.seats[1], ledger.seats[2])
	}
}
