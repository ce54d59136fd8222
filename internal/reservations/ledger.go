package reservations

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// showLedger is the per-show critical section. Every mutation of a
// show's seat states goes through its mutex, which is held only for the
// in-memory operation itself, never across I/O. Expired holds are
// reaped lazily at the start of every locked operation, so abandoned
// holds free their seats on the next access even without the sweeper.
type showLedger struct {
	mu    sync.Mutex
	seats []SeatState
	holds map[uuid.UUID]*Hold
}

func newShowLedger(seatCount int) *showLedger {
	return &showLedger{
		seats: make([]SeatState, seatCount),
		holds: make(map[uuid.UUID]*Hold),
	}
}

// hydrate marks the given seats booked. Used once, before the ledger is
// published, to seed it from the durable seat map plus pending bookings.
func (l *showLedger) hydrate(booked []int) {
	for i := range l.seats {
		l.seats[i] = SeatFree
	}
	for _, idx := range booked {
		if idx >= 0 && idx < len(l.seats) {
			l.seats[idx] = SeatBooked
		}
	}
}

// hold claims the seats all-or-nothing. Validation errors are returned
// before any state changes; on a conflict no seat from the request is
// taken. Returns the new hold and any holds reaped on the way in.
func (l *showLedger) hold(showID, userID uuid.UUID, seatIndices []int, ttl time.Duration, now time.Time) (*Hold, []*Hold, error) {
	if len(seatIndices) == 0 {
		return nil, nil, ErrEmptySelection
	}

	seen := make(map[int]bool, len(seatIndices))
	for _, idx := range seatIndices {
		if idx < 0 || idx >= len(l.seats) {
			return nil, nil, &SeatIndexError{Index: idx, Reason: "out of range"}
		}
		if seen[idx] {
			return nil, nil, &SeatIndexError{Index: idx, Reason: "duplicate"}
		}
		seen[idx] = true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	reaped := l.reapLocked(now)

	var unavailable []int
	for _, idx := range seatIndices {
		if l.seats[idx] != SeatFree {
			unavailable = append(unavailable, idx)
		}
	}
	if len(unavailable) > 0 {
		return nil, reaped, &SeatsUnavailableError{Indices: unavailable}
	}

	hold := &Hold{
		ID:          uuid.New(),
		ShowID:      showID,
		UserID:      userID,
		SeatIndices: append([]int(nil), seatIndices...),
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}

	for _, idx := range seatIndices {
		l.seats[idx] = SeatHeld
	}
	l.holds[hold.ID] = hold

	return hold, reaped, nil
}

// release frees the hold's seats. Unknown holds are a no-op so that
// releasing twice, or after expiry reaping, stays idempotent.
func (l *showLedger) release(holdID uuid.UUID) (*Hold, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	hold, ok := l.holds[holdID]
	if !ok {
		return nil, false
	}

	for _, idx := range hold.SeatIndices {
		if l.seats[idx] == SeatHeld {
			l.seats[idx] = SeatFree
		}
	}
	delete(l.holds, holdID)

	return hold, true
}

// commit consumes the hold and flips its seats to booked. Single-use:
// the hold is removed whether it succeeds or is found expired.
func (l *showLedger) commit(holdID uuid.UUID, userID uuid.UUID, now time.Time) (*Hold, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	hold, ok := l.holds[holdID]
	if !ok {
		return nil, ErrHoldNotFound
	}

	if hold.Expired(now) {
		for _, idx := range hold.SeatIndices {
			if l.seats[idx] == SeatHeld {
				l.seats[idx] = SeatFree
			}
		}
		delete(l.holds, holdID)
		return hold, ErrHoldExpired
	}

	if hold.UserID != userID {
		return nil, ErrNotHoldOwner
	}

	for _, idx := range hold.SeatIndices {
		l.seats[idx] = SeatBooked
	}
	delete(l.holds, holdID)

	return hold, nil
}

// releaseBooked returns booked seats to availability. Used when a
// pending booking fails settlement, is cancelled, or expires.
func (l *showLedger) releaseBooked(seatIndices []int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, idx := range seatIndices {
		if idx >= 0 && idx < len(l.seats) && l.seats[idx] == SeatBooked {
			l.seats[idx] = SeatFree
		}
	}
}

// reap removes expired holds and frees their seats
func (l *showLedger) reap(now time.Time) []*Hold {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reapLocked(now)
}

func (l *showLedger) reapLocked(now time.Time) []*Hold {
	var reaped []*Hold
	for id, hold := range l.holds {
		if !hold.Expired(now) {
			continue
		}
		for _, idx := range hold.SeatIndices {
			if l.seats[idx] == SeatHeld {
				l.seats[idx] = SeatFree
			}
		}
		delete(l.holds, id)
		reaped = append(reaped, hold)
	}
	return reaped
}

// snapshot copies the current seat states and counts
func (l *showLedger) snapshot(now time.Time) ([]SeatState, []*Hold) {
	l.mu.Lock()
	defer l.mu.Unlock()

	reaped := l.reapLocked(now)
	seats := make([]SeatState, len(l.seats))
	copy(seats, l.seats)

	return seats, reaped
}
