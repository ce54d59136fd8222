package reservations

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cinebook/internal/shows"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
)

// SeatMapStore is the durable side of seat occupancy. Implemented by
// the shows repository.
type SeatMapStore interface {
	SeatMap(ctx context.Context, showID uuid.UUID) (shows.SeatMap, error)
	MarkSeatsBooked(ctx context.Context, showID uuid.UUID, seats []int) error
}

// ClaimedSeatSource reports seats claimed by unreleased bookings.
// Needed when a ledger is hydrated after a restart: PENDING seats are
// re-marked booked so the pending-booking sweeper can settle or
// release them, and CONFIRMED seats are re-marked booked even when the
// seat map projection lagged behind the status flip. Implemented by
// the bookings repository.
type ClaimedSeatSource interface {
	ClaimedSeatsByShow(ctx context.Context, showID uuid.UUID) ([]int, error)
}

// HoldMirror mirrors live holds to an external store with a TTL as the
// backing expiry mechanism. Mirror writes are best-effort: claim
// arbitration happens in the ledger, never in the mirror.
type HoldMirror interface {
	StoreHold(ctx context.Context, hold *Hold) error
	DeleteHold(ctx context.Context, hold *Hold) error
}

// Manager interface defines the contract of the reservation core
type Manager interface {
	// Hold claims the seats all-or-nothing, or fails without taking any.
	Hold(ctx context.Context, showID uuid.UUID, seatIndices []int, userID uuid.UUID) (*Hold, error)

	// Release frees a hold's seats. Idempotent.
	Release(ctx context.Context, holdID uuid.UUID) error

	// Commit consumes the hold and marks its seats booked in the ledger.
	// Only the hold's owner may commit it. Single-use.
	Commit(ctx context.Context, holdID uuid.UUID, userID uuid.UUID) (*Hold, error)

	// ConfirmBooked persists committed seats into the durable seat map.
	ConfirmBooked(ctx context.Context, showID uuid.UUID, seats []int) error

	// ReleaseBooked returns committed-but-unconfirmed seats to availability.
	ReleaseBooked(ctx context.Context, showID uuid.UUID, seats []int) error

	// Snapshot returns per-seat availability and counts.
	Snapshot(ctx context.Context, showID uuid.UUID) (*Snapshot, error)

	// ReapExpired sweeps every ledger for expired holds. Returns how
	// many holds were reaped.
	ReapExpired(ctx context.Context) int
}

type ledgerEntry struct {
	once   sync.Once
	ledger *showLedger
	err    error
}

type manager struct {
	store   SeatMapStore
	claimed ClaimedSeatSource
	mirror  HoldMirror
	holdTTL time.Duration
	log     *logger.Logger

	mu        sync.Mutex
	ledgers   map[uuid.UUID]*ledgerEntry
	holdIndex map[uuid.UUID]uuid.UUID // hold id -> show id
}

// NewManager creates the reservation manager. mirror may be nil when
// Redis is unavailable; expiry then relies on lazy and periodic reaping.
func NewManager(store SeatMapStore, claimed ClaimedSeatSource, mirror HoldMirror, holdTTL time.Duration) Manager {
	return &manager{
		store:     store,
		claimed:   claimed,
		mirror:    mirror,
		holdTTL:   holdTTL,
		log:       logger.GetDefault(),
		ledgers:   make(map[uuid.UUID]*ledgerEntry),
		holdIndex: make(map[uuid.UUID]uuid.UUID),
	}
}

// ledgerFor returns the show's ledger, hydrating it on first access.
// Hydration reads the durable store outside any ledger lock; sync.Once
// makes concurrent first accesses wait for a single hydration.
func (m *manager) ledgerFor(ctx context.Context, showID uuid.UUID) (*showLedger, error) {
	m.mu.Lock()
	entry, ok := m.ledgers[showID]
	if !ok {
		entry = &ledgerEntry{}
		m.ledgers[showID] = entry
	}
	m.mu.Unlock()

	entry.once.Do(func() {
		seatMap, err := m.store.SeatMap(ctx, showID)
		if err != nil {
			entry.err = fmt.Errorf("failed to load seat map: %w", err)
			return
		}

		booked := make([]int, 0)
		for idx, taken := range seatMap {
			if taken {
				booked = append(booked, idx)
			}
		}

		// Seats of unreleased bookings are booked in the ledger too.
		// PENDING seats were committed before the restart and either
		// confirm or get released by the pending sweeper; CONFIRMED
		// seats are usually in the seat map already, but the union
		// covers a confirmation whose seat map write never landed.
		if m.claimed != nil {
			claimedSeats, err := m.claimed.ClaimedSeatsByShow(ctx, showID)
			if err != nil {
				entry.err = fmt.Errorf("failed to load claimed seats: %w", err)
				return
			}
			booked = append(booked, claimedSeats...)
		}

		ledger := newShowLedger(len(seatMap))
		ledger.hydrate(booked)
		entry.ledger = ledger
	})

	if entry.err != nil {
		// Allow a later access to retry hydration
		m.mu.Lock()
		if m.ledgers[showID] == entry {
			delete(m.ledgers, showID)
		}
		m.mu.Unlock()
		return nil, entry.err
	}

	return entry.ledger, nil
}

func (m *manager) Hold(ctx context.Context, showID uuid.UUID, seatIndices []int, userID uuid.UUID) (*Hold, error) {
	ledger, err := m.ledgerFor(ctx, showID)
	if err != nil {
		return nil, err
	}

	hold, reaped, err := ledger.hold(showID, userID, seatIndices, m.holdTTL, time.Now())
	m.pruneReaped(ctx, reaped)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.holdIndex[hold.ID] = showID
	m.mu.Unlock()

	if m.mirror != nil {
		if err := m.mirror.StoreHold(ctx, hold); err != nil {
			m.log.ErrorWithContext(ctx, "Hold mirror write failed", err, map[string]interface{}{
				"hold_id": hold.ID.String(),
			})
		}
	}

	m.log.LogHoldCreated(ctx, hold.ID.String(), showID.String(), userID.String(), len(hold.SeatIndices))
	return hold, nil
}

func (m *manager) Release(ctx context.Context, holdID uuid.UUID) error {
	m.mu.Lock()
	showID, ok := m.holdIndex[holdID]
	m.mu.Unlock()
	if !ok {
		// Already released, committed, or reaped
		return nil
	}

	ledger, err := m.ledgerFor(ctx, showID)
	if err != nil {
		return err
	}

	hold, released := ledger.release(holdID)

	m.mu.Lock()
	delete(m.holdIndex, holdID)
	m.mu.Unlock()

	if released {
		m.deleteMirror(ctx, hold)
		m.log.LogHoldReleased(ctx, holdID.String(), showID.String(), "released")
	}
	return nil
}

func (m *manager) Commit(ctx context.Context, holdID uuid.UUID, userID uuid.UUID) (*Hold, error) {
	m.mu.Lock()
	showID, ok := m.holdIndex[holdID]
	m.mu.Unlock()
	if !ok {
		return nil, ErrHoldNotFound
	}

	ledger, err := m.ledgerFor(ctx, showID)
	if err != nil {
		return nil, err
	}

	hold, err := ledger.commit(holdID, userID, time.Now())
	if err != nil {
		if err == ErrHoldExpired {
			m.mu.Lock()
			delete(m.holdIndex, holdID)
			m.mu.Unlock()
			m.deleteMirror(ctx, hold)
			m.log.LogHoldReleased(ctx, holdID.String(), showID.String(), "expired")
		}
		return nil, err
	}

	m.mu.Lock()
	delete(m.holdIndex, holdID)
	m.mu.Unlock()

	m.deleteMirror(ctx, hold)
	return hold, nil
}

func (m *manager) ConfirmBooked(ctx context.Context, showID uuid.UUID, seats []int) error {
	if err := m.store.MarkSeatsBooked(ctx, showID, seats); err != nil {
		return fmt.Errorf("failed to persist booked seats: %w", err)
	}
	return nil
}

func (m *manager) ReleaseBooked(ctx context.Context, showID uuid.UUID, seats []int) error {
	ledger, err := m.ledgerFor(ctx, showID)
	if err != nil {
		return err
	}
	ledger.releaseBooked(seats)
	return nil
}

func (m *manager) Snapshot(ctx context.Context, showID uuid.UUID) (*Snapshot, error) {
	ledger, err := m.ledgerFor(ctx, showID)
	if err != nil {
		return nil, err
	}

	seats, reaped := ledger.snapshot(time.Now())
	m.pruneReaped(ctx, reaped)

	snapshot := &Snapshot{
		ShowID: showID.String(),
		Seats:  seats,
	}
	for _, state := range seats {
		switch state {
		case SeatHeld:
			snapshot.Held++
		case SeatBooked:
			snapshot.Booked++
		default:
			snapshot.Free++
		}
	}

	return snapshot, nil
}

func (m *manager) ReapExpired(ctx context.Context) int {
	m.mu.Lock()
	entries := make(map[uuid.UUID]*ledgerEntry, len(m.ledgers))
	for showID, entry := range m.ledgers {
		entries[showID] = entry
	}
	m.mu.Unlock()

	total := 0
	now := time.Now()
	for showID, entry := range entries {
		if entry.ledger == nil {
			continue
		}
		reaped := entry.ledger.reap(now)
		m.pruneReaped(ctx, reaped)
		for _, hold := range reaped {
			m.log.LogHoldReleased(ctx, hold.ID.String(), showID.String(), "expired")
		}
		total += len(reaped)
	}

	return total
}

// pruneReaped drops reaped holds from the index and the mirror
func (m *manager) pruneReaped(ctx context.Context, reaped []*Hold) {
	if len(reaped) == 0 {
		return
	}

	m.mu.Lock()
	for _, hold := range reaped {
		delete(m.holdIndex, hold.ID)
	}
	m.mu.Unlock()

	for _, hold := range reaped {
		m.deleteMirror(ctx, hold)
	}
}

func (m *manager) deleteMirror(ctx context.Context, hold *Hold) {
	if m.mirror == nil || hold == nil {
		return
	}
	if err := m.mirror.DeleteHold(ctx, hold); err != nil {
		m.log.ErrorWithContext(ctx, "Hold mirror delete failed", err, map[string]interface{}{
			"hold_id": hold.ID.String(),
		})
	}
}
