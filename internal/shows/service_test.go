package shows

import (
	"context"
	"testing"

	"cinebook/internal/catalog"

	"github.com/google/uuid"
)

type fakeShowRepo struct {
	shows []Show
}

func (f *fakeShowRepo) GetByID(ctx context.Context, id uuid.UUID) (*Show, error) {
	for i := range f.shows {
		if f.shows[i].ID == id {
			return &f.shows[i], nil
		}
	}
	return nil, ErrShowNotFound
}

func (f *fakeShowRepo) List(ctx context.Context, movieID uuid.UUID, city, date string) ([]Show, error) {
	var out []Show
	for _, show := range f.shows {
		if show.MovieID != movieID {
			continue
		}
		if date != "" && show.Date != date {
			continue
		}
		out = append(out, show)
	}
	return out, nil
}

func (f *fakeShowRepo) SeatMap(ctx context.Context, showID uuid.UUID) (SeatMap, error) {
	show, err := f.GetByID(ctx, showID)
	if err != nil {
		return nil, err
	}
	return show.SeatMap, nil
}

func (f *fakeShowRepo) MarkSeatsBooked(ctx context.Context, showID uuid.UUID, seats []int) error {
	show, err := f.GetByID(ctx, showID)
	if err != nil {
		return err
	}
	for _, idx := range seats {
		show.SeatMap[idx] = true
	}
	return nil
}

func seatMapWithBooked(size int, booked ...int) SeatMap {
	m := make(SeatMap, size)
	for _, idx := range booked {
		m[idx] = true
	}
	return m
}

func TestListByTheatreGroupsAndDerivesAvailability(t *testing.T) {
	movieID := uuid.New()
	theatreA := &catalog.Theatre{ID: uuid.New(), Name: "Galaxy Multiplex", Address: "Bandra West"}
	theatreB := &catalog.Theatre{ID: uuid.New(), Name: "Orion Cinemas", Address: "Rajajinagar"}

	repo := &fakeShowRepo{
		shows: []Show{
			{
				ID: uuid.New(), MovieID: movieID, TheatreID: theatreA.ID, Theatre: theatreA,
				Date: "2026-09-01", Time: "10:30", PriceCents: 25000,
				SeatCount: 10, SeatMap: seatMapWithBooked(10, 0, 1, 2),
			},
			{
				ID: uuid.New(), MovieID: movieID, TheatreID: theatreB.ID, Theatre: theatreB,
				Date: "2026-09-01", Time: "14:00", PriceCents: 18000,
				SeatCount: 8, SeatMap: seatMapWithBooked(8),
			},
			{
				ID: uuid.New(), MovieID: movieID, TheatreID: theatreA.ID, Theatre: theatreA,
				Date: "2026-09-01", Time: "18:30", PriceCents: 30000,
				SeatCount: 10, SeatMap: seatMapWithBooked(10, 5),
			},
		},
	}

	svc := NewService(repo, nil)
	grouped, err := svc.ListByTheatre(context.Background(), ListQuery{
		MovieID: movieID.String(),
		City:    "Mumbai",
		Date:    "2026-09-01",
	})
	if err != nil {
		t.Fatalf("ListByTheatre: %v", err)
	}

	if len(grouped) != 2 {
		t.Fatalf("expected 2 theatre groups, got %d", len(grouped))
	}

	var groupA *TheatreShows
	for i := range grouped {
		if grouped[i].TheatreID == theatreA.ID.String() {
			groupA = &grouped[i]
		}
	}
	if groupA == nil {
		t.Fatal("theatre A missing from grouping")
	}
	if groupA.Theatre != "Galaxy Multiplex" || groupA.Address != "Bandra West" {
		t.Errorf("theatre metadata not carried: %+v", groupA)
	}
	if len(groupA.Shows) != 2 {
		t.Fatalf("expected 2 shows for theatre A, got %d", len(groupA.Shows))
	}
	if got := groupA.Shows[0].AvailableSeats; got != 7 {
		t.Errorf("expected 7 available seats after 3 bookings, got %d", got)
	}
	if got := groupA.Shows[1].AvailableSeats; got != 9 {
		t.Errorf("expected 9 available seats after 1 booking, got %d", got)
	}
}

func TestListByTheatreRejectsBadMovieID(t *testing.T) {
	svc := NewService(&fakeShowRepo{}, nil)

	_, err := svc.ListByTheatre(context.Background(), ListQuery{MovieID: "not-a-uuid", City: "Mumbai"})
	if err == nil {
		t.Fatal("expected error for malformed movie id")
	}
}

func TestListByTheatreDateFilter(t *testing.T) {
	movieID := uuid.New()
	theatre := &catalog.Theatre{ID: uuid.New(), Name: "Capital Talkies"}

	repo := &fakeShowRepo{
		shows: []Show{
			{ID: uuid.New(), MovieID: movieID, TheatreID: theatre.ID, Theatre: theatre,
				Date: "2026-09-01", Time: "10:30", SeatCount: 4, SeatMap: make(SeatMap, 4)},
			{ID: uuid.New(), MovieID: movieID, TheatreID: theatre.ID, Theatre: theatre,
				Date: "2026-09-02", Time: "10:30", SeatCount: 4, SeatMap: make(SeatMap, 4)},
		},
	}

	svc := NewService(repo, nil)
	grouped, err := svc.ListByTheatre(context.Background(), ListQuery{
		MovieID: movieID.String(),
		City:    "Delhi",
		Date:    "2026-09-02",
	})
	if err != nil {
		t.Fatalf("ListByTheatre: %v", err)
	}
	if len(grouped) != 1 || len(grouped[0].Shows) != 1 {
		t.Fatalf("expected a single show for the filtered date, got %+v", grouped)
	}
	if grouped[0].Shows[0].Date != "2026-09-02" {
		t.Errorf("wrong show returned: %+v", grouped[0].Shows[0])
	}
}
