package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"cinebook/internal/catalog"
	"cinebook/internal/offers"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/shows"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Cinebook Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"payments",
		"bookings",
		"shows",
		"offers",
		"theatres",
		"movies",
		"cities",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	cityIDs, err := s.SeedCities()
	if err != nil {
		return fmt.Errorf("failed to seed cities: %w", err)
	}

	movieIDs, err := s.SeedMovies()
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	theatreIDs, err := s.SeedTheatres(cityIDs)
	if err != nil {
		return fmt.Errorf("failed to seed theatres: %w", err)
	}

	if err := s.SeedShows(movieIDs, theatreIDs); err != nil {
		return fmt.Errorf("failed to seed shows: %w", err)
	}

	if err := s.SeedOffers(); err != nil {
		return fmt.Errorf("failed to seed offers: %w", err)
	}

	// Clear Redis so listings and seat snapshots start fresh
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedCities creates the launch cities
func (s *Seeder) SeedCities() (map[string]uuid.UUID, error) {
	fmt.Println("  🏙️ Seeding cities...")

	cityIDs := make(map[string]uuid.UUID)

	for _, name := range []string{"Mumbai", "Bengaluru", "Delhi"} {
		city := catalog.City{
			ID:        uuid.New(),
			Name:      name,
			CreatedAt: time.Now(),
		}
		if err := s.db.PostgreSQL.Create(&city).Error; err != nil {
			return nil, fmt.Errorf("failed to create city %s: %w", name, err)
		}
		cityIDs[name] = city.ID
		fmt.Printf("    ✅ Created city: %s\n", name)
	}

	return cityIDs, nil
}

// SeedMovies creates the movie catalog
func (s *Seeder) SeedMovies() ([]uuid.UUID, error) {
	fmt.Println("  🎬 Seeding movies...")

	var movieIDs []uuid.UUID

	moviesData := []struct {
		name     string
		genre    string
		duration string
		language string
	}{
		{"Interstellar Redux", "Sci-Fi", "169", "English"},
		{"Monsoon Wedding Season", "Drama", "128", "Hindi"},
		{"The Last Heist", "Thriller", "142", "English"},
		{"Chennai Express Returns", "Comedy", "155", "Tamil"},
	}

	for _, movieData := range moviesData {
		movie := catalog.Movie{
			ID:        uuid.New(),
			Name:      movieData.name,
			Genre:     movieData.genre,
			Duration:  movieData.duration,
			Language:  movieData.language,
			CreatedAt: time.Now(),
		}
		if err := s.db.PostgreSQL.Create(&movie).Error; err != nil {
			return nil, fmt.Errorf("failed to create movie %s: %w", movie.Name, err)
		}
		movieIDs = append(movieIDs, movie.ID)
		fmt.Printf("    ✅ Created movie: %s\n", movie.Name)
	}

	return movieIDs, nil
}

// SeedTheatres creates theatres across cities
func (s *Seeder) SeedTheatres(cityIDs map[string]uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  🏟️ Seeding theatres...")

	var theatreIDs []uuid.UUID

	theatresData := []struct {
		name    string
		city    string
		address string
	}{
		{"PVX Phoenix", "Mumbai", "Phoenix Mall, Lower Parel"},
		{"Galaxy Multiplex", "Mumbai", "Linking Road, Bandra West"},
		{"Orion Cinemas", "Bengaluru", "Orion Mall, Rajajinagar"},
		{"Forum Grand", "Bengaluru", "Forum Mall, Koramangala"},
		{"Capital Talkies", "Delhi", "Connaught Place"},
	}

	for _, theatreData := range theatresData {
		cityID, ok := cityIDs[theatreData.city]
		if !ok {
			return nil, fmt.Errorf("unknown city %s", theatreData.city)
		}

		theatre := catalog.Theatre{
			ID:      uuid.New(),
			Name:    theatreData.name,
			CityID:  cityID,
			Address: theatreData.address,
		}
		if err := s.db.PostgreSQL.Create(&theatre).Error; err != nil {
			return nil, fmt.Errorf("failed to create theatre %s: %w", theatre.Name, err)
		}
		theatreIDs = append(theatreIDs, theatre.ID)
		fmt.Printf("    ✅ Created theatre: %s (%s)\n", theatre.Name, theatreData.city)
	}

	return theatreIDs, nil
}

// SeedShows creates shows for the next few days with fresh seat maps
func (s *Seeder) SeedShows(movieIDs, theatreIDs []uuid.UUID) error {
	fmt.Println("  🎟️ Seeding shows...")

	showTimes := []string{"10:30", "14:00", "18:30", "21:45"}
	prices := []int64{18000, 22000, 25000, 30000} // cents

	created := 0
	for dayOffset := 0; dayOffset < 3; dayOffset++ {
		date := time.Now().AddDate(0, 0, dayOffset).Format("2006-01-02")

		for theatreIdx, theatreID := range theatreIDs {
			// Two movies per theatre per day keeps the dataset small
			for slot := 0; slot < 2; slot++ {
				movieID := movieIDs[(theatreIdx+slot)%len(movieIDs)]
				seatCount := 48

				show := shows.Show{
					ID:         uuid.New(),
					MovieID:    movieID,
					TheatreID:  theatreID,
					Date:       date,
					Time:       showTimes[(theatreIdx+slot)%len(showTimes)],
					PriceCents: prices[(theatreIdx+slot)%len(prices)],
					SeatCount:  seatCount,
					SeatMap:    make(shows.SeatMap, seatCount),
				}
				if err := s.db.PostgreSQL.Create(&show).Error; err != nil {
					return fmt.Errorf("failed to create show: %w", err)
				}
				created++
			}
		}
	}

	fmt.Printf("    ✅ Created %d shows across 3 days\n", created)
	return nil
}

// SeedOffers creates discount codes, including an expired one for testing
func (s *Seeder) SeedOffers() error {
	fmt.Println("  🎁 Seeding offers...")

	today := time.Now()

	offersData := []offers.Offer{
		{
			ID:               uuid.New(),
			Code:             "SAVE20",
			Description:      "20% off up to INR 50",
			DiscountPercent:  20,
			MaxDiscountCents: 5000,
			ValidFrom:        today.AddDate(0, 0, -7).Format("2006-01-02"),
			ValidTo:          today.AddDate(0, 1, 0).Format("2006-01-02"),
		},
		{
			ID:               uuid.New(),
			Code:             "WEEKEND10",
			Description:      "10% off up to INR 30",
			DiscountPercent:  10,
			MaxDiscountCents: 3000,
			ValidFrom:        today.Format("2006-01-02"),
			ValidTo:          today.AddDate(0, 0, 14).Format("2006-01-02"),
		},
		{
			ID:               uuid.New(),
			Code:             "OLD10",
			Description:      "Expired launch offer",
			DiscountPercent:  10,
			MaxDiscountCents: 10000,
			ValidFrom:        today.AddDate(0, -2, 0).Format("2006-01-02"),
			ValidTo:          today.AddDate(0, -1, 0).Format("2006-01-02"),
		},
	}

	for i := range offersData {
		if err := s.db.PostgreSQL.Create(&offersData[i]).Error; err != nil {
			return fmt.Errorf("failed to create offer %s: %w", offersData[i].Code, err)
		}
		fmt.Printf("    ✅ Created offer: %s\n", offersData[i].Code)
	}

	return nil
}
