package analytics

// PlatformStats is the admin dashboard snapshot: booking counts by
// status, confirmed revenue, catalog sizes, and top-selling movies.
type PlatformStats struct {
	Bookings BookingStats  `json:"bookings"`
	Revenue  RevenueStats  `json:"revenue"`
	Catalog  CatalogStats  `json:"catalog"`
	TopMovies []MovieSales `json:"top_movies"`
}

type BookingStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Released  int64 `json:"released"`
}

type RevenueStats struct {
	ConfirmedCents int64  `json:"confirmed_cents"`
	DiscountCents  int64  `json:"discount_cents"`
	Currency       string `json:"currency"`
}

type CatalogStats struct {
	Cities   int64 `json:"cities"`
	Movies   int64 `json:"movies"`
	Theatres int64 `json:"theatres"`
	Shows    int64 `json:"shows"`
}

// MovieSales ranks a movie by confirmed bookings
type MovieSales struct {
	MovieID      string `json:"movie_id"`
	MovieName    string `json:"movie_name"`
	Bookings     int64  `json:"bookings"`
	SeatsSold    int64  `json:"seats_sold"`
	RevenueCents int64  `json:"revenue_cents"`
}
