package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// Centralizes cache keys and TTL values for the Cinebook application
// Pattern: cinebook:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // cities, movie catalog
	TTL_STATIC_MEDIUM = 12 * time.Hour // theatre data
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour    // offer listings
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute // show listings
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // admin stats
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // show availability summaries
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 30 * time.Second // live seat snapshots
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "cinebook"
)

// ================== CATALOG MODULE ==================

const (
	CACHE_KEY_CITIES       = CACHE_PREFIX + ":catalog:cities:all"
	CACHE_KEY_MOVIES_LIST  = CACHE_PREFIX + ":catalog:movies:list"        // + :city:X
	CACHE_KEY_MOVIE_DETAIL = CACHE_PREFIX + ":catalog:movies:detail:uuid:" // + movie-id
)

const (
	TTL_CITIES       = TTL_STATIC_LONG
	TTL_MOVIES_LIST  = TTL_STATIC_LONG
	TTL_MOVIE_DETAIL = TTL_STATIC_LONG
)

// ================== SHOWS MODULE ==================

const (
	CACHE_KEY_SHOWS_LIST    = CACHE_PREFIX + ":shows:list"          // + :movie:X:city:Y:date:Z
	CACHE_KEY_SHOW_SNAPSHOT = CACHE_PREFIX + ":shows:snapshot:uuid:" // + show-id
)

const (
	TTL_SHOWS_LIST    = TTL_DYNAMIC_SHORT
	TTL_SHOW_SNAPSHOT = TTL_REALTIME_SHORT
)

// ================== OFFERS MODULE ==================

const (
	CACHE_KEY_OFFERS_ACTIVE = CACHE_PREFIX + ":offers:active:all"
)

const (
	TTL_OFFERS_ACTIVE = TTL_SEMI_STATIC_SHORT
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ADMIN_STATS = CACHE_PREFIX + ":analytics:stats:admin"
)

const (
	TTL_ADMIN_STATS = TTL_DYNAMIC_MEDIUM
)

// ================== SEAT HOLD MIRROR ==================

// Keys written by the reservation hold mirror. The TTL on these keys is
// the backing expiry mechanism for abandoned holds.
const (
	HOLD_KEY_PREFIX       = CACHE_PREFIX + ":hold:"       // + hold-id (hash: user, show, seats, expiry)
	HOLD_SEAT_KEY_PREFIX  = CACHE_PREFIX + ":hold_seat:"  // + show-id:seat-index -> hold-id
	HOLD_USER_KEY_PREFIX  = CACHE_PREFIX + ":user_holds:" // + user-id (set of hold-ids)
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_SHOWS_ALL   = CACHE_PREFIX + ":shows:*"
	PATTERN_INVALIDATE_OFFERS_ALL  = CACHE_PREFIX + ":offers:*"
	PATTERN_INVALIDATE_CATALOG_ALL = CACHE_PREFIX + ":catalog:*"
	PATTERN_INVALIDATE_ANALYTICS   = CACHE_PREFIX + ":analytics:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildMoviesListKey(city string) string {
	if city == "" {
		return CACHE_KEY_MOVIES_LIST + ":all"
	}
	return CACHE_KEY_MOVIES_LIST + ":city:" + city
}

func BuildMovieDetailKey(movieID string) string {
	return CACHE_KEY_MOVIE_DETAIL + movieID
}

func BuildShowsListKey(movieID, city, date string) string {
	return fmt.Sprintf("%s:movie:%s:city:%s:date:%s", CACHE_KEY_SHOWS_LIST, movieID, city, date)
}

func BuildShowSnapshotKey(showID string) string {
	return CACHE_KEY_SHOW_SNAPSHOT + showID
}

func BuildHoldKey(holdID string) string {
	return HOLD_KEY_PREFIX + holdID
}

func BuildHoldSeatKey(showID string, seatIndex int) string {
	return fmt.Sprintf("%s%s:%d", HOLD_SEAT_KEY_PREFIX, showID, seatIndex)
}

func BuildUserHoldsKey(userID string) string {
	return HOLD_USER_KEY_PREFIX + userID
}
