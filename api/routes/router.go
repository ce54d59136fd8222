// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"cinebook/internal/analytics"
	"cinebook/internal/bookings"
	"cinebook/internal/catalog"
	"cinebook/internal/notifications"
	"cinebook/internal/offers"
	"cinebook/internal/reservations"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/shows"
	"cinebook/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer

	cacheService   cache.Service
	showRepo       shows.Repository
	bookingRepo    bookings.Repository
	reservationMgr reservations.Manager
	bookingService bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupSharedDependencies()

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupCatalogRoutes(api)
		r.setupShowRoutes(api)
		r.setupReservationRoutes(api)
		r.setupOfferRoutes(api)
		r.setupBookingRoutes(api)
		r.setupAdminRoutes(api)
	}
}

// setupSharedDependencies wires the repositories and the reservation
// manager that several route groups share
func (r *Router) setupSharedDependencies() {
	r.cacheService = cache.NewService(r.db.GetRedisClient())
	r.showRepo = shows.NewRepository(r.db.GetPostgreSQL())
	r.bookingRepo = bookings.NewRepository(r.db.GetPostgreSQL())

	mirror := reservations.NewRedisHoldMirror(r.db.GetRedisClient())
	r.reservationMgr = reservations.NewManager(
		r.showRepo,
		r.bookingRepo,
		mirror,
		r.config.Redis.SeatHoldTTL,
	)
}

// ReservationManager exposes the manager for the hold expiry sweeper
func (r *Router) ReservationManager() reservations.Manager {
	return r.reservationMgr
}

// BookingService exposes the booking service for the pending sweeper
func (r *Router) BookingService() bookings.Service {
	return r.bookingService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinebook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupCatalogRoutes configures city and movie browsing routes
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	catalogService := catalog.NewService(catalogRepo, r.cacheService)
	catalogController := catalog.NewController(catalogService)

	catalog.SetupCatalogRoutes(rg, catalogController)
}

// setupShowRoutes configures show listing routes
func (r *Router) setupShowRoutes(rg *gin.RouterGroup) {
	showService := shows.NewService(r.showRepo, r.cacheService)
	showController := shows.NewController(showService)

	shows.SetupShowRoutes(rg, showController)
}

// setupReservationRoutes configures seat snapshot and hold routes
func (r *Router) setupReservationRoutes(rg *gin.RouterGroup) {
	reservationController := reservations.NewController(r.reservationMgr)

	reservations.SetupReservationRoutes(rg, reservationController)
}

// setupOfferRoutes configures public offer routes
func (r *Router) setupOfferRoutes(rg *gin.RouterGroup) {
	offerRepo := offers.NewRepository(r.db.GetPostgreSQL())
	offerService := offers.NewService(offerRepo, r.cacheService)
	offerController := offers.NewController(offerService)

	offers.SetupOfferRoutes(rg, offerController)
}

// setupBookingRoutes configures booking and settlement routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	offerRepo := offers.NewRepository(r.db.GetPostgreSQL())
	offerService := offers.NewService(offerRepo, r.cacheService)
	gateway := bookings.NewSimulatedGateway(r.config.Payment.DeclineMethod)

	r.bookingService = bookings.NewService(
		r.bookingRepo,
		r.showRepo,
		r.reservationMgr,
		offerService,
		gateway,
		r.producer,
		r.config.Booking.PendingLifetime,
		r.config.Payment.Currency,
	)
	bookingController := bookings.NewController(r.bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupAdminRoutes configures offer management and platform stats
func (r *Router) setupAdminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")

	offerRepo := offers.NewRepository(r.db.GetPostgreSQL())
	offerService := offers.NewService(offerRepo, r.cacheService)
	offerController := offers.NewController(offerService)
	offers.SetupAdminOfferRoutes(admin, offerController)

	statsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	statsService := analytics.NewService(statsRepo, r.cacheService, r.config.Payment.Currency)
	statsController := analytics.NewController(statsService)
	analytics.SetupAnalyticsRoutes(admin, statsController)
}
