package bookings

import (
	"context"
	"log"
	"time"
)

// Sweeper releases PENDING bookings whose payment window has lapsed so
// their seats go back on sale without waiting for the user to return.
type Sweeper struct {
	service  Service
	interval time.Duration
	done     chan struct{}
}

// NewSweeper creates a pending booking expiry sweeper
func NewSweeper(service Service, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		service:  service,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start starts the background sweep loop
func (s *Sweeper) Start(ctx context.Context) {
	log.Printf("Started pending booking sweeper with %v interval", s.interval)
	go s.run(ctx)
}

// Stop stops the background sweep loop
func (s *Sweeper) Stop() {
	close(s.done)
	log.Println("Pending booking sweeper stopped")
}

func (s *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			released, err := s.service.ReleaseExpired(ctx)
			if err != nil {
				log.Printf("Pending booking sweep failed: %v", err)
				continue
			}
			if released > 0 {
				log.Printf("Released %d expired pending bookings", released)
			}
		case <-s.done:
			return
		case <-ctx.Done():
			return
		}
	}
}
