package reservations

import (
	"context"
	"log"
	"time"
)

// Sweeper periodically reaps expired holds so abandoned selections free
// their seats without any user action. Lazy reaping on ledger access
// covers hot shows; the sweeper covers idle ones.
type Sweeper struct {
	manager  Manager
	interval time.Duration
	done     chan struct{}
}

// NewSweeper creates a hold expiry sweeper
func NewSweeper(manager Manager, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		manager:  manager,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start starts the background sweep loop
func (s *Sweeper) Start(ctx context.Context) {
	log.Printf("Started hold expiry sweeper with %v interval", s.interval)
	go s.run(ctx)
}

// Stop stops the background sweep loop
func (s *Sweeper) Stop() {
	close(s.done)
	log.Println("Hold expiry sweeper stopped")
}

func (s *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if reaped := s.manager.ReapExpired(ctx); reaped > 0 {
				log.Printf("Reaped %d expired seat holds", reaped)
			}
		case <-s.done:
			return
		case <-ctx.Done():
			return
		}
	}
}
