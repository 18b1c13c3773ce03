package booking

import (
	"context"
	"log"
	"time"
)

// DueReleaser reopens every room whose latest reservation has passed
// its checkout while the room is still marked unavailable.  The scan
// and the status flip must be one atomic operation: with several
// service instances sweeping concurrently, a release decided from a
// stale due list could otherwise free a room that was re-booked in the
// meantime.  The call is idempotent; a second pass over the same rooms
// reports zero.
type DueReleaser interface {
	ReleaseDueRooms(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper is the background pass that frees rooms after stay
// completion.  It is the sole mechanism releasing rooms in this
// service.
type Sweeper struct {
	store    DueReleaser
	interval time.Duration
	now      func() time.Time
}

// NewSweeper builds a sweeper that runs every interval.
func NewSweeper(store DueReleaser, interval time.Duration) *Sweeper {
	if store == nil {
		panic("nil dependency passed to NewSweeper")
	}
	return &Sweeper{store: store, interval: interval, now: time.Now}
}

// Run blocks, sweeping once immediately and then on every tick until
// ctx is cancelled.  The upfront sweep frees rooms that went past
// checkout while the process was down.  Errors are logged and the loop
// keeps going; a failed sweep is retried on the next tick.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	released, err := s.SweepOnce(ctx)
	if err != nil {
		log.Printf("sweeper: sweep failed: %v", err)
		return
	}
	if released > 0 {
		log.Printf("sweeper: released %d room(s)", released)
	}
}

// SweepOnce performs a single pass and returns how many rooms were
// actually released.
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	return s.store.ReleaseDueRooms(ctx, s.now())
}
