package services

import (
	"context"
	"log"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
)

// Sweeper cancels reservations whose payment window elapsed and releases their holds.
// It also reconciles the ledger, releasing holds whose reservation no longer holds
// the room or was never stored. Running several sweepers at once is safe: expiring
// or releasing twice is a no-op.
type Sweeper struct {
	Reservations ReservationService
	Store        ReservationStore
	Clock        Clock
	Interval     time.Duration
	Batch        int
	Lease        Lease
	// ReconcileGrace skips holds younger than this so a booking that has claimed
	// but not yet stored its reservation is left alone. Defaults to one minute.
	ReconcileGrace time.Duration
}

// SweepResult summarizes one pass.
type SweepResult struct {
	Scanned  int
	Expired  int
	Skipped  int
	Failed   int
	Released int
}

func (s Sweeper) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

// Run sweeps every Interval until ctx is done.
func (s Sweeper) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[SWEEPER] berjalan setiap %s", interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("[SWEEPER] berhenti")
			return
		case <-ticker.C:
			res, err := s.RunOnce(ctx)
			if err != nil {
				log.Printf("[SWEEPER] gagal: %v", err)
				continue
			}
			if res.Expired > 0 || res.Failed > 0 || res.Released > 0 {
				log.Printf("[SWEEPER] scanned=%d expired=%d skipped=%d failed=%d released=%d",
					res.Scanned, res.Expired, res.Skipped, res.Failed, res.Released)
			}
		}
	}
}

// RunOnce expires overdue pending reservations, then reconciles stale holds.
// Per-reservation failures are logged and counted. A reservation cancelled whose
// hold could not be released is no longer pending; the reconcile step of a later
// pass releases that hold.
func (s Sweeper) RunOnce(ctx context.Context) (SweepResult, error) {
	var res SweepResult

	interval := s.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if s.Lease != nil {
		release, ok, err := s.Lease.Acquire(ctx, interval)
		if err != nil {
			// a broken lease store must not stop expiry; transitions are idempotent
			log.Printf("[SWEEPER] lease error, sweeping anyway: %v", err)
		} else if !ok {
			return res, nil
		} else {
			defer release()
		}
	}

	batch := s.Batch
	if batch <= 0 {
		batch = 200
	}
	due, err := s.Store.ListExpiredPending(ctx, s.now(), batch)
	if err != nil {
		return res, err
	}

	svc := s.Reservations
	svc.RequestID = "sweeper"
	for _, r := range due {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		res.Scanned++
		expired, err := svc.Expire(ctx, r.ID)
		switch {
		case err != nil:
			res.Failed++
			log.Printf("[SWEEPER] expire %s gagal: %v", r.ID, err)
		case expired:
			res.Expired++
		default:
			res.Skipped++
		}
	}

	if err := s.reconcile(ctx, batch, &res); err != nil {
		return res, err
	}
	return res, nil
}

// reconcile walks every hold older than the grace period and releases those whose
// reservation is missing or no longer holds the room.
func (s Sweeper) reconcile(ctx context.Context, batch int, res *SweepResult) error {
	l := s.Reservations.Ledger
	if l == nil {
		return nil
	}
	grace := s.ReconcileGrace
	if grace <= 0 {
		grace = time.Minute
	}
	cutoff := s.now().Add(-grace)

	var cursor models.Hold
	for {
		holds, err := l.ListHolds(ctx, cutoff, cursor, batch)
		if err != nil {
			return err
		}
		for _, h := range holds {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.reconcileHold(ctx, l, h, res)
		}
		if len(holds) < batch {
			return nil
		}
		cursor = holds[len(holds)-1]
	}
}

func (s Sweeper) reconcileHold(ctx context.Context, l Ledger, h models.Hold, res *SweepResult) {
	r, err := s.Store.GetByID(ctx, h.ReservationID)
	switch {
	case domain.IsNotFound(err):
	case err != nil:
		res.Failed++
		log.Printf("[SWEEPER] reconcile %s gagal: %v", h.ReservationID, err)
		return
	case r.HoldsRoom() && r.RoomID == h.RoomID:
		return
	}

	if err := l.Release(ctx, h.RoomID, h.ReservationID); err != nil {
		res.Failed++
		log.Printf("[SWEEPER] release room=%d reservation=%s gagal: %v", h.RoomID, h.ReservationID, err)
		return
	}
	res.Released++
	log.Printf("[SWEEPER] hold dilepas room=%d reservation=%s", h.RoomID, h.ReservationID)
}
