package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/ledger"
)

func TestSweeperCancelsOverdueReservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.book(t, 101, "2025-03-10", "2025-03-12")
	sw := Sweeper{Reservations: f.svc, Store: f.store, Clock: f.clock, Batch: 10}

	f.clock.Set(t0.Add(15 * time.Minute))
	got, err := sw.RunOnce(ctx)
	if err != nil || got.Expired != 0 {
		t.Fatalf("nothing is overdue at the deadline itself: %+v err=%v", got, err)
	}

	f.clock.Set(t0.Add(15*time.Minute + time.Second))
	got, err = sw.RunOnce(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if got.Scanned != 1 || got.Expired != 1 || got.Failed != 0 {
		t.Fatalf("unexpected result: %+v", got)
	}
	cur, _ := f.store.GetByID(ctx, res.ID)
	if cur.Status != models.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", cur.Status)
	}
	if f.ledger.HeldNights(101) != 0 {
		t.Fatalf("hold not released")
	}

	// room is bookable by others again
	f.book(t, 101, "2025-03-10", "2025-03-12")

	got, err = sw.RunOnce(ctx)
	if err != nil || got.Scanned != 0 {
		t.Fatalf("second sweep should find nothing: %+v err=%v", got, err)
	}
}

func TestSweeperSkipsPaidAndRespectsBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	paid := f.book(t, 101, "2025-03-10", "2025-03-12")
	f.book(t, 101, "2025-03-12", "2025-03-14")
	f.book(t, 102, "2025-03-10", "2025-03-12")
	if _, err := f.svc.ConfirmPayment(ctx, paid.ID, "PAY-1"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	f.clock.Advance(time.Hour)
	sw := Sweeper{Reservations: f.svc, Store: f.store, Clock: f.clock, Batch: 1}
	got, err := sw.RunOnce(ctx)
	if err != nil || got.Expired != 1 {
		t.Fatalf("first batch: %+v err=%v", got, err)
	}
	got, err = sw.RunOnce(ctx)
	if err != nil || got.Expired != 1 {
		t.Fatalf("second batch: %+v err=%v", got, err)
	}
	got, _ = sw.RunOnce(ctx)
	if got.Scanned != 0 {
		t.Fatalf("paid reservation must never be swept: %+v", got)
	}
	if f.ledger.HeldNights(101) != 2 || f.ledger.HeldNights(102) != 0 {
		t.Fatalf("unexpected holds: 101=%d 102=%d", f.ledger.HeldNights(101), f.ledger.HeldNights(102))
	}
}

type stubLease struct {
	ok       bool
	err      error
	released int
}

func (l *stubLease) Acquire(ctx context.Context, ttl time.Duration) (func(), bool, error) {
	return func() { l.released++ }, l.ok, l.err
}

func TestSweeperLease(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, 101, "2025-03-10", "2025-03-12")
	f.clock.Advance(time.Hour)

	held := &stubLease{ok: false}
	sw := Sweeper{Reservations: f.svc, Store: f.store, Clock: f.clock, Lease: held}
	got, err := sw.RunOnce(ctx)
	if err != nil || got.Scanned != 0 {
		t.Fatalf("sweep without lease should do nothing: %+v err=%v", got, err)
	}

	broken := &stubLease{err: errors.New("redis down")}
	sw.Lease = broken
	got, err = sw.RunOnce(ctx)
	if err != nil || got.Expired != 1 {
		t.Fatalf("lease outage must not block expiry: %+v err=%v", got, err)
	}

	mine := &stubLease{ok: true}
	sw.Lease = mine
	if _, err := sw.RunOnce(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if mine.released != 1 {
		t.Fatalf("lease not released")
	}
}

func TestSweeperRunStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Sweeper{Reservations: f.svc, Store: f.store, Clock: f.clock, Interval: time.Millisecond}.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("sweeper did not stop")
	}
}

// flakyReleaseLedger fails the next `failures` releases.
type flakyReleaseLedger struct {
	*ledger.Memory
	failures int
}

func (l *flakyReleaseLedger) Release(ctx context.Context, roomID int64, reservationID string) error {
	if l.failures > 0 {
		l.failures--
		return errors.New("connection reset")
	}
	return l.Memory.Release(ctx, roomID, reservationID)
}

func TestSweeperReleasesHoldLeftByFailedRelease(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	flaky := &flakyReleaseLedger{Memory: f.ledger, failures: 2}
	f.svc.Ledger = flaky
	res := f.book(t, 101, "2025-03-10", "2025-03-12")
	sw := Sweeper{Reservations: f.svc, Store: f.store, Clock: f.clock, Batch: 10}

	f.clock.Set(t0.Add(16 * time.Minute))
	got, err := sw.RunOnce(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if got.Failed != 2 || got.Released != 0 {
		t.Fatalf("expected expire and reconcile releases to fail: %+v", got)
	}
	cur, _ := f.store.GetByID(ctx, res.ID)
	if cur.Status != models.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", cur.Status)
	}
	if f.ledger.HeldNights(101) != 2 {
		t.Fatalf("hold should still be stranded, got %d nights", f.ledger.HeldNights(101))
	}

	got, err = sw.RunOnce(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if got.Scanned != 0 || got.Released != 1 || got.Failed != 0 {
		t.Fatalf("second pass should reconcile the stranded hold: %+v", got)
	}
	if f.ledger.HeldNights(101) != 0 {
		t.Fatalf("hold not released: %d nights", f.ledger.HeldNights(101))
	}
	f.book(t, 101, "2025-03-10", "2025-03-12")
}

func TestSweeperReleasesOrphanHoldAfterGrace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	active := f.book(t, 101, "2025-03-10", "2025-03-12")
	orphan := models.Stay{CheckIn: day("2025-03-10"), CheckOut: day("2025-03-12")}
	f.clock.Advance(time.Second)
	if err := f.ledger.TryClaim(ctx, 102, orphan, "never-stored"); err != nil {
		t.Fatalf("claim: %v", err)
	}
	// batch of one: the orphan sits on the second page behind the active hold
	sw := Sweeper{Reservations: f.svc, Store: f.store, Clock: f.clock, Batch: 1, ReconcileGrace: time.Minute}

	f.clock.Set(t0.Add(30 * time.Second))
	got, err := sw.RunOnce(ctx)
	if err != nil || got.Released != 0 {
		t.Fatalf("young holds must be left alone: %+v err=%v", got, err)
	}

	f.clock.Set(t0.Add(2 * time.Minute))
	got, err = sw.RunOnce(ctx)
	if err != nil || got.Released != 1 {
		t.Fatalf("orphan hold should be released: %+v err=%v", got, err)
	}
	if f.ledger.HeldNights(102) != 0 {
		t.Fatalf("orphan hold still present")
	}
	if f.ledger.HeldNights(101) != 2 {
		t.Fatalf("active reservation %s lost its hold", active.ID)
	}
}
