package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
)

func stay(in, out string) models.Stay {
	a, _ := time.Parse("2006-01-02", in)
	b, _ := time.Parse("2006-01-02", out)
	return models.Stay{CheckIn: a, CheckOut: b}
}

func TestMemoryTryClaimConflict(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	if err := l.TryClaim(ctx, 1, stay("2025-01-03", "2025-01-06"), "a"); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if err := l.TryClaim(ctx, 1, stay("2025-01-05", "2025-01-07"), "b"); !errors.Is(err, domain.ErrRoomUnavailable) {
		t.Fatalf("overlapping claim should conflict, got %v", err)
	}
	if l.Holds(1) != 1 {
		t.Fatalf("conflict must not leave a hold, got %d", l.Holds(1))
	}
	if l.HeldNights(1) != 3 {
		t.Fatalf("expected 3 held nights, got %d", l.HeldNights(1))
	}
	// Checkout day is free for the next guest.
	if err := l.TryClaim(ctx, 1, stay("2025-01-06", "2025-01-08"), "c"); err != nil {
		t.Fatalf("adjacent claim: %v", err)
	}
	// Other rooms are independent.
	if err := l.TryClaim(ctx, 2, stay("2025-01-03", "2025-01-06"), "d"); err != nil {
		t.Fatalf("other room: %v", err)
	}
}

func TestMemoryReleaseIdempotent(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()
	s := stay("2025-01-03", "2025-01-06")

	_ = l.TryClaim(ctx, 1, s, "a")
	if err := l.Release(ctx, 1, "a"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := l.Release(ctx, 1, "a"); err != nil {
		t.Fatalf("second release: %v", err)
	}
	if err := l.Release(ctx, 9, "missing"); err != nil {
		t.Fatalf("release unknown: %v", err)
	}
	ok, err := l.IsAvailable(ctx, 1, s)
	if err != nil || !ok {
		t.Fatalf("room should be free after release: %v %v", ok, err)
	}
}

func TestMemoryConcurrentClaimsExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	for round := 0; round < 20; round++ {
		l := NewMemory()
		var (
			wg      sync.WaitGroup
			winners int32
		)
		start := make(chan struct{})
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				// Every range overlaps 2025-01-05.
				s := stay(fmt.Sprintf("2025-01-0%d", 1+i%5), "2025-01-06")
				if err := l.TryClaim(ctx, 1, s, fmt.Sprintf("r-%d", i)); err == nil {
					atomic.AddInt32(&winners, 1)
				} else if !errors.Is(err, domain.ErrRoomUnavailable) {
					t.Errorf("unexpected error: %v", err)
				}
			}(i)
		}
		close(start)
		wg.Wait()

		if winners != 1 {
			t.Fatalf("round %d: %d claims succeeded, want exactly 1", round, winners)
		}
	}
}

func TestMemoryListHoldsRespectsCutoff(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	l := NewMemory()
	l.Now = func() time.Time { return now }

	if err := l.TryClaim(ctx, 1, stay("2025-01-01", "2025-01-03"), "old"); err != nil {
		t.Fatalf("claim: %v", err)
	}
	now = now.Add(time.Hour)
	if err := l.TryClaim(ctx, 2, stay("2025-01-01", "2025-01-03"), "new"); err != nil {
		t.Fatalf("claim: %v", err)
	}

	holds, err := l.ListHolds(ctx, now.Add(-time.Minute), models.Hold{}, 10)
	if err != nil {
		t.Fatalf("list holds: %v", err)
	}
	if len(holds) != 1 || holds[0].ReservationID != "old" || holds[0].RoomID != 1 {
		t.Fatalf("expected only the old hold, got %+v", holds)
	}

	next, err := l.ListHolds(ctx, now.Add(time.Minute), holds[0], 10)
	if err != nil {
		t.Fatalf("list holds: %v", err)
	}
	if len(next) != 1 || next[0].ReservationID != "new" {
		t.Fatalf("cursor should skip the old hold, got %+v", next)
	}
}

func TestMemoryReadsDoNotCreateRooms(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	if err := l.Release(ctx, 7, "r-1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if ok, err := l.IsAvailable(ctx, 8, stay("2025-01-01", "2025-01-02")); err != nil || !ok {
		t.Fatalf("unknown room should be available: %v %v", ok, err)
	}
	if l.Holds(9) != 0 || l.HeldNights(10) != 0 {
		t.Fatalf("unknown rooms hold nothing")
	}
	if _, err := l.ListHolds(ctx, time.Now(), models.Hold{}, 0); err != nil {
		t.Fatalf("list holds: %v", err)
	}
	if len(l.rooms) != 0 {
		t.Fatalf("lookups created %d room entries", len(l.rooms))
	}
}
