package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/ledger"
	"hotelbooking/internal/repositories"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	clock  *fakeClock
	ledger *ledger.Memory
	store  *repositories.MemoryReservations
	rates  *repositories.MemoryRates
	rooms  *repositories.MemoryRooms
	svc    ReservationService
}

// newFixture seeds room 101 (type 1) priced 100.00 weekday / 150.00 weekend in IDR
// for the whole of 2025, and room 102 of the same type.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock:  &fakeClock{now: t0},
		ledger: ledger.NewMemory(),
		store:  repositories.NewMemoryReservations(),
		rates:  &repositories.MemoryRates{},
		rooms:  &repositories.MemoryRooms{},
	}
	f.rates.Add(models.RatePeriod{
		ID: 1, RoomTypeID: 1,
		StartDate: day("2025-01-01"), EndDate: day("2025-12-31"),
		WeekdayPriceMinor: 10000, WeekendPriceMinor: 15000,
		Currency: "IDR",
	})
	f.ledger.Now = f.clock.Now
	f.rooms.Add(101, 1)
	f.rooms.Add(102, 1)

	seq := 0
	f.svc = ReservationService{
		Rooms:  f.rooms,
		Quotes: QuoteService{Rates: f.rates},
		Ledger: f.ledger,
		Store:  f.store,
		Clock:  f.clock,
		NewID: func() string {
			seq++
			return fmt.Sprintf("res-%d", seq)
		},
	}
	return f
}

func (f *fixture) book(t *testing.T, roomID int64, in, out string) models.Reservation {
	t.Helper()
	res, err := f.svc.Create(context.Background(), CreateReservationInput{
		RoomID:   roomID,
		CheckIn:  day(in),
		CheckOut: day(out),
		Guest:    models.Guest{Name: "Budi", Phone: "0812 3456 789"},
	})
	if err != nil {
		t.Fatalf("create %d %s..%s: %v", roomID, in, out, err)
	}
	return res
}
