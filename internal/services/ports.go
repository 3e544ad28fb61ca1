package services

import (
	"context"
	"time"

	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/repositories"
)

// RateSource supplies the rate periods of a room type touching a stay.
type RateSource interface {
	ListForStay(ctx context.Context, roomTypeID int64, stay models.Stay) ([]models.RatePeriod, error)
}

// RoomDirectory maps a room to the room type it is priced by.
type RoomDirectory interface {
	RoomTypeOf(ctx context.Context, roomID int64) (int64, error)
}

// Ledger is the only writer of held room-nights.
type Ledger interface {
	TryClaim(ctx context.Context, roomID int64, stay models.Stay, reservationID string) error
	Release(ctx context.Context, roomID int64, reservationID string) error
	IsAvailable(ctx context.Context, roomID int64, stay models.Stay) (bool, error)
	// ListHolds pages holds claimed before a cutoff; after is the last Hold of the
	// previous page, or the zero Hold.
	ListHolds(ctx context.Context, claimedBefore time.Time, after models.Hold, limit int) ([]models.Hold, error)
}

// ReservationStore persists reservations. Update must fail with domain.ErrStaleState
// when the stored version differs from expectedVersion.
type ReservationStore interface {
	Insert(ctx context.Context, r models.Reservation) error
	GetByID(ctx context.Context, id string) (models.Reservation, error)
	Update(ctx context.Context, r models.Reservation, expectedVersion int64) (models.Reservation, error)
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]models.Reservation, error)
}

type StaffDirectory interface {
	FindByEmail(ctx context.Context, email string) (repositories.StaffUser, error)
}

// Lease lets one sweeper instance run a tick at a time. ok=false means another
// instance holds it.
type Lease interface {
	Acquire(ctx context.Context, ttl time.Duration) (release func(), ok bool, err error)
}
