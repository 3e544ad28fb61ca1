// Package ledger holds the Availability Ledger: the single authority on which
// room-nights are held. Both implementations return domain.ErrRoomUnavailable on conflict.
package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
)

// Memory keeps holds in process. Claims on one room are serialized by that room's
// lock; different rooms never contend.
type Memory struct {
	// Now stamps claims; defaults to time.Now.
	Now func() time.Time

	mu    sync.Mutex
	rooms map[int64]*roomHolds
}

type roomHolds struct {
	mu    sync.Mutex
	holds map[string]hold
}

type hold struct {
	stay      models.Stay
	claimedAt time.Time
}

func NewMemory() *Memory {
	return &Memory{rooms: make(map[int64]*roomHolds)}
}

func (m *Memory) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

// room returns the holds of a room, creating the entry. Only claims call it.
func (m *Memory) room(roomID int64) *roomHolds {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[roomID]
	if !ok {
		r = &roomHolds{holds: make(map[string]hold)}
		m.rooms[roomID] = r
	}
	return r
}

func (m *Memory) lookup(roomID int64) (*roomHolds, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[roomID]
	return r, ok
}

func (m *Memory) TryClaim(ctx context.Context, roomID int64, stay models.Stay, reservationID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r := m.room(roomID)
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, held := range r.holds {
		if id != reservationID && held.stay.Overlaps(stay) {
			return domain.ErrRoomUnavailable
		}
	}
	r.holds[reservationID] = hold{stay: stay, claimedAt: m.now()}
	return nil
}

// Release is idempotent: releasing an unknown hold is a no-op.
func (m *Memory) Release(ctx context.Context, roomID int64, reservationID string) error {
	r, ok := m.lookup(roomID)
	if !ok {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.holds, reservationID)
	return nil
}

// IsAvailable is advisory only; booking must go through TryClaim.
func (m *Memory) IsAvailable(ctx context.Context, roomID int64, stay models.Stay) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r, ok := m.lookup(roomID)
	if !ok {
		return true, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, held := range r.holds {
		if held.stay.Overlaps(stay) {
			return false, nil
		}
	}
	return true, nil
}

// ListHolds returns holds claimed before the cutoff that sort after the cursor,
// ordered by claim time then reservation id. The zero Hold starts from the beginning.
func (m *Memory) ListHolds(ctx context.Context, claimedBefore time.Time, after models.Hold, limit int) ([]models.Hold, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	rooms := make(map[int64]*roomHolds, len(m.rooms))
	for id, r := range m.rooms {
		rooms[id] = r
	}
	m.mu.Unlock()

	out := []models.Hold{}
	for roomID, r := range rooms {
		r.mu.Lock()
		for resID, h := range r.holds {
			held := models.Hold{RoomID: roomID, ReservationID: resID, ClaimedAt: h.claimedAt}
			if held.ClaimedAt.Before(claimedBefore) && holdLess(after, held) {
				out = append(out, held)
			}
		}
		r.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return holdLess(out[i], out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func holdLess(a, b models.Hold) bool {
	if !a.ClaimedAt.Equal(b.ClaimedAt) {
		return a.ClaimedAt.Before(b.ClaimedAt)
	}
	return a.ReservationID < b.ReservationID
}

// Holds returns the number of holds on a room.
func (m *Memory) Holds(roomID int64) int {
	r, ok := m.lookup(roomID)
	if !ok {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.holds)
}

// HeldNights returns the number of room-nights held on a room.
func (m *Memory) HeldNights(roomID int64) int {
	r, ok := m.lookup(roomID)
	if !ok {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, h := range r.holds {
		n += h.stay.Nights()
	}
	return n
}
