package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
)

// The Memory* stores back STORE_BACKEND=memory and the service tests. They follow
// the same contracts as their MySQL counterparts, including optimistic versioning.

type MemoryRates struct {
	mu      sync.RWMutex
	periods []models.RatePeriod
}

func (m *MemoryRates) Add(periods ...models.RatePeriod) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.periods = append(m.periods, periods...)
}

func (m *MemoryRates) ListForStay(ctx context.Context, roomTypeID int64, stay models.Stay) ([]models.RatePeriod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.RatePeriod{}
	for _, p := range m.periods {
		if p.RoomTypeID == roomTypeID && p.StartDate.Before(stay.CheckOut) && !p.EndDate.Before(stay.CheckIn) {
			out = append(out, p)
		}
	}
	return out, nil
}

type MemoryRooms struct {
	mu    sync.RWMutex
	types map[int64]int64
}

func (m *MemoryRooms) Add(roomID, roomTypeID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.types == nil {
		m.types = make(map[int64]int64)
	}
	m.types[roomID] = roomTypeID
}

func (m *MemoryRooms) RoomTypeOf(ctx context.Context, roomID int64) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.types[roomID]
	if !ok {
		return 0, domain.NotFoundError{Resource: "room"}
	}
	return t, nil
}

type MemoryReservations struct {
	mu   sync.Mutex
	rows map[string]models.Reservation
}

func NewMemoryReservations() *MemoryReservations {
	return &MemoryReservations{rows: make(map[string]models.Reservation)}
}

func (m *MemoryReservations) Insert(ctx context.Context, r models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[r.ID]; ok {
		return domain.ConflictError{Resource: "reservation", Msg: "id sudah dipakai"}
	}
	m.rows[r.ID] = r
	return nil
}

func (m *MemoryReservations) GetByID(ctx context.Context, id string) (models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return models.Reservation{}, domain.NotFoundError{Resource: "reservation"}
	}
	return r, nil
}

func (m *MemoryReservations) Update(ctx context.Context, r models.Reservation, expectedVersion int64) (models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[r.ID]
	if !ok || cur.Version != expectedVersion {
		return models.Reservation{}, domain.ErrStaleState
	}
	r.Version = expectedVersion + 1
	m.rows[r.ID] = r
	return r, nil
}

func (m *MemoryReservations) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.Reservation{}
	for _, r := range m.rows {
		if r.Status == models.StatusBooked && r.Payment == models.PaymentPending &&
			r.PaymentDeadline != nil && r.PaymentDeadline.Before(now) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDeadline.Before(*out[j].PaymentDeadline) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type MemoryStaff struct {
	mu    sync.RWMutex
	users map[string]StaffUser
}

func (m *MemoryStaff) Add(u StaffUser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.users == nil {
		m.users = make(map[string]StaffUser)
	}
	m.users[strings.ToLower(u.Email)] = u
}

func (m *MemoryStaff) FindByEmail(ctx context.Context, email string) (StaffUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return StaffUser{}, domain.NotFoundError{Resource: "staff user"}
	}
	return u, nil
}
