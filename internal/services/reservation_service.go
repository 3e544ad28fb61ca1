package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/utils"

	"github.com/google/uuid"
)

const DefaultPaymentWindow = 15 * time.Minute

// ReservationService drives the reservation lifecycle on top of the ledger.
// It is a value type: handlers copy it and set RequestID per request.
type ReservationService struct {
	Rooms         RoomDirectory
	Quotes        QuoteService
	Ledger        Ledger
	Store         ReservationStore
	Clock         Clock
	PaymentWindow time.Duration
	NewID         func() string
	RequestID     string
}

// CreateReservationInput is a guest's booking request.
type CreateReservationInput struct {
	RoomID   int64
	CheckIn  time.Time
	CheckOut time.Time
	Guest    models.Guest
}

func (s ReservationService) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s ReservationService) window() time.Duration {
	if s.PaymentWindow > 0 {
		return s.PaymentWindow
	}
	return DefaultPaymentWindow
}

func (s ReservationService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s ReservationService) logEvent(action, msg string) {
	utils.LogEvent(s.RequestID, "reservation", action, msg)
}

// Create prices the stay, claims the room-nights and stores a (booked, pending)
// reservation with a payment deadline. A conflict is returned as-is, never retried.
func (s ReservationService) Create(ctx context.Context, in CreateReservationInput) (models.Reservation, error) {
	guest := models.Guest{
		Name:  utils.NormalizeSpace(in.Guest.Name),
		Phone: utils.NormalizePhone(in.Guest.Phone),
		Email: strings.ToLower(strings.TrimSpace(in.Guest.Email)),
	}
	if in.RoomID <= 0 {
		return models.Reservation{}, domain.ValidationError{Field: "room_id", Msg: "id tidak valid"}
	}
	if guest.Name == "" {
		return models.Reservation{}, domain.ValidationError{Field: "guest_name", Msg: "wajib diisi"}
	}
	if guest.Phone == "" {
		return models.Reservation{}, domain.ValidationError{Field: "guest_phone", Msg: "wajib diisi"}
	}

	stay, err := domain.NewStay(in.CheckIn, in.CheckOut)
	if err != nil {
		return models.Reservation{}, err
	}
	roomTypeID, err := s.Rooms.RoomTypeOf(ctx, in.RoomID)
	if err != nil {
		return models.Reservation{}, err
	}
	quote, err := s.Quotes.Quote(ctx, roomTypeID, stay)
	if err != nil {
		return models.Reservation{}, err
	}

	id := s.newID()
	if err := s.Ledger.TryClaim(ctx, in.RoomID, stay, id); err != nil {
		if errors.Is(err, domain.ErrRoomUnavailable) {
			s.logEvent("create", fmt.Sprintf("room_id=%d %s..%s unavailable", in.RoomID, utils.FormatDate(stay.CheckIn), utils.FormatDate(stay.CheckOut)))
			return models.Reservation{}, err
		}
		return models.Reservation{}, domain.InternalError{Msg: "gagal mengunci kamar", Err: err}
	}

	now := s.now()
	deadline := now.Add(s.window())
	res := models.Reservation{
		ID:              id,
		RoomID:          in.RoomID,
		RoomTypeID:      roomTypeID,
		Guest:           guest,
		Stay:            stay,
		Nights:          quote.Nights,
		SubtotalMinor:   quote.SubtotalMinor,
		DiscountMinor:   quote.DiscountMinor,
		TotalMinor:      quote.GrandTotalMinor,
		Currency:        quote.Currency,
		Status:          models.StatusBooked,
		Payment:         models.PaymentPending,
		PaymentDeadline: &deadline,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Store.Insert(ctx, res); err != nil {
		// The hold belongs to a reservation that was never stored; give it back.
		if rerr := s.Ledger.Release(context.WithoutCancel(ctx), in.RoomID, id); rerr != nil {
			s.logEvent("create", "release after failed insert: "+rerr.Error())
		}
		return models.Reservation{}, domain.InternalError{Msg: "gagal menyimpan reservasi", Err: err}
	}

	s.logEvent("create", fmt.Sprintf("id=%s room_id=%d nights=%d total=%d %s deadline=%s",
		id, in.RoomID, res.Nights, res.TotalMinor, res.Currency, utils.FormatDateTime(deadline)))
	return res, nil
}

func (s ReservationService) Get(ctx context.Context, id string) (models.Reservation, error) {
	if strings.TrimSpace(id) == "" {
		return models.Reservation{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	return s.Store.GetByID(ctx, id)
}

// IsAvailable is advisory; Create is the only authoritative check.
func (s ReservationService) IsAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	if roomID <= 0 {
		return false, domain.ValidationError{Field: "room_id", Msg: "id tidak valid"}
	}
	stay, err := domain.NewStay(checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return s.Ledger.IsAvailable(ctx, roomID, stay)
}

// ConfirmPayment handles the gateway (or manual) payment confirmation.
func (s ReservationService) ConfirmPayment(ctx context.Context, id, paymentRef string) (models.Reservation, error) {
	paymentRef = strings.TrimSpace(paymentRef)
	if paymentRef == "" {
		return models.Reservation{}, domain.ValidationError{Field: "payment_reference", Msg: "wajib diisi"}
	}
	res, _, err := s.apply(ctx, id, domain.EventConfirmPayment, paymentRef)
	return res, err
}

// ChangeStatus applies a staff action: checked_in, checked_out or cancelled.
func (s ReservationService) ChangeStatus(ctx context.Context, id string, status models.ReservationStatus) (models.Reservation, error) {
	switch status {
	case models.StatusBooked, models.StatusCheckedIn, models.StatusCheckedOut, models.StatusCancelled:
	default:
		return models.Reservation{}, domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
	}
	ev, ok := domain.EventForStatus(status)
	if !ok {
		cur, err := s.Get(ctx, id)
		if err != nil {
			return models.Reservation{}, err
		}
		err = domain.InvalidTransitionError{ReservationID: id, Status: string(cur.Status), Payment: string(cur.Payment), Event: "set_" + string(status)}
		s.logEvent("change_status", err.Error())
		return cur, err
	}
	res, _, err := s.apply(ctx, id, ev, "")
	return res, err
}

// Refund moves a cancelled, paid reservation to refunded.
func (s ReservationService) Refund(ctx context.Context, id string) (models.Reservation, error) {
	res, _, err := s.apply(ctx, id, domain.EventRefund, "")
	return res, err
}

// Expire cancels an overdue unpaid reservation. Reservations that were already
// cancelled or paid in the meantime are reported as not expired, without error.
func (s ReservationService) Expire(ctx context.Context, id string) (bool, error) {
	_, changed, err := s.apply(ctx, id, domain.EventExpire, "")
	return changed, err
}

func (s ReservationService) apply(ctx context.Context, id string, ev domain.Event, paymentRef string) (models.Reservation, bool, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return models.Reservation{}, false, err
	}

	tr, err := domain.Apply(cur, ev, s.now(), paymentRef)
	if err != nil {
		s.logAnomaly(cur, ev, paymentRef, err)
		return cur, false, err
	}
	if !tr.Changed {
		return cur, false, nil
	}

	saved, err := s.Store.Update(ctx, tr.Next, cur.Version)
	if err != nil {
		if !errors.Is(err, domain.ErrStaleState) {
			return cur, false, domain.InternalError{Msg: "gagal menyimpan reservasi", Err: err}
		}
		return s.classifyStale(ctx, cur, ev, paymentRef)
	}

	if tr.ReleaseHold {
		if err := s.Ledger.Release(ctx, saved.RoomID, saved.ID); err != nil {
			s.logEvent(string(ev), fmt.Sprintf("id=%s release failed: %v", saved.ID, err))
			return saved, true, domain.InternalError{Msg: "status tersimpan tetapi hold kamar gagal dilepas", Err: err}
		}
	}

	s.logEvent(string(ev), fmt.Sprintf("id=%s (%s,%s) -> (%s,%s) v%d",
		saved.ID, cur.Status, cur.Payment, saved.Status, saved.Payment, saved.Version))
	return saved, true, nil
}

// classifyStale re-reads a reservation after losing an optimistic write. The event
// is not re-applied; the fresh state only decides which error the loser reports.
func (s ReservationService) classifyStale(ctx context.Context, prev models.Reservation, ev domain.Event, paymentRef string) (models.Reservation, bool, error) {
	fresh, err := s.Get(ctx, prev.ID)
	if err != nil {
		return prev, false, domain.ErrStaleState
	}
	switch {
	case ev == domain.EventExpire:
		// another sweep or the payment won; nothing left to expire
		return fresh, false, nil
	case ev == domain.EventConfirmPayment && fresh.Status == models.StatusCancelled:
		s.logAnomaly(fresh, ev, paymentRef, domain.ErrLatePaymentAfterCancellation)
		return fresh, false, domain.ErrLatePaymentAfterCancellation
	}
	s.logEvent(string(ev), fmt.Sprintf("id=%s stale write v%d, now (%s,%s) v%d",
		prev.ID, prev.Version, fresh.Status, fresh.Payment, fresh.Version))
	return fresh, false, domain.ErrStaleState
}

func (s ReservationService) logAnomaly(r models.Reservation, ev domain.Event, paymentRef string, err error) {
	if errors.Is(err, domain.ErrLatePaymentAfterCancellation) {
		s.logEvent("late_payment", fmt.Sprintf("id=%s payment_reference=%s total=%d %s needs manual reconciliation",
			r.ID, paymentRef, r.TotalMinor, r.Currency))
		return
	}
	s.logEvent(string(ev), err.Error())
}
