package domain

import (
	"time"

	"hotelbooking/internal/domain/models"
)

type Event string

const (
	EventConfirmPayment Event = "confirm_payment"
	EventExpire         Event = "expire"
	EventCancel         Event = "cancel"
	EventCheckIn        Event = "check_in"
	EventCheckOut       Event = "check_out"
	EventRefund         Event = "refund"
)

// Transition is the result of applying an event to a reservation.
// Changed is false for tolerated no-ops (duplicate callbacks, repeated sweeps).
type Transition struct {
	Next        models.Reservation
	Changed     bool
	ReleaseHold bool
}

// EventForStatus maps a staff-requested status to its lifecycle event.
func EventForStatus(status models.ReservationStatus) (Event, bool) {
	switch status {
	case models.StatusCheckedIn:
		return EventCheckIn, true
	case models.StatusCheckedOut:
		return EventCheckOut, true
	case models.StatusCancelled:
		return EventCancel, true
	default:
		return "", false
	}
}

// Apply runs the reservation state machine. It never mutates r.
func Apply(r models.Reservation, ev Event, now time.Time, paymentRef string) (Transition, error) {
	next := r
	next.UpdatedAt = now
	invalid := InvalidTransitionError{
		ReservationID: r.ID,
		Status:        string(r.Status),
		Payment:       string(r.Payment),
		Event:         string(ev),
	}

	switch ev {
	case EventConfirmPayment:
		if r.Status == models.StatusCheckedOut {
			return Transition{}, invalid
		}
		if r.Payment == models.PaymentPaid && paymentRef != "" && r.PaymentReference == paymentRef {
			return Transition{Next: r}, nil
		}
		if r.Status == models.StatusCancelled {
			return Transition{}, ErrLatePaymentAfterCancellation
		}
		if r.Status != models.StatusBooked || r.Payment != models.PaymentPending {
			return Transition{}, invalid
		}
		next.Payment = models.PaymentPaid
		next.PaymentDeadline = nil
		next.PaymentReference = paymentRef
		return Transition{Next: next, Changed: true}, nil

	case EventExpire:
		// Anything but an overdue unpaid booking means another transition already won.
		if r.Status != models.StatusBooked || r.Payment != models.PaymentPending {
			return Transition{Next: r}, nil
		}
		if r.PaymentDeadline == nil || !r.PaymentDeadline.Before(now) {
			return Transition{Next: r}, nil
		}
		next.Status = models.StatusCancelled
		return Transition{Next: next, Changed: true, ReleaseHold: true}, nil

	case EventCancel:
		if r.Status != models.StatusBooked {
			return Transition{}, invalid
		}
		next.Status = models.StatusCancelled
		return Transition{Next: next, Changed: true, ReleaseHold: true}, nil

	case EventCheckIn:
		if r.Status != models.StatusBooked || r.Payment != models.PaymentPaid {
			return Transition{}, invalid
		}
		next.Status = models.StatusCheckedIn
		return Transition{Next: next, Changed: true}, nil

	case EventCheckOut:
		if r.Status != models.StatusCheckedIn || r.Payment != models.PaymentPaid {
			return Transition{}, invalid
		}
		next.Status = models.StatusCheckedOut
		return Transition{Next: next, Changed: true, ReleaseHold: true}, nil

	case EventRefund:
		// The only move allowed out of a terminal state.
		if r.Status != models.StatusCancelled || r.Payment != models.PaymentPaid {
			return Transition{}, invalid
		}
		next.Payment = models.PaymentRefunded
		return Transition{Next: next, Changed: true}, nil
	}

	return Transition{}, invalid
}
