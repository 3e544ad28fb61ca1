package models

import "time"

type ReservationStatus string

const (
	StatusBooked     ReservationStatus = "booked"
	StatusCheckedIn  ReservationStatus = "checked_in"
	StatusCheckedOut ReservationStatus = "checked_out"
	StatusCancelled  ReservationStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Guest captures who the room is held for.
type Guest struct {
	Name  string
	Phone string
	Email string
}

// Reservation is one guest's claim on one room for a contiguous set of nights.
type Reservation struct {
	ID               string
	RoomID           int64
	RoomTypeID       int64
	Guest            Guest
	Stay             Stay
	Nights           int
	SubtotalMinor    int64
	DiscountMinor    int64
	TotalMinor       int64
	Currency         string
	Status           ReservationStatus
	Payment          PaymentStatus
	PaymentDeadline  *time.Time
	PaymentReference string
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HoldsRoom reports whether the reservation still owns its ledger hold.
func (r Reservation) HoldsRoom() bool {
	return r.Status == StatusBooked || r.Status == StatusCheckedIn
}

func (r Reservation) IsTerminal() bool {
	return r.Status == StatusCheckedOut || r.Status == StatusCancelled
}
