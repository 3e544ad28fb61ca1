package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// Booking engine failures. Callers match them with errors.Is.
var (
	ErrEmptyStay                    = errors.New("empty stay: check_out must be after check_in")
	ErrRoomUnavailable              = errors.New("room unavailable for the requested dates")
	ErrStaleState                   = errors.New("reservation was modified concurrently")
	ErrLatePaymentAfterCancellation = errors.New("payment received after reservation was cancelled")
	ErrInvalidTransition            = errors.New("invalid reservation transition")
	ErrNoRateForDate                = errors.New("no rate period covers date")
	ErrMixedCurrency                = errors.New("rate periods in one stay use different currencies")
)

// NoRateForDateError names the first night without a covering rate period.
type NoRateForDateError struct {
	RoomTypeID int64
	Date       string
}

func (e NoRateForDateError) Error() string {
	return fmt.Sprintf("no rate for room type %d on %s", e.RoomTypeID, e.Date)
}

func (e NoRateForDateError) Is(target error) bool { return target == ErrNoRateForDate }

// InvalidTransitionError records the state an event was rejected from.
type InvalidTransitionError struct {
	ReservationID string
	Status        string
	Payment       string
	Event         string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("reservation %s: cannot apply %s from (%s, %s)", e.ReservationID, e.Event, e.Status, e.Payment)
}

func (e InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }
