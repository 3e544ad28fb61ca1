package models

import "time"

// RatePeriod mirrors rate_periods. Start and end dates are both inclusive.
// Prices are minor units; discount is in basis points (10% = 1000).
type RatePeriod struct {
	ID                  int64
	RoomTypeID          int64
	StartDate           time.Time
	EndDate             time.Time
	WeekdayPriceMinor   int64
	WeekendPriceMinor   int64
	DiscountBasisPoints int64
	Currency            string
}

func (p RatePeriod) Covers(night time.Time) bool {
	return !night.Before(p.StartDate) && !night.After(p.EndDate)
}

// NightlyRate is the resolved rate for one night of a stay.
type NightlyRate struct {
	Date                time.Time `json:"-"`
	PeriodID            int64     `json:"period_id"`
	WeekdayPriceMinor   int64     `json:"weekday_price_minor"`
	WeekendPriceMinor   int64     `json:"weekend_price_minor"`
	DiscountBasisPoints int64     `json:"discount_basis_points"`
	Currency            string    `json:"currency"`
}

// Quote is the deterministic price breakdown of a stay.
type Quote struct {
	RoomTypeID      int64
	Stay            Stay
	Nights          int
	WeekdayNights   int
	WeekendNights   int
	SubtotalMinor   int64
	DiscountMinor   int64
	GrandTotalMinor int64
	Currency        string
	Rates           []NightlyRate
}
