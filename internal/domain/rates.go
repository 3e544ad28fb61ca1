package domain

import (
	"strings"
	"time"

	"hotelbooking/internal/domain/models"
)

// MaxStayNights bounds a single reservation so minor-unit sums stay far from int64 limits.
const MaxStayNights = 365

// NewStay validates a [checkIn, checkOut) range.
func NewStay(checkIn, checkOut time.Time) (models.Stay, error) {
	s := models.Stay{CheckIn: dateOnly(checkIn), CheckOut: dateOnly(checkOut)}
	switch {
	case s.CheckOut.Equal(s.CheckIn):
		return s, ErrEmptyStay
	case s.CheckOut.Before(s.CheckIn):
		return s, ValidationError{Field: "check_out", Msg: "check_out harus setelah check_in"}
	case s.Nights() > MaxStayNights:
		return s, ValidationError{Field: "check_out", Msg: "maksimal 365 malam per reservasi"}
	}
	return s, nil
}

// ResolveNightlyRates picks the covering rate period for every night of the stay.
// When periods overlap, the latest start_date wins; equal start dates fall back to the higher id.
func ResolveNightlyRates(roomTypeID int64, periods []models.RatePeriod, stay models.Stay) ([]models.NightlyRate, error) {
	nights := stay.EachNight()
	out := make([]models.NightlyRate, 0, len(nights))
	for _, night := range nights {
		var (
			best  models.RatePeriod
			found bool
		)
		for _, p := range periods {
			if p.RoomTypeID != roomTypeID || !p.Covers(night) {
				continue
			}
			if !found || p.StartDate.After(best.StartDate) || (p.StartDate.Equal(best.StartDate) && p.ID > best.ID) {
				best = p
				found = true
			}
		}
		if !found {
			return nil, NoRateForDateError{RoomTypeID: roomTypeID, Date: night.Format("2006-01-02")}
		}
		out = append(out, models.NightlyRate{
			Date:                night,
			PeriodID:            best.ID,
			WeekdayPriceMinor:   best.WeekdayPriceMinor,
			WeekendPriceMinor:   best.WeekendPriceMinor,
			DiscountBasisPoints: best.DiscountBasisPoints,
			Currency:            strings.ToUpper(best.Currency),
		})
	}
	return out, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
