package domain

import (
	"time"

	"hotelbooking/internal/domain/models"
)

// basisPointScale converts basis points to a fraction (10000 bp = 100%).
const basisPointScale = 10000

// IsWeekend classifies a night by its calendar date only.
func IsWeekend(night time.Time) bool {
	wd := night.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ComputeQuote prices a list of resolved nightly rates.
// Per-night discounts are accumulated in basis-point precision and the grand total is
// rounded half-up exactly once, so discount = subtotal - grandTotal always holds.
func ComputeQuote(rates []models.NightlyRate) (models.Quote, error) {
	if len(rates) == 0 {
		return models.Quote{}, ErrEmptyStay
	}

	q := models.Quote{
		Nights:   len(rates),
		Currency: rates[0].Currency,
		Rates:    rates,
	}

	var discountScaled int64
	for _, r := range rates {
		if r.Currency != q.Currency {
			return models.Quote{}, ErrMixedCurrency
		}
		price := r.WeekdayPriceMinor
		if IsWeekend(r.Date) {
			price = r.WeekendPriceMinor
			q.WeekendNights++
		} else {
			q.WeekdayNights++
		}
		bp := clampBasisPoints(r.DiscountBasisPoints)
		q.SubtotalMinor += price
		discountScaled += price * bp
	}

	totalScaled := q.SubtotalMinor*basisPointScale - discountScaled
	q.GrandTotalMinor = roundHalfUp(totalScaled, basisPointScale)
	q.DiscountMinor = q.SubtotalMinor - q.GrandTotalMinor

	q.Stay = models.Stay{
		CheckIn:  rates[0].Date,
		CheckOut: rates[len(rates)-1].Date.AddDate(0, 0, 1),
	}
	return q, nil
}

func clampBasisPoints(bp int64) int64 {
	if bp < 0 {
		return 0
	}
	if bp > basisPointScale {
		return basisPointScale
	}
	return bp
}

// roundHalfUp divides a non-negative scaled amount, rounding .5 away from zero.
func roundHalfUp(v, scale int64) int64 {
	if v < 0 {
		return -roundHalfUp(-v, scale)
	}
	return (v + scale/2) / scale
}
