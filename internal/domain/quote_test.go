package domain

import (
	"errors"
	"testing"

	"hotelbooking/internal/domain/models"
)

func TestComputeQuote_FridayToSunday(t *testing.T) {
	// 2025-01-03 is a Friday.
	periods := []models.RatePeriod{period(1, "2025-01-01", "2025-01-31", 10000, 15000, 1000)}
	rates, err := ResolveNightlyRates(7, periods, models.Stay{CheckIn: day("2025-01-03"), CheckOut: day("2025-01-05")})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	q, err := ComputeQuote(rates)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Nights != 2 || q.WeekdayNights != 1 || q.WeekendNights != 1 {
		t.Fatalf("unexpected night split: %+v", q)
	}
	if q.SubtotalMinor != 25000 || q.DiscountMinor != 2500 || q.GrandTotalMinor != 22500 {
		t.Fatalf("got subtotal=%d discount=%d total=%d", q.SubtotalMinor, q.DiscountMinor, q.GrandTotalMinor)
	}
	if !q.Stay.CheckOut.Equal(day("2025-01-05")) {
		t.Fatalf("quote stay checkout=%s", q.Stay.CheckOut)
	}
}

func TestComputeQuote_PerNightDiscount(t *testing.T) {
	// Monday at 10% and Tuesday at 0%.
	rates := []models.NightlyRate{
		{Date: day("2025-01-06"), WeekdayPriceMinor: 10000, WeekendPriceMinor: 99999, DiscountBasisPoints: 1000, Currency: "IDR"},
		{Date: day("2025-01-07"), WeekdayPriceMinor: 10000, WeekendPriceMinor: 99999, DiscountBasisPoints: 0, Currency: "IDR"},
	}
	q, err := ComputeQuote(rates)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.SubtotalMinor != 20000 || q.DiscountMinor != 1000 || q.GrandTotalMinor != 19000 {
		t.Fatalf("got %+v", q)
	}
}

func TestComputeQuote_RoundsOnceHalfUp(t *testing.T) {
	// Three nights of 333 at 12.5%: per-night rounding would give 3*42=126 discount,
	// rounding once gives 999 - 874.125 -> 874 total, 125 discount.
	rates := make([]models.NightlyRate, 0, 3)
	for _, d := range []string{"2025-01-06", "2025-01-07", "2025-01-08"} {
		rates = append(rates, models.NightlyRate{Date: day(d), WeekdayPriceMinor: 333, DiscountBasisPoints: 1250, Currency: "IDR"})
	}
	q, err := ComputeQuote(rates)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.GrandTotalMinor != 874 || q.DiscountMinor != 125 {
		t.Fatalf("got total=%d discount=%d", q.GrandTotalMinor, q.DiscountMinor)
	}

	half := []models.NightlyRate{{Date: day("2025-01-06"), WeekdayPriceMinor: 5, DiscountBasisPoints: 1000, Currency: "IDR"}}
	q, _ = ComputeQuote(half)
	if q.GrandTotalMinor != 5 || q.DiscountMinor != 0 {
		t.Fatalf("4.5 should round up to 5, got total=%d discount=%d", q.GrandTotalMinor, q.DiscountMinor)
	}
}

func TestComputeQuote_Invariants(t *testing.T) {
	periods := []models.RatePeriod{
		period(1, "2025-01-01", "2025-03-31", 123457, 154321, 735),
		period(2, "2025-02-10", "2025-02-20", 99999, 133333, 2500),
	}
	for n := 1; n <= 40; n++ {
		stay := models.Stay{CheckIn: day("2025-02-01"), CheckOut: day("2025-02-01").AddDate(0, 0, n)}
		rates, err := ResolveNightlyRates(7, periods, stay)
		if err != nil {
			t.Fatalf("resolve %d: %v", n, err)
		}
		q, err := ComputeQuote(rates)
		if err != nil {
			t.Fatalf("quote %d: %v", n, err)
		}
		if q.WeekdayNights+q.WeekendNights != q.Nights || q.Nights != n {
			t.Fatalf("night counts broken for %d: %+v", n, q)
		}
		if q.GrandTotalMinor != q.SubtotalMinor-q.DiscountMinor || q.DiscountMinor < 0 {
			t.Fatalf("money invariant broken for %d: %+v", n, q)
		}
	}
}

func TestComputeQuote_Failures(t *testing.T) {
	if _, err := ComputeQuote(nil); !errors.Is(err, ErrEmptyStay) {
		t.Fatalf("expected ErrEmptyStay, got %v", err)
	}
	mixed := []models.NightlyRate{
		{Date: day("2025-01-06"), WeekdayPriceMinor: 100, Currency: "IDR"},
		{Date: day("2025-01-07"), WeekdayPriceMinor: 100, Currency: "USD"},
	}
	if _, err := ComputeQuote(mixed); !errors.Is(err, ErrMixedCurrency) {
		t.Fatalf("expected ErrMixedCurrency, got %v", err)
	}
}
