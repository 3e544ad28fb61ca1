package models

import "time"

// Stay is a half-open range of nights [CheckIn, CheckOut). Dates are UTC midnights.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (s Stay) Nights() int {
	if !s.CheckOut.After(s.CheckIn) {
		return 0
	}
	return int(s.CheckOut.Sub(s.CheckIn).Hours() / 24)
}

// Overlaps uses half-open semantics: a checkout day can be the next guest's checkin day.
func (s Stay) Overlaps(o Stay) bool {
	return s.CheckIn.Before(o.CheckOut) && o.CheckIn.Before(s.CheckOut)
}

// EachNight lists the date of every night in the stay.
func (s Stay) EachNight() []time.Time {
	n := s.Nights()
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, s.CheckIn.AddDate(0, 0, i))
	}
	return out
}
