package services

import "time"

// Clock is injected wherever deadlines are computed or checked.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
