package services

import "time"

// Clock is injected wherever "today" matters, so tests can simulate day
// transitions instead of waiting on real timers.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type FixedClock struct {
	Time time.Time
}

func (clock FixedClock) Now() time.Time {
	return clock.Time
}
