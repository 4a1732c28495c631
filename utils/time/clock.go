package time

import (
	"time"

	"github.com/jonboulle/clockwork"
)

var clock = clockwork.NewRealClock()

// Now returns the current time of the process clock.
func Now() time.Time {
	return clock.Now()
}

// Since returns the time elapsed since t.
func Since(t time.Time) time.Duration {
	return Now().Sub(t)
}

// Mock replaces the process clock with a fake one starting at t. The returned
// function restores the previous clock.
func Mock(t time.Time) (clockwork.FakeClock, func()) {
	prev := clock
	fake := clockwork.NewFakeClockAt(t)
	clock = fake
	return fake, func() {
		clock = prev
	}
}
