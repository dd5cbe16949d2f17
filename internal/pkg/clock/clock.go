// Package clock abstracts wall time so response timestamps can be pinned in tests.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time {
	return f()
}

// System reads the wall clock.
var System Clock = Func(time.Now)

// Fixed returns a clock stuck at t.
func Fixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}
