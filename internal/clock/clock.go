package clock

import "time"

// Clock abstracts time for deterministic tests. All timer math in the
// reducer goes through this interface instead of calling time.Now directly.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

// Now returns the current time using the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Fake is a manually-advanced clock for tests.
type Fake struct {
	now time.Time
}

// NewFake creates a fake clock frozen at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake clock's current time.
func (f *Fake) Now() time.Time {
	return f.now
}

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// Set jumps the fake clock to t.
func (f *Fake) Set(t time.Time) {
	f.now = t
}
