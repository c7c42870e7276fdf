package clock

import "time"

// Clock abstracts time to keep stores deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f).UTC()
}

// Stamp formats the current time of c the way stores persist it.
func Stamp(c Clock) string {
	return c.Now().Format(time.RFC3339)
}
