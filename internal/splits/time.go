package splits

import "time"

// Time pairs two independently optional durations for one measurement.
// A nil slot means "not recorded", which is distinct from a zero span.
type Time struct {
	RealTime *TimeSpan
	GameTime *TimeSpan
}

func (t Time) WithRealTime(ts *TimeSpan) Time {
	t.RealTime = ts
	return t
}

func (t Time) WithGameTime(ts *TimeSpan) Time {
	t.GameTime = ts
	return t
}

// AtomicDateTime is a wall-clock timestamp annotated with whether it was
// corroborated against an external clock source.
type AtomicDateTime struct {
	Time   time.Time
	Synced bool
}

func NewAtomicDateTime(t time.Time, synced bool) AtomicDateTime {
	return AtomicDateTime{Time: t, Synced: synced}
}
