package model

import "time"

// EventKind is the direction of a scheduled storage action.
// Keep these values stable; they are used in YAML schedules and CSV output.
type EventKind string

const (
	KindInjection  EventKind = "INJECTION"
	KindWithdrawal EventKind = "WITHDRAWAL"
)

func (k EventKind) Valid() bool {
	return k == KindInjection || k == KindWithdrawal
}

// Event is one scheduled injection or withdrawal.
// Dates are day-granular; there is no intraday ordering. Same-date ordering
// is defined by the normalizer, not by the event itself.
type Event struct {
	Date   time.Time
	Kind   EventKind
	Volume float64 // units requested to move (e.g. MMBtu), must be > 0
	Price  float64 // unit price on Date, supplied by the caller
}

// Day truncates the event date to day granularity in UTC.
func (e Event) Day() time.Time {
	return Day(e.Date)
}

// Day truncates t to day granularity in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
