package valuation

import (
	"fmt"
	"strings"
	"time"

	"storage-valuation/internal/model"
)

// ValidationError reports malformed input: a bad event or bad contract
// parameters. The run aborts with no partial result.
type ValidationError struct {
	// Index is the event's position in the input schedule, -1 when the error
	// is not tied to a specific event.
	Index int
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid event %d: %s", e.Index, e.Msg)
	}
	return fmt.Sprintf("invalid input: %s", e.Msg)
}

// CapacityExceededError reports an injection that would push stored volume
// above the facility capacity.
type CapacityExceededError struct {
	Date      time.Time
	Requested float64
	Headroom  float64
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("injection of %g on %s exceeds capacity: only %g available",
		e.Requested, e.Date.Format("2006-01-02"), e.Headroom)
}

// RateLimitExceededError reports a single event moving more volume than the
// configured per-event rate limit, or a withdrawal of more than is stored.
type RateLimitExceededError struct {
	Date      time.Time
	Kind      model.EventKind
	Requested float64
	Limit     float64
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("%s of %g on %s exceeds limit of %g",
		strings.ToLower(string(e.Kind)), e.Requested, e.Date.Format("2006-01-02"), e.Limit)
}
