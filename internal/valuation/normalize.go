package valuation

import (
	"fmt"
	"sort"

	"storage-valuation/internal/model"
)

// Normalize validates a raw schedule and returns a copy ordered for the
// ledger: dates ascending, injections before withdrawals on the same date
// (the commodity must be present before it can leave), and input order
// preserved for same-date events of the same kind.
//
// The input slice is never mutated.
func Normalize(events []model.Event) ([]model.Event, error) {
	out := make([]model.Event, len(events))
	copy(out, events)

	for i, ev := range out {
		if ev.Date.IsZero() {
			return nil, &ValidationError{Index: i, Msg: "date is not set"}
		}
		if !ev.Kind.Valid() {
			return nil, &ValidationError{Index: i, Msg: fmt.Sprintf("unknown event kind %q", ev.Kind)}
		}
		if ev.Volume <= 0 {
			return nil, &ValidationError{Index: i, Msg: fmt.Sprintf("volume must be > 0, got %g", ev.Volume)}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Day(), out[j].Day()
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return out[i].Kind == model.KindInjection && out[j].Kind == model.KindWithdrawal
	})

	return out, nil
}
