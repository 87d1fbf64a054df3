package valuation

import (
	"errors"
	"testing"
	"time"

	"storage-valuation/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize_SortsByDate(t *testing.T) {
	events := []model.Event{
		{Date: date(2024, 5, 15), Kind: model.KindWithdrawal, Volume: 100, Price: 3},
		{Date: date(2024, 1, 15), Kind: model.KindInjection, Volume: 100, Price: 2},
		{Date: date(2024, 3, 15), Kind: model.KindInjection, Volume: 50, Price: 2.5},
	}

	out, err := Normalize(events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(out); i++ {
		if out[i].Date.Before(out[i-1].Date) {
			t.Errorf("events out of order at %d: %v before %v", i, out[i].Date, out[i-1].Date)
		}
	}
	if out[0].Date != date(2024, 1, 15) || out[2].Date != date(2024, 5, 15) {
		t.Errorf("unexpected order: %+v", out)
	}
}

func TestNormalize_InjectionsBeforeWithdrawalsOnSameDate(t *testing.T) {
	d := date(2024, 6, 1)
	events := []model.Event{
		{Date: d, Kind: model.KindWithdrawal, Volume: 100, Price: 3},
		{Date: d, Kind: model.KindInjection, Volume: 100, Price: 2},
	}

	out, err := Normalize(events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Kind != model.KindInjection {
		t.Errorf("injection should be processed first on a shared date, got %s", out[0].Kind)
	}
}

func TestNormalize_SameKindPreservesInputOrder(t *testing.T) {
	d := date(2024, 6, 1)
	events := []model.Event{
		{Date: d, Kind: model.KindInjection, Volume: 1, Price: 2},
		{Date: d, Kind: model.KindInjection, Volume: 2, Price: 2},
		{Date: d, Kind: model.KindInjection, Volume: 3, Price: 2},
	}

	out, err := Normalize(events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, ev := range out {
		if ev.Volume != float64(i+1) {
			t.Fatalf("stable sort violated: got volumes %v %v %v", out[0].Volume, out[1].Volume, out[2].Volume)
		}
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	events := []model.Event{
		{Date: date(2024, 5, 1), Kind: model.KindWithdrawal, Volume: 1, Price: 3},
		{Date: date(2024, 1, 1), Kind: model.KindInjection, Volume: 1, Price: 2},
	}

	if _, err := Normalize(events); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if events[0].Kind != model.KindWithdrawal {
		t.Error("input slice was reordered")
	}
}

func TestNormalize_Validation(t *testing.T) {
	tests := []struct {
		name  string
		event model.Event
	}{
		{"zero volume", model.Event{Date: date(2024, 1, 1), Kind: model.KindInjection, Volume: 0}},
		{"negative volume", model.Event{Date: date(2024, 1, 1), Kind: model.KindInjection, Volume: -5}},
		{"unknown kind", model.Event{Date: date(2024, 1, 1), Kind: "TRANSFER", Volume: 1}},
		{"missing date", model.Event{Kind: model.KindInjection, Volume: 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize([]model.Event{tc.event})
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Index != 0 {
				t.Errorf("expected index 0, got %d", verr.Index)
			}
		})
	}
}
