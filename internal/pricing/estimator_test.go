package pricing

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storage-valuation/internal/model"
)

// testSeries builds 36 months of seasonal history ending 2024-09-30:
// level 10 + 0.05/month trend + winter-peaking seasonal swing.
func testSeries() *Series {
	s := &Series{}
	d := time.Date(2021, 10, 31, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 36; i++ {
		me := MonthEnd(d.AddDate(0, i, 0))
		seasonal := 1.5 * math.Cos(2*math.Pi*float64(me.Month()-1)/12)
		noise := 0.1 * math.Sin(float64(i)*1.7)
		s.Dates = append(s.Dates, me)
		s.Prices = append(s.Prices, 10+0.05*float64(i)+seasonal+noise)
	}
	return s
}

func TestMonthEnd(t *testing.T) {
	tests := []struct {
		in, want time.Time
	}{
		{time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC), time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC)},
		{time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC), time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		if got := MonthEnd(tc.in); !got.Equal(tc.want) {
			t.Errorf("MonthEnd(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestEstimate_HistoricalIsExact(t *testing.T) {
	e, err := NewEstimator(testSeries())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Mid-month queries snap to the month end observation.
	est, err := e.Estimate(time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.Kind != EstimateHistorical {
		t.Errorf("expected historical, got %s", est.Kind)
	}
	want := e.byMonth[time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)]
	if est.Price != want {
		t.Errorf("got %g, want observed %g", est.Price, want)
	}
}

func TestEstimate_ForecastWithinHorizon(t *testing.T) {
	e, err := NewEstimator(testSeries())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	est, err := e.Estimate(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.Kind != EstimateForecast {
		t.Errorf("expected forecast, got %s", est.Kind)
	}
	// Same month last year plus mean drift; the synthetic series drifts
	// roughly 0.05/month, i.e. 0.6/year.
	if math.Abs(e.drift-0.6) > 0.1 {
		t.Errorf("drift %g, want about 0.6", e.drift)
	}
	base := e.byMonth[time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)]
	if math.Abs(est.Price-(base+e.drift)) > 1e-9 {
		t.Errorf("forecast %g, want %g", est.Price, base+e.drift)
	}
	if est.Lower95 >= est.Price || est.Upper95 <= est.Price {
		t.Errorf("confidence band does not bracket the forecast: [%g, %g] around %g",
			est.Lower95, est.Upper95, est.Price)
	}
}

func TestEstimate_RangeErrors(t *testing.T) {
	e, err := NewEstimator(testSeries())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = e.Estimate(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrBeforeHistory) {
		t.Errorf("expected ErrBeforeHistory, got %v", err)
	}

	_, err = e.Estimate(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrBeyondHorizon) {
		t.Errorf("expected ErrBeyondHorizon, got %v", err)
	}

	// Exactly 12 months out is still quotable.
	if _, err := e.Estimate(time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Errorf("12-month horizon should be allowed: %v", err)
	}
}

func TestNewEstimator_RejectsShortSeries(t *testing.T) {
	s := testSeries()
	s.Dates = s.Dates[:6]
	s.Prices = s.Prices[:6]
	if _, err := NewEstimator(s); err == nil {
		t.Error("expected error for a series too short for seasonal modelling")
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	content := "Dates,Prices\n11/30/20,10.2\n10/31/20,10.1\n12/31/20,11.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Dates) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(s.Dates))
	}
	if !s.First().Equal(time.Date(2020, 10, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("rows not sorted: first = %v", s.First())
	}
	if s.Prices[2] != 11.0 {
		t.Errorf("expected 11.0 last, got %g", s.Prices[2])
	}
}

func TestLoadCSV_BadRows(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, content string
	}{
		{"bad date", "Dates,Prices\nnot-a-date,10.1\n"},
		{"bad price", "Dates,Prices\n10/31/20,ten\n"},
		{"empty", "Dates,Prices\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".csv")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadCSV(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestResolvePrices(t *testing.T) {
	e, err := NewEstimator(testSeries())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := []model.Event{
		{Date: time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC), Kind: model.KindInjection, Volume: 100},
		{Date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), Kind: model.KindWithdrawal, Volume: 100, Price: 12.5},
	}

	resolved, err := e.ResolvePrices(events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved[0].Price == 0 {
		t.Error("missing price should be filled from the estimator")
	}
	if resolved[1].Price != 12.5 {
		t.Errorf("explicit price must pass through, got %g", resolved[1].Price)
	}
	if events[0].Price != 0 {
		t.Error("input slice must not be mutated")
	}
}
