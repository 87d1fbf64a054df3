package pricing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"storage-valuation/internal/model"
)

// Forecasts are capped at one year past the last observation; further out the
// seasonal model degrades too much to quote from.
const maxForecastMonths = 12

var (
	ErrBeforeHistory = errors.New("date precedes the price history")
	ErrBeyondHorizon = errors.New("date is more than 12 months beyond the last observation")
)

// EstimateKind distinguishes observed history from model output.
type EstimateKind string

const (
	EstimateHistorical EstimateKind = "historical"
	EstimateForecast   EstimateKind = "forecast"
)

// Estimate is a resolved price for one month-end date.
type Estimate struct {
	Date  time.Time
	Price float64
	Kind  EstimateKind
	// 95% band, forecasts only.
	Lower95 float64
	Upper95 float64
}

// Estimator resolves a price for any date covered by the history or up to a
// year beyond it. Future months are forecast from the same calendar month one
// year earlier plus the mean year-over-year drift, which captures the strong
// seasonality of storage commodities without an external stats dependency.
type Estimator struct {
	series   *Series
	byMonth  map[time.Time]float64
	drift    float64 // mean year-over-year price change
	residStd float64 // std dev of in-sample seasonal-model residuals
}

func NewEstimator(s *Series) (*Estimator, error) {
	if s == nil || len(s.Dates) == 0 {
		return nil, errors.New("empty price series")
	}
	if len(s.Dates) < 13 {
		return nil, fmt.Errorf("need at least 13 monthly observations for a seasonal model, got %d", len(s.Dates))
	}

	e := &Estimator{
		series:  s,
		byMonth: make(map[time.Time]float64, len(s.Dates)),
	}
	for i, d := range s.Dates {
		e.byMonth[d] = s.Prices[i]
	}

	// Year-over-year deltas double as in-sample forecast errors once the mean
	// drift is removed.
	var deltas []float64
	for i, d := range s.Dates {
		prev, ok := e.byMonth[MonthEnd(d.AddDate(-1, 0, 0))]
		if !ok {
			continue
		}
		deltas = append(deltas, s.Prices[i]-prev)
	}
	if len(deltas) == 0 {
		return nil, errors.New("price series has no year-over-year overlap")
	}
	for _, d := range deltas {
		e.drift += d
	}
	e.drift /= float64(len(deltas))

	var ss float64
	for _, d := range deltas {
		ss += (d - e.drift) * (d - e.drift)
	}
	e.residStd = math.Sqrt(ss / float64(len(deltas)))

	return e, nil
}

// Last returns the last observed month end in the history.
func (e *Estimator) Last() time.Time {
	return e.series.Last()
}

// Estimate resolves the price for an arbitrary date, snapped to month end.
func (e *Estimator) Estimate(date time.Time) (Estimate, error) {
	me := MonthEnd(date)

	if me.Before(e.series.First()) {
		return Estimate{}, fmt.Errorf("%s: %w", me.Format("2006-01-02"), ErrBeforeHistory)
	}

	if p, ok := e.byMonth[me]; ok {
		return Estimate{Date: me, Price: p, Kind: EstimateHistorical}, nil
	}

	last := e.series.Last()
	ahead := (me.Year()-last.Year())*12 + int(me.Month()) - int(last.Month())
	if ahead > maxForecastMonths {
		return Estimate{}, fmt.Errorf("%s: %w", me.Format("2006-01-02"), ErrBeyondHorizon)
	}
	if ahead < 1 {
		// Inside the history window but not an observed month end; the series
		// is monthly so this only happens with a gappy file.
		return Estimate{}, fmt.Errorf("no observation for %s", me.Format("2006-01-02"))
	}

	base, ok := e.byMonth[MonthEnd(me.AddDate(-1, 0, 0))]
	if !ok {
		return Estimate{}, fmt.Errorf("no prior-year observation for %s", me.Format("2006-01-02"))
	}

	price := base + e.drift
	band := 1.96 * e.residStd
	return Estimate{
		Date:    me,
		Price:   price,
		Kind:    EstimateForecast,
		Lower95: price - band,
		Upper95: price + band,
	}, nil
}

// ResolvePrices fills in prices for schedule events that carry none, acting
// as the thin adapter between the estimator and the valuation engine. Events
// with a non-zero price pass through untouched.
func (e *Estimator) ResolvePrices(events []model.Event) ([]model.Event, error) {
	out := make([]model.Event, len(events))
	copy(out, events)
	for i := range out {
		if out[i].Price != 0 {
			continue
		}
		est, err := e.Estimate(out[i].Date)
		if err != nil {
			return nil, fmt.Errorf("resolve price for event %d: %w", i, err)
		}
		out[i].Price = est.Price
	}
	return out, nil
}
