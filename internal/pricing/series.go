// Package pricing estimates commodity prices for arbitrary dates from a
// monthly price history. The valuation engine never calls it directly; it is
// the collaborator that resolves prices for events that carry none.
package pricing

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"
)

// Series is a month-end commodity price history, ascending by date.
type Series struct {
	Dates  []time.Time
	Prices []float64
}

// LoadCSV reads a two-column history ("Dates,Prices", dates as m/d/yy).
// Rows are sorted by date; every date is snapped to its month end.
func LoadCSV(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	type point struct {
		date  time.Time
		price float64
	}
	points := make([]point, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 2 {
			return nil, fmt.Errorf("%s row %d: expected 2 columns, got %d", path, i+2, len(rec))
		}
		d, err := time.Parse("1/2/06", rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad date %q: %w", path, i+2, rec[0], err)
		}
		p, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad price %q: %w", path, i+2, rec[1], err)
		}
		points = append(points, point{date: MonthEnd(d), price: p})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].date.Before(points[j].date) })

	s := &Series{
		Dates:  make([]time.Time, len(points)),
		Prices: make([]float64, len(points)),
	}
	for i, pt := range points {
		s.Dates[i] = pt.date
		s.Prices[i] = pt.price
	}
	return s, nil
}

// MonthEnd snaps any date to the last day of its month (UTC).
func MonthEnd(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
}

func (s *Series) First() time.Time { return s.Dates[0] }
func (s *Series) Last() time.Time  { return s.Dates[len(s.Dates)-1] }
