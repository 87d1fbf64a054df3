package pricing

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
)

// WriteChartPNG renders the price history plus a forecast tail as a PNG.
func WriteChartPNG(path string, e *Estimator, forecastMonths int) error {
	if forecastMonths < 0 || forecastMonths > maxForecastMonths {
		return fmt.Errorf("forecast months must be in [0, %d]", maxForecastMonths)
	}

	histX := make([]time.Time, len(e.series.Dates))
	histY := make([]float64, len(e.series.Prices))
	copy(histX, e.series.Dates)
	copy(histY, e.series.Prices)

	var fcX []time.Time
	var fcY, fcLo, fcHi []float64
	last := e.series.Last()
	for i := 1; i <= forecastMonths; i++ {
		est, err := e.Estimate(last.AddDate(0, i, 0))
		if err != nil {
			return err
		}
		fcX = append(fcX, est.Date)
		fcY = append(fcY, est.Price)
		fcLo = append(fcLo, est.Lower95)
		fcHi = append(fcHi, est.Upper95)
	}

	series := []chart.Series{
		chart.TimeSeries{Name: "History", XValues: histX, YValues: histY},
	}
	if len(fcX) > 0 {
		series = append(series,
			chart.TimeSeries{Name: "Forecast", XValues: fcX, YValues: fcY},
			chart.TimeSeries{Name: "Lower 95", XValues: fcX, YValues: fcLo},
			chart.TimeSeries{Name: "Upper 95", XValues: fcX, YValues: fcHi},
		)
	}

	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Price ($/unit)",
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.2f")
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return graph.Render(chart.PNG, f)
}
