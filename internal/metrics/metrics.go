// Package metrics provides Prometheus instrumentation for the valuation
// service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ValuationsTotal counts valuation runs, partitioned by outcome
	// ("ok", "validation_error", "capacity_exceeded", "rate_limit_exceeded").
	ValuationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storageval_valuations_total",
		Help: "Total number of valuation runs",
	}, []string{"outcome"})

	// ValuationDuration tracks engine run time.
	ValuationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storageval_valuation_duration_seconds",
		Help:    "Valuation run duration in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})

	// PriceEstimatesTotal counts price lookups by kind.
	PriceEstimatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storageval_price_estimates_total",
		Help: "Total price estimates served",
	}, []string{"kind"})

	// ExpectedLossTotal counts credit scoring requests.
	ExpectedLossTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storageval_expected_loss_total",
		Help: "Total expected-loss computations",
	})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
