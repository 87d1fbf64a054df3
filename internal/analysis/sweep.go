// Package analysis runs valuation scenario sweeps for sensitivity review.
package analysis

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"storage-valuation/internal/model"
	"storage-valuation/internal/valuation"
)

// Scenario is one (schedule, contract) variation in a sweep.
type Scenario struct {
	Name   string
	Events []model.Event
	Params model.ContractParams
}

// Outcome pairs a scenario with its valuation, or the error that stopped it.
type Outcome struct {
	Name        string
	TotalValue  decimal.Decimal
	FinalVolume float64
	Err         error
}

// Sweep values every scenario concurrently. Each run owns its facility state
// and reads inputs as immutable, so collecting results is the only
// coordination needed.
func Sweep(scenarios []Scenario) []Outcome {
	outcomes := make([]Outcome, len(scenarios))
	var wg sync.WaitGroup
	for i, sc := range scenarios {
		wg.Add(1)
		go func(i int, sc Scenario) {
			defer wg.Done()
			res, err := valuation.New().Run(sc.Events, sc.Params)
			if err != nil {
				outcomes[i] = Outcome{Name: sc.Name, Err: err}
				return
			}
			outcomes[i] = Outcome{
				Name:        sc.Name,
				TotalValue:  res.TotalValue,
				FinalVolume: res.FinalVolume,
			}
		}(i, sc)
	}
	wg.Wait()
	return outcomes
}

// Rank orders outcomes by total value descending; failed runs sort last.
func Rank(outcomes []Outcome) []Outcome {
	out := make([]Outcome, len(outcomes))
	copy(out, outcomes)
	sort.SliceStable(out, func(i, j int) bool {
		if (out[i].Err == nil) != (out[j].Err == nil) {
			return out[i].Err == nil
		}
		if out[i].Err != nil {
			return false
		}
		return out[i].TotalValue.GreaterThan(out[j].TotalValue)
	})
	return out
}

// StorageRateScenarios builds one scenario per candidate storage rate, a
// common desk question ("what does the quote look like if storage costs X").
func StorageRateScenarios(name string, events []model.Event, base model.ContractParams, rates []float64) []Scenario {
	scenarios := make([]Scenario, 0, len(rates))
	for _, r := range rates {
		params := base
		params.StorageCost.Rate = r
		scenarios = append(scenarios, Scenario{
			Name:   name + "/storage_rate=" + decimal.NewFromFloat(r).String(),
			Events: events,
			Params: params,
		})
	}
	return scenarios
}
