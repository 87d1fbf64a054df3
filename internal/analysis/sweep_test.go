package analysis

import (
	"testing"
	"time"

	"storage-valuation/internal/model"
)

func scenarioEvents() []model.Event {
	return []model.Event{
		{Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Kind: model.KindInjection, Volume: 1000, Price: 2},
		{Date: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), Kind: model.KindWithdrawal, Volume: 1000, Price: 3},
	}
}

func scenarioParams() model.ContractParams {
	return model.ContractParams{
		MaxStorageCapacity:  2000,
		InjectionRateLimit:  2000,
		WithdrawalRateLimit: 2000,
		StorageCost:         model.StorageCostModel{Mode: model.StorageCostFlatMonthly, Rate: 100},
	}
}

func TestSweep_RanksByValue(t *testing.T) {
	scenarios := StorageRateScenarios("base", scenarioEvents(), scenarioParams(), []float64{200, 50, 100})

	ranked := Rank(Sweep(scenarios))
	if len(ranked) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(ranked))
	}
	// Cheaper storage means a more valuable contract.
	if ranked[0].Name != "base/storage_rate=50" {
		t.Errorf("expected cheapest storage first, got %s", ranked[0].Name)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].TotalValue.GreaterThan(ranked[i-1].TotalValue) {
			t.Errorf("outcomes not sorted descending at %d", i)
		}
	}
}

func TestSweep_FailedScenariosSortLast(t *testing.T) {
	bad := scenarioParams()
	bad.MaxStorageCapacity = 10 // the injection cannot fit

	scenarios := []Scenario{
		{Name: "infeasible", Events: scenarioEvents(), Params: bad},
		{Name: "ok", Events: scenarioEvents(), Params: scenarioParams()},
	}

	ranked := Rank(Sweep(scenarios))
	if ranked[0].Name != "ok" || ranked[0].Err != nil {
		t.Errorf("successful scenario should rank first, got %+v", ranked[0])
	}
	if ranked[1].Err == nil {
		t.Error("infeasible scenario should carry its error")
	}
}

func TestSweep_IsDeterministic(t *testing.T) {
	scenarios := StorageRateScenarios("base", scenarioEvents(), scenarioParams(), []float64{10, 20, 30, 40})

	a := Sweep(scenarios)
	b := Sweep(scenarios)
	for i := range a {
		if !a[i].TotalValue.Equal(b[i].TotalValue) {
			t.Errorf("scenario %s: %s vs %s", a[i].Name, a[i].TotalValue, b[i].TotalValue)
		}
	}
}
