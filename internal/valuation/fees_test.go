package valuation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"storage-valuation/internal/model"
)

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name       string
		from, to   time.Time
		months     int
		remDays    int
	}{
		{"exact four months", date(2024, 1, 15), date(2024, 5, 15), 4, 0},
		{"one month", date(2024, 1, 31), date(2024, 3, 2), 1, 0},
		{"partial month", date(2024, 1, 15), date(2024, 5, 20), 4, 5},
		{"under one month", date(2024, 1, 15), date(2024, 2, 1), 0, 17},
		{"same day", date(2024, 1, 15), date(2024, 1, 15), 0, 0},
		{"month-end anchor", date(2023, 6, 30), date(2024, 1, 31), 7, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			months, rem := monthsBetween(tc.from, tc.to)
			if months != tc.months || rem != tc.remDays {
				t.Errorf("monthsBetween(%s, %s) = (%d, %d), want (%d, %d)",
					tc.from.Format("2006-01-02"), tc.to.Format("2006-01-02"),
					months, rem, tc.months, tc.remDays)
			}
		})
	}
}

func TestStorageFee_FlatMonthly(t *testing.T) {
	m := model.StorageCostModel{Mode: model.StorageCostFlatMonthly, Rate: 100000}

	fee := storageFee(m, 1e6, date(2024, 1, 15), date(2024, 5, 15))
	if !fee.Equal(decimal.NewFromInt(400000)) {
		t.Errorf("four full months: got %s, want 400000", fee)
	}

	// Partial months are charged in full by default.
	fee = storageFee(m, 1e6, date(2024, 1, 15), date(2024, 5, 20))
	if !fee.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("partial month charged in full: got %s, want 500000", fee)
	}
}

func TestStorageFee_FlatMonthlyProrated(t *testing.T) {
	m := model.StorageCostModel{Mode: model.StorageCostFlatMonthly, Rate: 100000, Prorate: true}

	// 4 full months + 15 of the 31 days of May.
	fee := storageFee(m, 1e6, date(2024, 1, 15), date(2024, 5, 30))
	want := decimal.NewFromInt(400000).Add(
		decimal.NewFromInt(100000).Mul(decimal.NewFromInt(15).Div(decimal.NewFromInt(31))))
	if !fee.Equal(want) {
		t.Errorf("prorated: got %s, want %s", fee, want)
	}
}

func TestStorageFee_PerUnitDay(t *testing.T) {
	m := model.StorageCostModel{Mode: model.StorageCostPerUnitDay, Rate: 0.005}

	// 1000 units for 10 days at $0.005/unit/day.
	fee := storageFee(m, 1000, date(2024, 3, 1), date(2024, 3, 11))
	if !fee.Equal(decimal.NewFromInt(50)) {
		t.Errorf("got %s, want 50", fee)
	}
}

func TestStorageFee_ZeroInventory(t *testing.T) {
	m := model.StorageCostModel{Mode: model.StorageCostFlatMonthly, Rate: 100000}
	fee := storageFee(m, 0, date(2024, 1, 1), date(2024, 12, 1))
	if !fee.IsZero() {
		t.Errorf("empty facility should accrue nothing, got %s", fee)
	}
}

func TestStorageFee_SameDate(t *testing.T) {
	m := model.StorageCostModel{Mode: model.StorageCostFlatMonthly, Rate: 100000}
	fee := storageFee(m, 500, date(2024, 1, 1), date(2024, 1, 1))
	if !fee.IsZero() {
		t.Errorf("no elapsed time should accrue nothing, got %s", fee)
	}
}

func TestOperationFee_Bases(t *testing.T) {
	perUnit := operationFee(model.OperationFee{Basis: model.FeePerUnit, Amount: 0.01}, 1000)
	if !perUnit.Equal(decimal.NewFromInt(10)) {
		t.Errorf("per unit: got %s, want 10", perUnit)
	}

	perEvent := operationFee(model.OperationFee{Basis: model.FeePerEvent, Amount: 10000}, 1000)
	if !perEvent.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("per event: got %s, want 10000", perEvent)
	}
}
