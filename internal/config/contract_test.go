package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"storage-valuation/internal/model"
	"storage-valuation/internal/valuation"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadContract(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "contract.yaml", `
contract:
  name: summer-winter
  max_storage_capacity: 1000000
  injection_rate_limit: 1000000
  withdrawal_rate_limit: 1000000
  storage_cost_mode: flat_monthly
  storage_cost_rate: 100000
  operation_fee_basis: per_event
  operation_fee_amount: 10000
  transport_fee: 50000
schedule:
  - {date: "2024-01-15", kind: injection, volume: 1000000, price: 2}
  - {date: "2024-05-15", kind: withdrawal, volume: 1000000, price: 3}
`)

	c, err := LoadContract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	params, err := c.Contract.ToParams()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.StorageCost.Mode != model.StorageCostFlatMonthly {
		t.Errorf("mode = %s", params.StorageCost.Mode)
	}
	if params.OperationFee.Basis != model.FeePerEvent {
		t.Errorf("basis = %s", params.OperationFee.Basis)
	}

	events, err := BuildSchedule(c.Schedule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 || events[0].Kind != model.KindInjection {
		t.Errorf("unexpected schedule: %+v", events)
	}
}

func TestLoadContract_BaseFileMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
contract:
  name: base
  max_storage_capacity: 500000
  injection_rate_limit: 250000
  withdrawal_rate_limit: 250000
  storage_cost_rate: 50000
`)
	path := writeFile(t, dir, "override.yaml", `
base_file: base.yaml
contract:
  max_storage_capacity: 1000000
schedule:
  - {date: "2024-01-15", kind: injection, volume: 100000, price: 2}
`)

	c, err := LoadContract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Contract.MaxStorageCapacity != 1000000 {
		t.Errorf("override not applied: %g", c.Contract.MaxStorageCapacity)
	}
	if c.Contract.InjectionRateLimit != 250000 {
		t.Errorf("base value lost: %g", c.Contract.InjectionRateLimit)
	}
	if c.Contract.Name != "base" {
		t.Errorf("unexpected name %q", c.Contract.Name)
	}
}

func TestToEvent_Errors(t *testing.T) {
	tests := []struct {
		name  string
		entry ScheduleEntry
	}{
		{"bad date", ScheduleEntry{Date: "01/15/2024", Kind: "injection", Volume: 10}},
		{"bad kind", ScheduleEntry{Date: "2024-01-15", Kind: "transfer", Volume: 10}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.entry.ToEvent(3)
			var verr *valuation.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Index != 3 {
				t.Errorf("expected index 3, got %d", verr.Index)
			}
		})
	}
}

func TestLoadContract_RejectsInvalidParams(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", `
contract:
  max_storage_capacity: -5
  injection_rate_limit: 10
  withdrawal_rate_limit: 10
`)
	if _, err := LoadContract(path); err == nil {
		t.Error("expected error for negative capacity")
	}
}

func TestAppConfigDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d", cfg.Server.Port)
	}
	if cfg.Credit.RecoveryRate != 0.10 {
		t.Errorf("default recovery rate = %g", cfg.Credit.RecoveryRate)
	}
}
