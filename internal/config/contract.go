package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"storage-valuation/internal/model"
	"storage-valuation/internal/valuation"
)

// ContractFile is the on-disk contract shape (YAML).
type ContractFile struct {
	// Optional: load contract terms from a base preset (e.g.
	// examples/contracts/*.yaml). Fields set here override the preset.
	BaseFile string          `yaml:"base_file"`
	Contract ContractConfig  `yaml:"contract"`
	Schedule []ScheduleEntry `yaml:"schedule"`
}

type ContractConfig struct {
	Name                string  `yaml:"name"`
	MaxStorageCapacity  float64 `yaml:"max_storage_capacity"`
	InjectionRateLimit  float64 `yaml:"injection_rate_limit"`
	WithdrawalRateLimit float64 `yaml:"withdrawal_rate_limit"`
	StorageCostMode     string  `yaml:"storage_cost_mode"`
	StorageCostRate     float64 `yaml:"storage_cost_rate"`
	StorageCostProrate  bool    `yaml:"storage_cost_prorate"`
	OperationFeeBasis   string  `yaml:"operation_fee_basis"`
	OperationFeeAmount  float64 `yaml:"operation_fee_amount"`
	TransportFee        float64 `yaml:"transport_fee"`
	AllowPartialFill    bool    `yaml:"allow_partial_fill"`
}

// ScheduleEntry is one schedule line. Price may be omitted to have the
// caller resolve it through the price estimator.
type ScheduleEntry struct {
	Date   string  `yaml:"date"` // YYYY-MM-DD
	Kind   string  `yaml:"kind"` // injection | withdrawal
	Volume float64 `yaml:"volume"`
	Price  float64 `yaml:"price,omitempty"`
}

// LoadContract loads, merges, and validates a contract file.
func LoadContract(path string) (*ContractFile, error) {
	c, err := LoadContractUnchecked(path)
	if err != nil {
		return nil, err
	}
	if _, err := c.Contract.ToParams(); err != nil {
		return nil, fmt.Errorf("contract config invalid: %w", err)
	}
	return c, nil
}

// LoadContractUnchecked loads and merges a contract file without validating
// it. Useful for debugging/printing partial configs.
func LoadContractUnchecked(path string) (*ContractFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c ContractFile
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// If base_file is set, load it and overlay any explicit overrides.
	if c.BaseFile != "" {
		basePath := c.BaseFile
		if !filepath.IsAbs(basePath) {
			// Prefer interpreting relative paths as relative to the contract
			// file directory, falling back to the path as given.
			cand := filepath.Join(filepath.Dir(path), basePath)
			if _, err := os.Stat(cand); err == nil {
				basePath = cand
			}
		}
		base, err := LoadContractUnchecked(basePath)
		if err != nil {
			return nil, err
		}
		c.Contract = MergeContract(base.Contract, c.Contract)
		if len(c.Schedule) == 0 {
			c.Schedule = base.Schedule
		}
	}
	return &c, nil
}

// MergeContract overlays non-zero fields from override onto base.
func MergeContract(base, override ContractConfig) ContractConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.MaxStorageCapacity != 0 {
		out.MaxStorageCapacity = override.MaxStorageCapacity
	}
	if override.InjectionRateLimit != 0 {
		out.InjectionRateLimit = override.InjectionRateLimit
	}
	if override.WithdrawalRateLimit != 0 {
		out.WithdrawalRateLimit = override.WithdrawalRateLimit
	}
	if override.StorageCostMode != "" {
		out.StorageCostMode = override.StorageCostMode
	}
	if override.StorageCostRate != 0 {
		out.StorageCostRate = override.StorageCostRate
	}
	if override.StorageCostProrate {
		out.StorageCostProrate = true
	}
	if override.OperationFeeBasis != "" {
		out.OperationFeeBasis = override.OperationFeeBasis
	}
	if override.OperationFeeAmount != 0 {
		out.OperationFeeAmount = override.OperationFeeAmount
	}
	if override.TransportFee != 0 {
		out.TransportFee = override.TransportFee
	}
	if override.AllowPartialFill {
		out.AllowPartialFill = true
	}
	return out
}

// ToParams converts the YAML shape to engine parameters, applying defaults
// for the two fee knobs ("flat_monthly" and "per_unit") when unset.
func (c ContractConfig) ToParams() (model.ContractParams, error) {
	mode := model.StorageCostMode(c.StorageCostMode)
	if c.StorageCostMode == "" {
		mode = model.StorageCostFlatMonthly
	}
	basis := model.FeeBasis(c.OperationFeeBasis)
	if c.OperationFeeBasis == "" {
		basis = model.FeePerUnit
	}

	p := model.ContractParams{
		MaxStorageCapacity:  c.MaxStorageCapacity,
		InjectionRateLimit:  c.InjectionRateLimit,
		WithdrawalRateLimit: c.WithdrawalRateLimit,
		StorageCost: model.StorageCostModel{
			Mode:    mode,
			Rate:    c.StorageCostRate,
			Prorate: c.StorageCostProrate,
		},
		OperationFee: model.OperationFee{
			Basis:  basis,
			Amount: c.OperationFeeAmount,
		},
		TransportFee:     c.TransportFee,
		AllowPartialFill: c.AllowPartialFill,
	}
	if err := p.Validate(); err != nil {
		return model.ContractParams{}, err
	}
	return p, nil
}

// ToEvent parses one schedule line. Index i is reported in errors so desk
// users can find the offending row.
func (s ScheduleEntry) ToEvent(i int) (model.Event, error) {
	d, err := time.Parse("2006-01-02", s.Date)
	if err != nil {
		return model.Event{}, &valuation.ValidationError{
			Index: i,
			Msg:   fmt.Sprintf("unparseable date %q (want YYYY-MM-DD)", s.Date),
		}
	}

	var kind model.EventKind
	switch strings.ToLower(s.Kind) {
	case "injection", "inject":
		kind = model.KindInjection
	case "withdrawal", "withdraw":
		kind = model.KindWithdrawal
	default:
		return model.Event{}, &valuation.ValidationError{
			Index: i,
			Msg:   fmt.Sprintf("unknown event kind %q", s.Kind),
		}
	}

	return model.Event{
		Date:   d.UTC(),
		Kind:   kind,
		Volume: s.Volume,
		Price:  s.Price,
	}, nil
}

// BuildSchedule converts every schedule line, failing on the first bad one.
func BuildSchedule(entries []ScheduleEntry) ([]model.Event, error) {
	events := make([]model.Event, 0, len(entries))
	for i, e := range entries {
		ev, err := e.ToEvent(i)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}
