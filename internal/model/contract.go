package model

import (
	"errors"
	"fmt"
	"time"
)

// StorageCostMode selects how storage fees accrue between events.
type StorageCostMode string

const (
	// StorageCostFlatMonthly charges Rate once per calendar month during which
	// the facility holds any inventory. Partial months are charged in full
	// unless Prorate is set.
	StorageCostFlatMonthly StorageCostMode = "flat_monthly"
	// StorageCostPerUnitDay charges Rate per stored unit per elapsed day.
	StorageCostPerUnitDay StorageCostMode = "per_unit_day"
)

func (m StorageCostMode) Valid() bool {
	return m == StorageCostFlatMonthly || m == StorageCostPerUnitDay
}

// StorageCostModel describes the holding cost of the facility.
type StorageCostModel struct {
	Mode StorageCostMode
	// Rate is $/month for flat_monthly, $/unit/day for per_unit_day.
	Rate float64
	// Prorate applies to flat_monthly only: charge partial months by day
	// fraction instead of in full.
	Prorate bool
}

// FeeBasis selects whether the injection/withdrawal fee is charged per moved
// unit or once per event.
type FeeBasis string

const (
	FeePerUnit  FeeBasis = "per_unit"
	FeePerEvent FeeBasis = "per_event"
)

func (b FeeBasis) Valid() bool {
	return b == FeePerUnit || b == FeePerEvent
}

// OperationFee is the cost of the physical act of injecting or withdrawing.
type OperationFee struct {
	Basis  FeeBasis
	Amount float64
}

// ContractParams defines the static terms of one storage contract.
// Units:
// - volumes and capacity: commodity units (e.g. MMBtu)
// - rate limits: max volume per single injection/withdrawal event
// - fees: $ per the configured basis
type ContractParams struct {
	MaxStorageCapacity  float64
	InjectionRateLimit  float64
	WithdrawalRateLimit float64
	StorageCost         StorageCostModel
	OperationFee        OperationFee
	TransportFee        float64 // flat, charged once per injection and once per withdrawal trip

	// AllowPartialFill caps an infeasible event at the feasible volume instead
	// of failing the run. Off by default: a schedule that cannot be honored in
	// full surfaces as an error for manual review, not a silently degraded
	// valuation.
	AllowPartialFill bool
}

func (p ContractParams) Validate() error {
	if p.MaxStorageCapacity <= 0 {
		return errors.New("MaxStorageCapacity must be > 0")
	}
	if p.InjectionRateLimit <= 0 {
		return errors.New("InjectionRateLimit must be > 0")
	}
	if p.WithdrawalRateLimit <= 0 {
		return errors.New("WithdrawalRateLimit must be > 0")
	}
	if p.StorageCost.Rate < 0 {
		return errors.New("StorageCost.Rate must be >= 0")
	}
	if p.StorageCost.Rate > 0 && !p.StorageCost.Mode.Valid() {
		return fmt.Errorf("unknown storage cost mode %q", p.StorageCost.Mode)
	}
	if p.OperationFee.Amount < 0 {
		return errors.New("OperationFee.Amount must be >= 0")
	}
	if p.OperationFee.Amount > 0 && !p.OperationFee.Basis.Valid() {
		return fmt.Errorf("unknown operation fee basis %q", p.OperationFee.Basis)
	}
	if p.TransportFee < 0 {
		return errors.New("TransportFee must be >= 0")
	}
	return nil
}

// FacilityState tracks stored volume through a single valuation run.
// The engine owns it exclusively for the duration of the run; it is never
// shared and never persisted. Invariant: 0 <= CurrentVolume <= capacity.
type FacilityState struct {
	CurrentVolume float64
	LastEventDate time.Time
}
