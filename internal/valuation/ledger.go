package valuation

import (
	"time"

	"github.com/shopspring/decimal"

	"storage-valuation/internal/model"
)

// LedgerRow is one row of per-event output.
// This is the primary artifact for "what happened" in a valuation run.
type LedgerRow struct {
	Index int

	Date  time.Time
	Kind  model.EventKind
	Price float64

	RequestedVolume float64
	MovedVolume     float64

	VolumeStart float64
	VolumeEnd   float64

	// TradeCashFlow is -price*moved for injections, +price*moved for
	// withdrawals. Fees are itemized separately.
	TradeCashFlow decimal.Decimal
	OperationFee  decimal.Decimal
	TransportFee  decimal.Decimal
	// StorageFee accrued between the previous event and this one.
	StorageFee decimal.Decimal

	CashFlow        decimal.Decimal // net for this row, storage fee included
	CumulativeValue decimal.Decimal
}

// Breakdown itemizes the contract value. Desks auditing a quote need the
// decomposition, not just the total. All amounts are positive magnitudes.
type Breakdown struct {
	PurchaseCost  decimal.Decimal
	SaleProceeds  decimal.Decimal
	StorageFees   decimal.Decimal
	OperationFees decimal.Decimal
	TransportFees decimal.Decimal
}

// Result is the outcome of one valuation run.
type Result struct {
	Ledger     []LedgerRow
	Breakdown  Breakdown
	TotalValue decimal.Decimal
	// FinalVolume is inventory left in the facility after the last event.
	// A valid but usually undesirable end state; reported, never an error.
	FinalVolume float64
}
