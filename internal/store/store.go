// Package store defines persistence for completed valuation runs.
// Implementations include PostgreSQL and in-memory (for testing and
// development without a database).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storage-valuation/internal/valuation"
)

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("valuation run not found")

// ValuationRecord is a completed run as persisted. Monetary values are
// decimals; ledgers are not persisted, only totals and the breakdown.
type ValuationRecord struct {
	ID            uuid.UUID       `json:"id"`
	ContractName  string          `json:"contract_name"`
	EventCount    int             `json:"event_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
	PurchaseCost  decimal.Decimal `json:"purchase_cost"`
	SaleProceeds  decimal.Decimal `json:"sale_proceeds"`
	StorageFees   decimal.Decimal `json:"storage_fees"`
	OperationFees decimal.Decimal `json:"operation_fees"`
	TransportFees decimal.Decimal `json:"transport_fees"`
	FinalVolume   float64         `json:"final_volume"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewRecord builds a record from an engine result.
func NewRecord(contractName string, eventCount int, res *valuation.Result) *ValuationRecord {
	return &ValuationRecord{
		ID:            uuid.New(),
		ContractName:  contractName,
		EventCount:    eventCount,
		TotalValue:    res.TotalValue,
		PurchaseCost:  res.Breakdown.PurchaseCost,
		SaleProceeds:  res.Breakdown.SaleProceeds,
		StorageFees:   res.Breakdown.StorageFees,
		OperationFees: res.Breakdown.OperationFees,
		TransportFees: res.Breakdown.TransportFees,
		FinalVolume:   res.FinalVolume,
		CreatedAt:     time.Now().UTC(),
	}
}

// Store is the persistence interface for valuation runs.
type Store interface {
	// SaveRun persists a completed valuation run.
	SaveRun(ctx context.Context, rec *ValuationRecord) error

	// GetRun retrieves a run by id, or ErrNotFound.
	GetRun(ctx context.Context, id uuid.UUID) (*ValuationRecord, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]ValuationRecord, error)
}
