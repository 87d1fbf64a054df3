package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresStore implements Store using PostgreSQL. Monetary values are
// stored as NUMERIC for exact decimal precision.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Init creates the valuation_runs table if it does not exist.
func (s *PostgresStore) Init(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS valuation_runs (
			id             UUID PRIMARY KEY,
			contract_name  TEXT NOT NULL DEFAULT '',
			event_count    INT NOT NULL,
			total_value    NUMERIC NOT NULL,
			purchase_cost  NUMERIC NOT NULL,
			sale_proceeds  NUMERIC NOT NULL,
			storage_fees   NUMERIC NOT NULL,
			operation_fees NUMERIC NOT NULL,
			transport_fees NUMERIC NOT NULL,
			final_volume   DOUBLE PRECISION NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("init valuation_runs: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, rec *ValuationRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO valuation_runs
		   (id, contract_name, event_count, total_value, purchase_cost, sale_proceeds,
		    storage_fees, operation_fees, transport_fees, final_volume, created_at)
		 VALUES ($1, $2, $3, $4::NUMERIC, $5::NUMERIC, $6::NUMERIC,
		         $7::NUMERIC, $8::NUMERIC, $9::NUMERIC, $10, $11)`,
		rec.ID, rec.ContractName, rec.EventCount,
		rec.TotalValue.String(), rec.PurchaseCost.String(), rec.SaleProceeds.String(),
		rec.StorageFees.String(), rec.OperationFees.String(), rec.TransportFees.String(),
		rec.FinalVolume, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", rec.ID, err)
	}
	return nil
}

func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (*ValuationRecord, error) {
	var rec ValuationRecord
	var total, purchase, sale, storage, operation, transport string

	err := s.pool.QueryRow(ctx,
		`SELECT id, contract_name, event_count,
		        total_value::TEXT, purchase_cost::TEXT, sale_proceeds::TEXT,
		        storage_fees::TEXT, operation_fees::TEXT, transport_fees::TEXT,
		        final_volume, created_at
		 FROM valuation_runs WHERE id = $1`, id).
		Scan(&rec.ID, &rec.ContractName, &rec.EventCount,
			&total, &purchase, &sale,
			&storage, &operation, &transport,
			&rec.FinalVolume, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}

	rec.TotalValue, _ = decimal.NewFromString(total)
	rec.PurchaseCost, _ = decimal.NewFromString(purchase)
	rec.SaleProceeds, _ = decimal.NewFromString(sale)
	rec.StorageFees, _ = decimal.NewFromString(storage)
	rec.OperationFees, _ = decimal.NewFromString(operation)
	rec.TransportFees, _ = decimal.NewFromString(transport)

	return &rec, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]ValuationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, contract_name, event_count,
		        total_value::TEXT, purchase_cost::TEXT, sale_proceeds::TEXT,
		        storage_fees::TEXT, operation_fees::TEXT, transport_fees::TEXT,
		        final_volume, created_at
		 FROM valuation_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ValuationRecord
	for rows.Next() {
		var rec ValuationRecord
		var total, purchase, sale, storage, operation, transport string
		if err := rows.Scan(&rec.ID, &rec.ContractName, &rec.EventCount,
			&total, &purchase, &sale,
			&storage, &operation, &transport,
			&rec.FinalVolume, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.TotalValue, _ = decimal.NewFromString(total)
		rec.PurchaseCost, _ = decimal.NewFromString(purchase)
		rec.SaleProceeds, _ = decimal.NewFromString(sale)
		rec.StorageFees, _ = decimal.NewFromString(storage)
		rec.OperationFees, _ = decimal.NewFromString(operation)
		rec.TransportFees, _ = decimal.NewFromString(transport)
		out = append(out, rec)
	}
	return out, rows.Err()
}
