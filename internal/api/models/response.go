package models

import "time"

// ValuationResponse represents the response from a valuation run
type ValuationResponse struct {
	ID      string           `json:"id,omitempty"`
	Status  string           `json:"status"`
	Summary ValuationSummary `json:"summary"`
	Ledger  []LedgerRow      `json:"ledger,omitempty"`
}

// ValuationSummary contains aggregated valuation results. Monetary amounts
// are decimal strings so no precision is lost in transit.
type ValuationSummary struct {
	TotalValue  string     `json:"total_value"`
	Breakdown   Breakdown  `json:"breakdown"`
	FinalVolume float64    `json:"final_volume"`
	EventCount  int        `json:"event_count"`
	Window      TimeWindow `json:"window"`
}

// Breakdown itemizes the contract value by component
type Breakdown struct {
	PurchaseCost  string `json:"purchase_cost"`
	SaleProceeds  string `json:"sale_proceeds"`
	StorageFees   string `json:"storage_fees"`
	OperationFees string `json:"operation_fees"`
	TransportFees string `json:"transport_fees"`
}

// TimeWindow represents a time range
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LedgerRow represents one event in the valuation ledger
type LedgerRow struct {
	Index           int       `json:"index"`
	Date            time.Time `json:"date"`
	Kind            string    `json:"kind"` // "INJECTION" or "WITHDRAWAL"
	Price           float64   `json:"price"`
	RequestedVolume float64   `json:"requested_volume"`
	MovedVolume     float64   `json:"moved_volume"`
	VolumeStart     float64   `json:"volume_start"`
	VolumeEnd       float64   `json:"volume_end"`
	TradeCashFlow   string    `json:"trade_cash_flow"`
	OperationFee    string    `json:"operation_fee"`
	TransportFee    string    `json:"transport_fee"`
	StorageFee      string    `json:"storage_fee"`
	CashFlow        string    `json:"cash_flow"`
	CumulativeValue string    `json:"cumulative_value"`
}

// SweepResponse represents the response from a variation sweep, ranked by
// total value descending with failed runs last
type SweepResponse struct {
	Outcomes []SweepOutcome `json:"outcomes"`
}

// SweepOutcome contains results for one variation
type SweepOutcome struct {
	Name        string  `json:"name"`
	TotalValue  string  `json:"total_value,omitempty"`
	FinalVolume float64 `json:"final_volume"`
	Error       string  `json:"error,omitempty"`
}

// PriceResponse represents a resolved price
type PriceResponse struct {
	Date    string  `json:"date"` // month end, YYYY-MM-DD
	Price   float64 `json:"price"`
	Kind    string  `json:"kind"` // "historical" or "forecast"
	Lower95 float64 `json:"lower_95,omitempty"`
	Upper95 float64 `json:"upper_95,omitempty"`
}

// CurveResponse represents a forecast curve
type CurveResponse struct {
	Points []PriceResponse `json:"points"`
}

// ExpectedLossResponse represents a scored loan
type ExpectedLossResponse struct {
	ProbabilityOfDefault float64 `json:"probability_of_default"`
	RecoveryRate         float64 `json:"recovery_rate"`
	Exposure             float64 `json:"exposure"`
	ExpectedLoss         float64 `json:"expected_loss"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
