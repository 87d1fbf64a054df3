package models

// ValuationRequest represents the request body for valuing a storage contract
type ValuationRequest struct {
	Contract ContractSpec     `json:"contract" binding:"required"`
	Schedule []ScheduleItem   `json:"schedule" binding:"required"`
	Options  ValuationOptions `json:"options,omitempty"`
}

// ContractSpec defines contract terms. ContractFile optionally names a preset
// under examples/contracts/; explicit fields override the preset.
type ContractSpec struct {
	ContractFile        string  `json:"contract_file,omitempty"`
	Name                string  `json:"name,omitempty"`
	MaxStorageCapacity  float64 `json:"max_storage_capacity"`
	InjectionRateLimit  float64 `json:"injection_rate_limit"`
	WithdrawalRateLimit float64 `json:"withdrawal_rate_limit"`
	StorageCostMode     string  `json:"storage_cost_mode,omitempty"` // "flat_monthly" or "per_unit_day"
	StorageCostRate     float64 `json:"storage_cost_rate,omitempty"`
	StorageCostProrate  bool    `json:"storage_cost_prorate,omitempty"`
	OperationFeeBasis   string  `json:"operation_fee_basis,omitempty"` // "per_unit" or "per_event"
	OperationFeeAmount  float64 `json:"operation_fee_amount,omitempty"`
	TransportFee        float64 `json:"transport_fee,omitempty"`
	AllowPartialFill    bool    `json:"allow_partial_fill,omitempty"`
}

// ScheduleItem is one injection or withdrawal. Price may be omitted when
// options.resolve_prices is set; the price estimator fills it in.
type ScheduleItem struct {
	Date   string  `json:"date" binding:"required"` // YYYY-MM-DD
	Kind   string  `json:"kind" binding:"required"` // "injection" or "withdrawal"
	Volume float64 `json:"volume" binding:"required"`
	Price  float64 `json:"price,omitempty"`
}

// ValuationOptions contains optional valuation parameters
type ValuationOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
	ResolvePrices bool `json:"resolve_prices,omitempty"` // fill zero prices from the estimator
}

// SweepRequest represents a request to value several contract variations
// against one schedule
type SweepRequest struct {
	BaseContract ContractSpec        `json:"base_contract" binding:"required"`
	Schedule     []ScheduleItem      `json:"schedule" binding:"required"`
	Variations   []ContractVariation `json:"variations" binding:"required"`
	Options      ValuationOptions    `json:"options,omitempty"`
}

// ContractVariation defines one variation to value
type ContractVariation struct {
	Name     string       `json:"name" binding:"required"`
	Contract ContractSpec `json:"contract"`
}

// PriceRequest represents a price lookup
type PriceRequest struct {
	Date string `form:"date" binding:"required"` // YYYY-MM-DD
}

// ExpectedLossRequest represents a request to score one loan
type ExpectedLossRequest struct {
	CreditLinesOutstanding float64  `json:"credit_lines_outstanding"`
	LoanAmtOutstanding     float64  `json:"loan_amt_outstanding"`
	TotalDebtOutstanding   float64  `json:"total_debt_outstanding"`
	Income                 float64  `json:"income"`
	YearsEmployed          float64  `json:"years_employed"`
	FicoScore              float64  `json:"fico_score"`
	Exposure               float64  `json:"exposure" binding:"required"`
	RecoveryRate           *float64 `json:"recovery_rate,omitempty"` // default from config
}
