package valuation

import (
	"math"

	"github.com/shopspring/decimal"

	"storage-valuation/internal/model"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run values a storage contract over the given schedule.
//
// Events may arrive in any order; Run normalizes them first, then folds the
// ordered stream through a facility state, accruing storage fees for the gaps
// between events and a trade cash flow per event. The fold is purely
// computational: concurrent Runs over distinct inputs need no coordination.
//
// Amounts are undiscounted (rates are assumed zero).
func (e *Engine) Run(events []model.Event, params model.ContractParams) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, &ValidationError{Index: -1, Msg: err.Error()}
	}
	ordered, err := Normalize(events)
	if err != nil {
		return nil, err
	}

	var (
		state     model.FacilityState
		breakdown Breakdown
		total     decimal.Decimal
	)
	ledger := make([]LedgerRow, 0, len(ordered))

	for idx, ev := range ordered {
		row := LedgerRow{
			Index:           idx,
			Date:            ev.Day(),
			Kind:            ev.Kind,
			Price:           ev.Price,
			RequestedVolume: ev.Volume,
			VolumeStart:     state.CurrentVolume,
		}

		// Holding cost on the volume carried since the previous event.
		if !state.LastEventDate.IsZero() {
			row.StorageFee = storageFee(params.StorageCost, state.CurrentVolume, state.LastEventDate, ev.Date)
		}

		moved, err := feasibleVolume(ev, state, params)
		if err != nil {
			return nil, err
		}
		row.MovedVolume = moved

		// A clamped-to-zero event makes no trip: no trade, no fees.
		if moved > 0 {
			trade := decimal.NewFromFloat(ev.Price).Mul(decimal.NewFromFloat(moved))
			switch ev.Kind {
			case model.KindInjection:
				row.TradeCashFlow = trade.Neg()
				breakdown.PurchaseCost = breakdown.PurchaseCost.Add(trade)
				state.CurrentVolume += moved
			case model.KindWithdrawal:
				row.TradeCashFlow = trade
				breakdown.SaleProceeds = breakdown.SaleProceeds.Add(trade)
				state.CurrentVolume -= moved
			}
			row.OperationFee = operationFee(params.OperationFee, moved)
			row.TransportFee = decimal.NewFromFloat(params.TransportFee)
			breakdown.OperationFees = breakdown.OperationFees.Add(row.OperationFee)
			breakdown.TransportFees = breakdown.TransportFees.Add(row.TransportFee)
		}
		breakdown.StorageFees = breakdown.StorageFees.Add(row.StorageFee)

		row.CashFlow = row.TradeCashFlow.
			Sub(row.OperationFee).
			Sub(row.TransportFee).
			Sub(row.StorageFee)
		total = total.Add(row.CashFlow)
		row.CumulativeValue = total
		row.VolumeEnd = state.CurrentVolume

		state.LastEventDate = ev.Day()
		ledger = append(ledger, row)
	}

	return &Result{
		Ledger:      ledger,
		Breakdown:   breakdown,
		TotalValue:  total,
		FinalVolume: state.CurrentVolume,
	}, nil
}

// feasibleVolume returns the volume the facility can actually move for ev.
// With AllowPartialFill unset it fails instead of capping.
func feasibleVolume(ev model.Event, state model.FacilityState, p model.ContractParams) (float64, error) {
	switch ev.Kind {
	case model.KindInjection:
		headroom := math.Max(0, p.MaxStorageCapacity-state.CurrentVolume)
		if p.AllowPartialFill {
			return math.Min(ev.Volume, math.Min(p.InjectionRateLimit, headroom)), nil
		}
		if ev.Volume > p.InjectionRateLimit {
			return 0, &RateLimitExceededError{Date: ev.Day(), Kind: ev.Kind, Requested: ev.Volume, Limit: p.InjectionRateLimit}
		}
		if ev.Volume > headroom {
			return 0, &CapacityExceededError{Date: ev.Day(), Requested: ev.Volume, Headroom: headroom}
		}
		return ev.Volume, nil

	case model.KindWithdrawal:
		if p.AllowPartialFill {
			return math.Min(ev.Volume, math.Min(p.WithdrawalRateLimit, state.CurrentVolume)), nil
		}
		if ev.Volume > p.WithdrawalRateLimit {
			return 0, &RateLimitExceededError{Date: ev.Day(), Kind: ev.Kind, Requested: ev.Volume, Limit: p.WithdrawalRateLimit}
		}
		if ev.Volume > state.CurrentVolume {
			return 0, &RateLimitExceededError{Date: ev.Day(), Kind: ev.Kind, Requested: ev.Volume, Limit: state.CurrentVolume}
		}
		return ev.Volume, nil
	}
	// Normalize rejects unknown kinds before we get here.
	return 0, &ValidationError{Index: -1, Msg: "unreachable: unknown event kind"}
}
