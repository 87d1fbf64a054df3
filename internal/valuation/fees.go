package valuation

import (
	"time"

	"github.com/shopspring/decimal"

	"storage-valuation/internal/model"
)

// storageFee is the holding cost for `volume` units sitting in the facility
// from `from` until `to`. A facility holding zero inventory incurs nothing.
func storageFee(m model.StorageCostModel, volume float64, from, to time.Time) decimal.Decimal {
	if volume <= 0 || m.Rate == 0 {
		return decimal.Zero
	}
	from, to = model.Day(from), model.Day(to)
	if !to.After(from) {
		return decimal.Zero
	}

	rate := decimal.NewFromFloat(m.Rate)
	switch m.Mode {
	case model.StorageCostPerUnitDay:
		days := daysBetween(from, to)
		return rate.Mul(decimal.NewFromFloat(volume)).Mul(decimal.NewFromInt(int64(days)))
	case model.StorageCostFlatMonthly:
		months, remDays := monthsBetween(from, to)
		fee := rate.Mul(decimal.NewFromInt(int64(months)))
		if remDays > 0 {
			if m.Prorate {
				anchor := from.AddDate(0, months, 0)
				frac := decimal.NewFromInt(int64(remDays)).
					Div(decimal.NewFromInt(int64(daysInMonth(anchor))))
				fee = fee.Add(rate.Mul(frac))
			} else {
				// Partial months are charged in full under the flat model.
				fee = fee.Add(rate)
			}
		}
		return fee
	default:
		return decimal.Zero
	}
}

// operationFee is the injection/withdrawal charge for moving `volume` units.
func operationFee(f model.OperationFee, volume float64) decimal.Decimal {
	amount := decimal.NewFromFloat(f.Amount)
	if f.Basis == model.FeePerEvent {
		return amount
	}
	return amount.Mul(decimal.NewFromFloat(volume))
}

func daysBetween(from, to time.Time) int {
	return int(model.Day(to).Sub(model.Day(from)).Hours() / 24)
}

// monthsBetween counts whole months from `from` to `to`, anchored on the day
// of month of `from`, plus the leftover days past the last full month.
func monthsBetween(from, to time.Time) (months, remDays int) {
	from, to = model.Day(from), model.Day(to)
	months = (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	anchor := from.AddDate(0, months, 0)
	if anchor.After(to) {
		months--
		anchor = from.AddDate(0, months, 0)
	}
	remDays = daysBetween(anchor, to)
	return months, remDays
}

func daysInMonth(t time.Time) int {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
