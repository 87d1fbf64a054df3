package valuation

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WriteLedgerCSV dumps the per-event ledger for spreadsheet review.
func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"date",
		"kind",
		"price",
		"requested_volume",
		"moved_volume",
		"volume_start",
		"volume_end",
		"trade_cash_flow",
		"operation_fee",
		"transport_fee",
		"storage_fee",
		"cash_flow",
		"cumulative_value",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			r.Date.Format("2006-01-02"),
			string(r.Kind),
			fmtFloat(r.Price),
			fmtFloat(r.RequestedVolume),
			fmtFloat(r.MovedVolume),
			fmtFloat(r.VolumeStart),
			fmtFloat(r.VolumeEnd),
			r.TradeCashFlow.String(),
			r.OperationFee.String(),
			r.TransportFee.String(),
			r.StorageFee.String(),
			r.CashFlow.String(),
			r.CumulativeValue.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
