package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"storage-valuation/internal/model"
	"storage-valuation/internal/valuation"
)

// Demo:
// - Build a summer-injection / winter-withdrawal contract in code
// - Run the valuation engine
// - Print the ledger and breakdown to show how the pieces fit together
func main() {
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/ledger.csv)")
	flag.Parse()

	params := model.ContractParams{
		MaxStorageCapacity:  1_000_000,
		InjectionRateLimit:  1_000_000,
		WithdrawalRateLimit: 1_000_000,
		StorageCost: model.StorageCostModel{
			Mode: model.StorageCostFlatMonthly,
			Rate: 100_000,
		},
		OperationFee: model.OperationFee{
			Basis:  model.FeePerEvent,
			Amount: 10_000,
		},
		TransportFee: 50_000,
	}

	events := []model.Event{
		{Date: date(2024, 1, 15), Kind: model.KindInjection, Volume: 1_000_000, Price: 2.0},
		{Date: date(2024, 5, 15), Kind: model.KindWithdrawal, Volume: 1_000_000, Price: 3.0},
	}

	result, err := valuation.New().Run(events, params)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("%-6s %-12s %-11s %8s %12s %12s %14s\n",
		"index", "date", "kind", "price", "moved", "volume_end", "cash_flow")
	for _, r := range result.Ledger {
		fmt.Printf("%-6d %-12s %-11s %8g %12g %12g %14s\n",
			r.Index, r.Date.Format("2006-01-02"), r.Kind, r.Price,
			r.MovedVolume, r.VolumeEnd, r.CashFlow.String())
	}

	fmt.Println()
	fmt.Printf("purchase cost:  %s\n", result.Breakdown.PurchaseCost.String())
	fmt.Printf("sale proceeds:  %s\n", result.Breakdown.SaleProceeds.String())
	fmt.Printf("storage fees:   %s\n", result.Breakdown.StorageFees.String())
	fmt.Printf("operation fees: %s\n", result.Breakdown.OperationFees.String())
	fmt.Printf("transport fees: %s\n", result.Breakdown.TransportFees.String())
	fmt.Printf("total value:    %s\n", result.TotalValue.String())

	if *outCSV != "" {
		if err := valuation.WriteLedgerCSV(*outCSV, result.Ledger); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("ledger written to %s\n", *outCSV)
	}
}

func date(y int, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}
