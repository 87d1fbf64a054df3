package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"storage-valuation/internal/config"
	"storage-valuation/internal/valuation"
)

var (
	valueContract      string
	valueLedgerCSV     string
	valueShowLedger    bool
	valueResolvePrices bool
)

var valueCmd = &cobra.Command{
	Use:   "value",
	Short: "Value a storage contract from a YAML contract file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if valueContract == "" {
			return errors.New("--contract is required")
		}

		cf, err := config.LoadContract(valueContract)
		if err != nil {
			return err
		}
		params, err := cf.Contract.ToParams()
		if err != nil {
			return err
		}
		events, err := config.BuildSchedule(cf.Schedule)
		if err != nil {
			return err
		}

		if valueResolvePrices {
			estimator, err := loadEstimator()
			if err != nil {
				return err
			}
			events, err = estimator.ResolvePrices(events)
			if err != nil {
				return err
			}
		}

		result, err := valuation.New().Run(events, params)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if cf.Contract.Name != "" {
			fmt.Fprintf(out, "contract:        %s\n", cf.Contract.Name)
		}
		fmt.Fprintf(out, "events:          %d\n", len(result.Ledger))
		fmt.Fprintf(out, "purchase cost:   %s\n", result.Breakdown.PurchaseCost.String())
		fmt.Fprintf(out, "sale proceeds:   %s\n", result.Breakdown.SaleProceeds.String())
		fmt.Fprintf(out, "storage fees:    %s\n", result.Breakdown.StorageFees.String())
		fmt.Fprintf(out, "operation fees:  %s\n", result.Breakdown.OperationFees.String())
		fmt.Fprintf(out, "transport fees:  %s\n", result.Breakdown.TransportFees.String())
		fmt.Fprintf(out, "total value:     %s\n", result.TotalValue.String())
		if result.FinalVolume != 0 {
			fmt.Fprintf(out, "final volume:    %g (inventory left in the facility)\n", result.FinalVolume)
		}

		if valueShowLedger {
			fmt.Fprintf(out, "\n%-6s %-12s %-11s %10s %12s %12s %14s\n",
				"index", "date", "kind", "price", "moved", "volume_end", "cash_flow")
			for _, r := range result.Ledger {
				fmt.Fprintf(out, "%-6d %-12s %-11s %10g %12g %12g %14s\n",
					r.Index, r.Date.Format("2006-01-02"), r.Kind, r.Price,
					r.MovedVolume, r.VolumeEnd, r.CashFlow.String())
			}
		}

		if valueLedgerCSV != "" {
			if err := valuation.WriteLedgerCSV(valueLedgerCSV, result.Ledger); err != nil {
				return err
			}
			log.Info().Str("path", valueLedgerCSV).Msg("ledger written")
		}

		return nil
	},
}

func init() {
	valueCmd.Flags().StringVar(&valueContract, "contract", "", "Path to contract YAML file")
	valueCmd.Flags().StringVar(&valueLedgerCSV, "ledger-csv", "", "Write the per-event ledger to a CSV file")
	valueCmd.Flags().BoolVar(&valueShowLedger, "ledger", false, "Print the per-event ledger")
	valueCmd.Flags().BoolVar(&valueResolvePrices, "resolve-prices", false, "Fill missing schedule prices from the price estimator")
}
