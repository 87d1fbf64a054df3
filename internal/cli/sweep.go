package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"storage-valuation/internal/analysis"
	"storage-valuation/internal/config"
)

var (
	sweepContract     string
	sweepStorageRates []float64
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Value a contract across candidate storage rates",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sweepContract == "" {
			return errors.New("--contract is required")
		}
		if len(sweepStorageRates) == 0 {
			return errors.New("--storage-rates is required")
		}

		cf, err := config.LoadContract(sweepContract)
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

		name := cf.Contract.Name
		if name == "" {
			name = "contract"
		}
		scenarios := analysis.StorageRateScenarios(name, events, params, sweepStorageRates)
		ranked := analysis.Rank(analysis.Sweep(scenarios))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-40s %16s %12s\n", "scenario", "total_value", "final_vol")
		for _, o := range ranked {
			if o.Err != nil {
				fmt.Fprintf(out, "%-40s %16s %12s  (%v)\n", o.Name, "-", "-", o.Err)
				continue
			}
			fmt.Fprintf(out, "%-40s %16s %12g\n", o.Name, o.TotalValue.String(), o.FinalVolume)
		}
		return nil
	},
}

func init() {
	sweepCmd.Flags().StringVar(&sweepContract, "contract", "", "Path to contract YAML file")
	sweepCmd.Flags().Float64SliceVar(&sweepStorageRates, "storage-rates", nil, "Candidate storage rates, comma-separated")
}
