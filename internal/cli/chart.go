package cli

import (
	"github.com/spf13/cobra"

	"storage-valuation/internal/pricing"
)

var (
	chartOutput string
	chartMonths int
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the price history and forecast to a PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		estimator, err := loadEstimator()
		if err != nil {
			return err
		}
		if err := pricing.WriteChartPNG(chartOutput, estimator, chartMonths); err != nil {
			return err
		}
		log.Info().Str("path", chartOutput).Int("forecast_months", chartMonths).Msg("chart written")
		return nil
	},
}

func init() {
	chartCmd.Flags().StringVar(&chartOutput, "output", "prices.png", "Output PNG path")
	chartCmd.Flags().IntVar(&chartMonths, "months", 12, "Forecast months to append (0-12)")
}
