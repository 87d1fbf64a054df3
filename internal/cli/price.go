package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storage-valuation/internal/pricing"
)

var priceDate string

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Estimate the commodity price for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		if priceDate == "" {
			return errors.New("--date is required")
		}
		date, err := time.Parse("2006-01-02", priceDate)
		if err != nil {
			return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
		}

		estimator, err := loadEstimator()
		if err != nil {
			return err
		}
		est, err := estimator.Estimate(date)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "date:  %s (month end)\n", est.Date.Format("2006-01-02"))
		fmt.Fprintf(out, "price: %.4f\n", est.Price)
		fmt.Fprintf(out, "kind:  %s\n", est.Kind)
		if est.Kind == pricing.EstimateForecast {
			fmt.Fprintf(out, "95%% band: [%.4f, %.4f]\n", est.Lower95, est.Upper95)
		}
		return nil
	},
}

func init() {
	priceCmd.Flags().StringVar(&priceDate, "date", "", "Date to price (YYYY-MM-DD)")
}
