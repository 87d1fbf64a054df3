package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"storage-valuation/internal/config"
	"storage-valuation/internal/credit"
	"storage-valuation/internal/logging"
	"storage-valuation/internal/pricing"
)

var (
	cfgFile  string
	logLevel string

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "storageval",
	Short: "Value commodity storage contracts",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg != nil {
			return nil
		}

		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if logLevel != "" {
			loaded.Logging.Level = logLevel
		}

		cfg = loaded
		log = logging.New(cfg.Logging)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level defined in config")

	rootCmd.AddCommand(valueCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(expectedLossCmd)
	rootCmd.AddCommand(versionCmd)
}

func getConfig() *config.Config {
	if cfg == nil {
		panic("configuration not loaded; PersistentPreRunE not executed")
	}
	return cfg
}

func loadEstimator() (*pricing.Estimator, error) {
	path := getConfig().Pricing.SeriesCSV
	if path == "" {
		return nil, fmt.Errorf("no price history configured; set pricing.series_csv")
	}
	series, err := pricing.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	return pricing.NewEstimator(series)
}

// loadScorecard retrains from credit.loan_csv when configured, otherwise
// returns the scorecard fitted offline on the reference loan book.
func loadScorecard() (*credit.Scorecard, error) {
	path := getConfig().Credit.LoanCSV
	if path == "" {
		return credit.DefaultScorecard(), nil
	}
	features, labels, err := credit.LoadLoanCSV(path)
	if err != nil {
		return nil, err
	}
	log.Info().Int("rows", len(features)).Str("path", path).Msg("retraining scorecard")
	return credit.Fit(features, labels, credit.FitOptions{})
}
