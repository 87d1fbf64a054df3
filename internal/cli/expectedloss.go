package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"storage-valuation/internal/credit"
)

var (
	elCreditLines  float64
	elLoanAmt      float64
	elTotalDebt    float64
	elIncome       float64
	elYearsEmp     float64
	elFico         float64
	elExposure     float64
	elRecoveryRate float64
)

var expectedLossCmd = &cobra.Command{
	Use:   "expected-loss",
	Short: "Score a counterparty loan and compute expected loss",
	RunE: func(cmd *cobra.Command, args []string) error {
		if elExposure <= 0 {
			return errors.New("--exposure must be greater than 0")
		}
		recovery := elRecoveryRate
		if !cmd.Flags().Changed("recovery-rate") {
			recovery = getConfig().Credit.RecoveryRate
		}
		if recovery < 0 || recovery >= 1 {
			return errors.New("--recovery-rate must be in [0, 1)")
		}

		scorecard, err := loadScorecard()
		if err != nil {
			return err
		}

		pd, err := scorecard.ProbabilityOfDefault(credit.BorrowerFeatures{
			CreditLinesOutstanding: elCreditLines,
			LoanAmtOutstanding:     elLoanAmt,
			TotalDebtOutstanding:   elTotalDebt,
			Income:                 elIncome,
			YearsEmployed:          elYearsEmp,
			FicoScore:              elFico,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "probability of default: %.4f\n", pd)
		fmt.Fprintf(out, "recovery rate:          %.2f\n", recovery)
		fmt.Fprintf(out, "exposure:               %.2f\n", elExposure)
		fmt.Fprintf(out, "expected loss:          %.2f\n", credit.ExpectedLoss(pd, elExposure, recovery))
		return nil
	},
}

func init() {
	expectedLossCmd.Flags().Float64Var(&elCreditLines, "credit-lines", 0, "Credit lines outstanding")
	expectedLossCmd.Flags().Float64Var(&elLoanAmt, "loan-amt", 0, "Loan amount outstanding")
	expectedLossCmd.Flags().Float64Var(&elTotalDebt, "total-debt", 0, "Total debt outstanding")
	expectedLossCmd.Flags().Float64Var(&elIncome, "income", 0, "Annual income")
	expectedLossCmd.Flags().Float64Var(&elYearsEmp, "years-employed", 0, "Years employed")
	expectedLossCmd.Flags().Float64Var(&elFico, "fico", 0, "FICO score")
	expectedLossCmd.Flags().Float64Var(&elExposure, "exposure", 0, "Loan exposure at default")
	expectedLossCmd.Flags().Float64Var(&elRecoveryRate, "recovery-rate", credit.DefaultRecoveryRate, "Recovery rate")
}
