// Package credit is the expected-loss collaborator: a logistic scorecard
// mapping borrower features to a probability of default, plus the downstream
// expected-loss formula. It shares no state with the valuation engine.
package credit

import (
	"errors"
	"math"
)

// DefaultRecoveryRate is the fraction of exposure assumed recoverable after
// a default when the caller does not supply one.
const DefaultRecoveryRate = 0.10

// BorrowerFeatures are the model inputs, in natural (unstandardized) units.
type BorrowerFeatures struct {
	CreditLinesOutstanding float64
	LoanAmtOutstanding     float64
	TotalDebtOutstanding   float64
	Income                 float64
	YearsEmployed          float64
	FicoScore              float64
}

func (f BorrowerFeatures) vector() [numFeatures]float64 {
	return [numFeatures]float64{
		f.CreditLinesOutstanding,
		f.LoanAmtOutstanding,
		f.TotalDebtOutstanding,
		f.Income,
		f.YearsEmployed,
		f.FicoScore,
	}
}

const numFeatures = 6

// Scorecard is a fitted logistic model over standardized borrower features.
type Scorecard struct {
	Means     [numFeatures]float64
	Stds      [numFeatures]float64
	Coefs     [numFeatures]float64
	Intercept float64
}

// DefaultScorecard returns coefficients fitted offline on the reference loan
// book. Use Fit to retrain from a fresh extract.
func DefaultScorecard() *Scorecard {
	return &Scorecard{
		Means:     [numFeatures]float64{1.46, 4160, 8720, 70040, 4.55, 637},
		Stds:      [numFeatures]float64{1.74, 1420, 6830, 20070, 1.57, 61},
		Coefs:     [numFeatures]float64{1.92, 0.31, 1.18, -0.87, -0.42, -1.05},
		Intercept: -1.48,
	}
}

func (s *Scorecard) validate() error {
	for _, std := range s.Stds {
		if std <= 0 {
			return errors.New("scorecard has a non-positive feature std")
		}
	}
	return nil
}

// ProbabilityOfDefault scores a borrower; the result is always in (0, 1).
func (s *Scorecard) ProbabilityOfDefault(f BorrowerFeatures) (float64, error) {
	if err := s.validate(); err != nil {
		return 0, err
	}
	z := s.Intercept
	x := f.vector()
	for i := 0; i < numFeatures; i++ {
		z += s.Coefs[i] * (x[i] - s.Means[i]) / s.Stds[i]
	}
	return sigmoid(z), nil
}

// ExpectedLoss applies EL = PD x exposure x (1 - recovery rate).
func ExpectedLoss(pd, exposure, recoveryRate float64) float64 {
	return pd * exposure * (1 - recoveryRate)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
