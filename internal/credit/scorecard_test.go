package credit

import (
	"math"
	"testing"
)

func TestExpectedLoss_Boundary(t *testing.T) {
	// A certain default recovers 10%: EL = 1.0 * 7200 * 0.9.
	got := ExpectedLoss(1.0, 7200, DefaultRecoveryRate)
	if got != 6480.0 {
		t.Errorf("ExpectedLoss(1.0, 7200, 0.10) = %g, want 6480", got)
	}
}

func TestExpectedLoss_Zero(t *testing.T) {
	if got := ExpectedLoss(0, 7200, DefaultRecoveryRate); got != 0 {
		t.Errorf("zero PD should mean zero loss, got %g", got)
	}
}

func TestProbabilityOfDefault_Bounds(t *testing.T) {
	s := DefaultScorecard()
	borrowers := []BorrowerFeatures{
		{CreditLinesOutstanding: 0, LoanAmtOutstanding: 3000, TotalDebtOutstanding: 2000, Income: 90000, YearsEmployed: 8, FicoScore: 750},
		{CreditLinesOutstanding: 4, LoanAmtOutstanding: 8000, TotalDebtOutstanding: 25000, Income: 30000, YearsEmployed: 1, FicoScore: 500},
	}
	for _, b := range borrowers {
		pd, err := s.ProbabilityOfDefault(b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pd <= 0 || pd >= 1 {
			t.Errorf("PD %g outside (0, 1) for %+v", pd, b)
		}
	}
}

func TestProbabilityOfDefault_RiskOrdering(t *testing.T) {
	s := DefaultScorecard()
	lowRisk := BorrowerFeatures{CreditLinesOutstanding: 0, LoanAmtOutstanding: 3000, TotalDebtOutstanding: 2000, Income: 90000, YearsEmployed: 8, FicoScore: 750}
	highRisk := BorrowerFeatures{CreditLinesOutstanding: 4, LoanAmtOutstanding: 8000, TotalDebtOutstanding: 25000, Income: 30000, YearsEmployed: 1, FicoScore: 500}

	lo, err := s.ProbabilityOfDefault(lowRisk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hi, err := s.ProbabilityOfDefault(highRisk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lo >= hi {
		t.Errorf("expected low-risk PD %g < high-risk PD %g", lo, hi)
	}
}

func TestFit_SeparableData(t *testing.T) {
	// Two clearly separated borrower populations; a fitted scorecard must
	// order them correctly.
	var features []BorrowerFeatures
	var labels []int
	for i := 0; i < 40; i++ {
		jitter := float64(i % 7)
		features = append(features, BorrowerFeatures{
			CreditLinesOutstanding: 0 + jitter/7,
			LoanAmtOutstanding:     3000 + 50*jitter,
			TotalDebtOutstanding:   2000 + 100*jitter,
			Income:                 90000 - 500*jitter,
			YearsEmployed:          8 - jitter/7,
			FicoScore:              750 - 3*jitter,
		})
		labels = append(labels, 0)

		features = append(features, BorrowerFeatures{
			CreditLinesOutstanding: 5 - jitter/7,
			LoanAmtOutstanding:     9000 - 50*jitter,
			TotalDebtOutstanding:   26000 - 100*jitter,
			Income:                 28000 + 500*jitter,
			YearsEmployed:          1 + jitter/7,
			FicoScore:              500 + 3*jitter,
		})
		labels = append(labels, 1)
	}

	s, err := Fit(features, labels, FitOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	good, err := s.ProbabilityOfDefault(features[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad, err := s.ProbabilityOfDefault(features[1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if good > 0.5 {
		t.Errorf("non-defaulting population scored PD %g > 0.5", good)
	}
	if bad < 0.5 {
		t.Errorf("defaulting population scored PD %g < 0.5", bad)
	}
	if math.Abs(good-bad) < 0.2 {
		t.Errorf("populations barely separated: %g vs %g", good, bad)
	}
}

func TestFit_InputValidation(t *testing.T) {
	if _, err := Fit(nil, nil, FitOptions{}); err == nil {
		t.Error("expected error for empty training set")
	}
	if _, err := Fit(make([]BorrowerFeatures, 2), []int{1}, FitOptions{}); err == nil {
		t.Error("expected error for length mismatch")
	}
}
