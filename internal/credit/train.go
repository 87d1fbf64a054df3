package credit

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
)

// FitOptions controls the gradient-descent fit.
type FitOptions struct {
	LearningRate float64
	Iterations   int
}

func (o FitOptions) withDefaults() FitOptions {
	if o.LearningRate <= 0 {
		o.LearningRate = 0.1
	}
	if o.Iterations <= 0 {
		o.Iterations = 2000
	}
	return o
}

// Fit trains a logistic scorecard by batch gradient descent on standardized
// features. Labels are 1 for default, 0 otherwise.
func Fit(features []BorrowerFeatures, labels []int, opts FitOptions) (*Scorecard, error) {
	if len(features) == 0 {
		return nil, errors.New("no training rows")
	}
	if len(features) != len(labels) {
		return nil, fmt.Errorf("feature/label length mismatch: %d vs %d", len(features), len(labels))
	}
	opts = opts.withDefaults()

	n := float64(len(features))
	x := make([][numFeatures]float64, len(features))
	for i, f := range features {
		x[i] = f.vector()
	}

	var s Scorecard
	for j := 0; j < numFeatures; j++ {
		for i := range x {
			s.Means[j] += x[i][j]
		}
		s.Means[j] /= n
		var ss float64
		for i := range x {
			d := x[i][j] - s.Means[j]
			ss += d * d
		}
		s.Stds[j] = math.Sqrt(ss / n)
		if s.Stds[j] == 0 {
			return nil, fmt.Errorf("feature %d is constant; cannot standardize", j)
		}
	}

	// Standardize once up front.
	z := make([][numFeatures]float64, len(x))
	for i := range x {
		for j := 0; j < numFeatures; j++ {
			z[i][j] = (x[i][j] - s.Means[j]) / s.Stds[j]
		}
	}

	for iter := 0; iter < opts.Iterations; iter++ {
		var gradB float64
		var grad [numFeatures]float64
		for i := range z {
			pred := s.Intercept
			for j := 0; j < numFeatures; j++ {
				pred += s.Coefs[j] * z[i][j]
			}
			err := sigmoid(pred) - float64(labels[i])
			gradB += err
			for j := 0; j < numFeatures; j++ {
				grad[j] += err * z[i][j]
			}
		}
		s.Intercept -= opts.LearningRate * gradB / n
		for j := 0; j < numFeatures; j++ {
			s.Coefs[j] -= opts.LearningRate * grad[j] / n
		}
	}

	return &s, nil
}

// LoadLoanCSV reads a loan-book extract with a header row. Required columns:
// credit_lines_outstanding, loan_amt_outstanding, total_debt_outstanding,
// income, years_employed, fico_score, default.
func LoadLoanCSV(path string) ([]BorrowerFeatures, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("%s: no data rows", path)
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[name] = i
	}
	required := []string{
		"credit_lines_outstanding", "loan_amt_outstanding", "total_debt_outstanding",
		"income", "years_employed", "fico_score", "default",
	}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, nil, fmt.Errorf("%s: missing column %q", path, name)
		}
	}

	features := make([]BorrowerFeatures, 0, len(records)-1)
	labels := make([]int, 0, len(records)-1)
	for i, rec := range records[1:] {
		get := func(name string) (float64, error) {
			return strconv.ParseFloat(rec[col[name]], 64)
		}
		var bf BorrowerFeatures
		var parseErr error
		set := func(dst *float64, name string) {
			if parseErr != nil {
				return
			}
			v, err := get(name)
			if err != nil {
				parseErr = fmt.Errorf("%s row %d column %q: %w", path, i+2, name, err)
				return
			}
			*dst = v
		}
		set(&bf.CreditLinesOutstanding, "credit_lines_outstanding")
		set(&bf.LoanAmtOutstanding, "loan_amt_outstanding")
		set(&bf.TotalDebtOutstanding, "total_debt_outstanding")
		set(&bf.Income, "income")
		set(&bf.YearsEmployed, "years_employed")
		set(&bf.FicoScore, "fico_score")
		if parseErr != nil {
			return nil, nil, parseErr
		}

		label, err := strconv.Atoi(rec[col["default"]])
		if err != nil || (label != 0 && label != 1) {
			return nil, nil, fmt.Errorf("%s row %d: default must be 0 or 1, got %q", path, i+2, rec[col["default"]])
		}
		features = append(features, bf)
		labels = append(labels, label)
	}

	return features, labels, nil
}
