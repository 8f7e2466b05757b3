// Package optimization finds the minimum constant growth rate an investment
// needs to reach a target amount by a given month.
package optimization

import "math"

// Outcome records which stage of the solver produced the result.
type Outcome int

const (
	// Unsolved means neither stage found a root. This is an expected result
	// when the target cannot be reached by any rate.
	Unsolved Outcome = iota
	// Bracketed means the root was found inside the configured bounds.
	Bracketed
	// Unconstrained means the root lies outside the bounds and was found by
	// the fallback solver.
	Unconstrained
)

func (o Outcome) String() string {
	switch o {
	case Bracketed:
		return "bracketed"
	case Unconstrained:
		return "unconstrained"
	default:
		return "unsolved"
	}
}

// MarshalYAML renders the outcome by name.
func (o Outcome) MarshalYAML() (interface{}, error) {
	return o.String(), nil
}

// Summary captures the result of a single minimum-growth solve.
type Summary struct {
	Outcome     Outcome  `yaml:"outcome" json:"outcome"`
	MonthlyRate float64  `yaml:"monthlyRate" json:"monthlyRate"`
	AnnualRate  float64  `yaml:"annualRate" json:"annualRate"`
	Iterations  int      `yaml:"iterations" json:"iterations"`
	Converged   bool     `yaml:"converged" json:"converged"`
	Notes       []string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Rate returns the annual effective rate and whether a solution exists.
func (s Summary) Rate() (float64, bool) {
	if s.Outcome == Unsolved || !s.Converged {
		return 0, false
	}
	return s.AnnualRate, true
}

// AnnualFromMonthly converts a monthly compounding rate to an annual effective rate.
func AnnualFromMonthly(monthly float64) float64 {
	return math.Pow(1+monthly, 12) - 1
}
