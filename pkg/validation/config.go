// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"sort"
)

// ValidateCoverage warns when the insured share of the loan is outside [0, 1].
func ValidateCoverage(loanName string, coverage float64) string {
	if coverage < 0 || coverage > 1 {
		return fmt.Sprintf("Loan '%s' insurance coverage %.2f is outside 0..1 - premiums will be scaled by it as given",
			loanName, coverage)
	}
	return ""
}

// ValidateDownPayment warns when the down payment covers the purchase price,
// in which case no loan is simulated.
func ValidateDownPayment(loanName string, downPayment, purchasePrice float64) string {
	if downPayment >= purchasePrice {
		return fmt.Sprintf("Loan '%s' down payment covers the purchase price (%.2f >= %.2f) - no loan will be simulated",
			loanName, downPayment, purchasePrice)
	}
	return ""
}

// ValidateScheduleMonths checks principal repayment months against the loan term
func ValidateScheduleMonths(loanName string, months []int, termMonths int) []string {
	var warnings []string

	seen := make(map[int]bool, len(months))
	var duplicates []int
	for _, month := range months {
		if month < 1 || month > termMonths {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' repayment in month %d is outside the term (1..%d) and will be ignored",
				loanName, month, termMonths))
		}
		if seen[month] {
			duplicates = append(duplicates, month)
		}
		seen[month] = true
	}

	sort.Ints(duplicates)
	for _, month := range duplicates {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' has more than one repayment in month %d - only the last is used",
			loanName, month))
	}

	return warnings
}

// ValidateGrowthRate warns when the expected monthly growth rate lies outside
// the solver bracket, where the fallback solver is used instead.
func ValidateGrowthRate(monthlyRate, lowerBound, upperBound float64) string {
	if monthlyRate < lowerBound || monthlyRate > upperBound {
		return fmt.Sprintf("Monthly growth rate %.4f is outside the solver bracket [%.4f, %.4f]",
			monthlyRate, lowerBound, upperBound)
	}
	return ""
}

// ConfigValidator collects the inputs needed to validate a whole configuration.
type ConfigValidator struct {
	Loans  []LoanConfig
	Growth *GrowthConfig
}

// LoanConfig is the subset of a loan definition that is validated.
type LoanConfig struct {
	Name           string
	ScheduleDriven bool
	TermMonths     int
	DownPayment    float64
	PurchasePrice  float64
	Coverage       float64
	ScheduleMonths []int
}

// GrowthConfig pairs an expected growth rate with the solver bracket.
type GrowthConfig struct {
	MonthlyRate float64
	LowerBound  float64
	UpperBound  float64
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	for _, loan := range cv.Loans {
		if warning := ValidateCoverage(loan.Name, loan.Coverage); warning != "" {
			warnings = append(warnings, warning)
		}
		if warning := ValidateDownPayment(loan.Name, loan.DownPayment, loan.PurchasePrice); warning != "" {
			warnings = append(warnings, warning)
		}
		if loan.ScheduleDriven && len(loan.ScheduleMonths) == 0 {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' has no principal repayment schedule", loan.Name))
		}
		warnings = append(warnings, ValidateScheduleMonths(loan.Name, loan.ScheduleMonths, loan.TermMonths)...)
	}

	if cv.Growth != nil {
		if warning := ValidateGrowthRate(cv.Growth.MonthlyRate, cv.Growth.LowerBound, cv.Growth.UpperBound); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return warnings
}
