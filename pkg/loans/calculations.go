// Package loans simulates monthly amortization schedules for level-payment
// (annuity) and principal-schedule (bullet/modular) loans.
package loans

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/loanlogic/loan-logic/pkg/constants"
	"github.com/loanlogic/loan-logic/pkg/premium"
)

var (
	// ErrInvalidTerm is returned when the deferral period does not leave any
	// repayment months, or the term itself is invalid.
	ErrInvalidTerm = errors.New("invalid loan term")

	// ErrMissingSchedule is returned when a principal-schedule loan has no
	// repayment entries.
	ErrMissingSchedule = errors.New("principal repayment schedule required")

	// ErrInvalidSchedule is returned for repayment entries that cannot be applied.
	ErrInvalidSchedule = errors.New("invalid principal repayment schedule")
)

// LoanType names a loan structure.
type LoanType string

const (
	Annuity LoanType = "annuity"
	Bullet  LoanType = "bullet"
	Modular LoanType = "modular"
)

// ParseLoanType normalizes a loan type name. An empty name means annuity.
func ParseLoanType(value string) (LoanType, error) {
	switch LoanType(strings.ToLower(strings.TrimSpace(value))) {
	case Annuity, "":
		return Annuity, nil
	case Bullet:
		return Bullet, nil
	case Modular:
		return Modular, nil
	default:
		return "", fmt.Errorf("unknown loan type %q, expected annuity, bullet or modular", value)
	}
}

// Structure returns the premium structure used for this loan type.
func (t LoanType) Structure() premium.Structure {
	if t == Bullet || t == Modular {
		return premium.PrincipalSchedule
	}
	return premium.LevelPayment
}

// Params holds the inputs shared by both simulators. Rates are decimals.
type Params struct {
	DownPayment    float64
	AnnualRate     float64
	TermYears      int
	PurchasePrice  float64
	DeferralMonths int
	StartYear      int
	Coverage       float64
}

// Principal is the borrowed amount.
func (p Params) Principal() float64 {
	return p.PurchasePrice - p.DownPayment
}

// TermMonths is the full loan term in months.
func (p Params) TermMonths() int {
	return p.TermYears * constants.MonthsPerYear
}

// ScheduleEntry is a scheduled principal repayment.
type ScheduleEntry struct {
	Month  int     `yaml:"month" json:"month" mapstructure:"month"`
	Amount float64 `yaml:"amount" json:"amount" mapstructure:"amount"`
}

// BulletSchedule repays the whole principal in the last month of the term.
func BulletSchedule(params Params) []ScheduleEntry {
	return []ScheduleEntry{{Month: params.TermMonths(), Amount: params.Principal()}}
}

// CalculateMonthlyPayment calculates the fixed monthly payment for a loan using
// the standard amortization formula. A zero rate degenerates to straight-line
// repayment.
func CalculateMonthlyPayment(principal, annualRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	periodicRate := annualRate / constants.MonthsPerYear
	if periodicRate == 0 {
		return principal / float64(termMonths)
	}

	power := math.Pow(1.00+periodicRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicRate / discountFactor
}

// CalculateInterestPayment calculates the interest accrued on the remaining
// principal for one month.
func CalculateInterestPayment(remainingPrincipal, annualRate float64) float64 {
	return remainingPrincipal * annualRate / constants.MonthsPerYear
}
