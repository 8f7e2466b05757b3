// Package finance simulates an investment account that absorbs the difference
// in monthly cash flow between a reference loan and an alternative loan.
package finance

import (
	"fmt"
	"math"

	"github.com/loanlogic/loan-logic/pkg/constants"
	"github.com/loanlogic/loan-logic/pkg/loans"
	"go.uber.org/zap"
)

// InvestmentMonth holds the investment account state at the end of a month.
type InvestmentMonth struct {
	Month                            int     `yaml:"month" json:"month"`
	InvestmentBalance                float64 `yaml:"investmentBalance" json:"investmentBalance"`
	MonthlyContribution              float64 `yaml:"monthlyContribution" json:"monthlyContribution"`
	CumulativeInvestmentContribution float64 `yaml:"cumulativeInvestmentContribution" json:"cumulativeInvestmentContribution"`
}

// InvestmentSchedule is an ordered month-by-month investment trajectory.
type InvestmentSchedule []InvestmentMonth

// CombinedMonth joins an alternative loan month with its investment month.
// HasLoan is false only when the alternative schedule is empty.
type CombinedMonth struct {
	loans.Payment                    `yaml:",inline"`
	HasLoan                          bool    `yaml:"hasLoan" json:"hasLoan"`
	InvestmentBalance                float64 `yaml:"investmentBalance" json:"investmentBalance"`
	MonthlyContribution              float64 `yaml:"monthlyContribution" json:"monthlyContribution"`
	CumulativeInvestmentContribution float64 `yaml:"cumulativeInvestmentContribution" json:"cumulativeInvestmentContribution"`
	NetWorth                         float64 `yaml:"netWorth" json:"netWorth"`
}

// CombinedSchedule is the alternative loan schedule joined with its
// investment trajectory.
type CombinedSchedule []CombinedMonth

// InvestmentSchedule projects the investment columns of a combined schedule.
func (c CombinedSchedule) InvestmentSchedule() InvestmentSchedule {
	out := make(InvestmentSchedule, len(c))
	for i, row := range c {
		out[i] = InvestmentMonth{
			Month:                            row.Month,
			InvestmentBalance:                row.InvestmentBalance,
			MonthlyContribution:              row.MonthlyContribution,
			CumulativeInvestmentContribution: row.CumulativeInvestmentContribution,
		}
	}
	return out
}

// Contributions returns the monthly contributions for months 1..throughMonth.
func (c CombinedSchedule) Contributions(throughMonth int) []float64 {
	var out []float64
	for _, row := range c {
		if row.Month <= throughMonth {
			out = append(out, row.MonthlyContribution)
		}
	}
	return out
}

// ContributionParams configures the investment simulation. Overrides, when
// set, replace the capital derived from StartCapital minus the down payment.
type ContributionParams struct {
	ReferenceDownPayment       float64
	AlternativeDownPayment     float64
	StartCapital               float64
	MonthlyGrowthRate          float64
	ReferenceCapitalOverride   *float64
	AlternativeCapitalOverride *float64
}

// MonthlyRateFromAnnual converts an annual effective growth rate into the
// equivalent monthly compounding rate.
func MonthlyRateFromAnnual(annualRate float64) float64 {
	return math.Pow(1+annualRate, 1.0/constants.MonthsPerYear) - 1
}

// Result holds both investment paths and the capital each started with.
type Result struct {
	Combined         CombinedSchedule
	AlternativeStart float64
	Reference        InvestmentSchedule
	ReferenceStart   float64
}

// InvestmentState tracks the running value of an investment across simulation months.
type InvestmentState struct {
	CurrentValue            float64
	CumulativeContributions float64
}

func newInvestmentState(start float64) *InvestmentState {
	return &InvestmentState{CurrentValue: start, CumulativeContributions: start}
}

// step compounds the balance by rate and then applies contribution. A balance
// that would turn negative is clamped to zero and reported as depleted.
func (s *InvestmentState) step(rate, contribution float64) (depleted bool) {
	s.CurrentValue *= 1 + rate
	s.CurrentValue += contribution
	s.CumulativeContributions += contribution
	if s.CurrentValue < 0 {
		s.CurrentValue = 0
		return true
	}
	return false
}

// InvestmentProcessor runs the reference and alternative investment paths.
type InvestmentProcessor struct {
	logger *zap.Logger
}

// NewInvestmentProcessor creates a processor for investment calculations.
func NewInvestmentProcessor(logger *zap.Logger) *InvestmentProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvestmentProcessor{logger: logger}
}

// StartingAmounts returns the capital invested at the start of the reference
// and alternative paths.
func (ip *InvestmentProcessor) StartingAmounts(params ContributionParams) (reference, alternative float64) {
	reference = ip.startingAmount("reference", params.StartCapital, params.ReferenceDownPayment, params.ReferenceCapitalOverride)
	alternative = ip.startingAmount("alternative", params.StartCapital, params.AlternativeDownPayment, params.AlternativeCapitalOverride)
	return reference, alternative
}

func (ip *InvestmentProcessor) startingAmount(scenario string, pool, downPayment float64, override *float64) float64 {
	if override != nil {
		return *override
	}
	amount := pool - downPayment
	if amount < 0 {
		ip.logger.Warn("down payment exceeds start capital, investing nothing",
			zap.String("op", "finance.StartingAmounts"),
			zap.String("scenario", scenario),
			zap.Float64("startCapital", pool),
			zap.Float64("downPayment", downPayment),
		)
		return 0
	}
	return amount
}

// Simulate runs both investment paths over the longer of the two schedules.
// The reference path only compounds its starting capital. The alternative
// path compounds and then receives the reference payment minus the
// alternative payment for the month; a negative difference is a withdrawal.
//
// Combined keeps only the months present in the alternative schedule, or
// every month when the alternative schedule is empty.
func (ip *InvestmentProcessor) Simulate(reference, alternative loans.Schedule, params ContributionParams) (Result, error) {
	rate := params.MonthlyGrowthRate
	if rate <= -1 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return Result{}, fmt.Errorf("monthly growth rate must be greater than -1, got %v", rate)
	}

	refStart, altStart := ip.StartingAmounts(params)

	months := reference.Months()
	if alternative.Months() > months {
		months = alternative.Months()
	}

	refPayments := reference.TotalPaymentsByMonth()
	altPayments := alternative.TotalPaymentsByMonth()
	altRows := alternative.ByMonth()

	combinedLen := len(alternative)
	if combinedLen == 0 {
		combinedLen = months
	}

	refState := newInvestmentState(refStart)
	altState := newInvestmentState(altStart)

	result := Result{
		Combined:         make(CombinedSchedule, 0, combinedLen),
		AlternativeStart: altStart,
		Reference:        make(InvestmentSchedule, 0, months),
		ReferenceStart:   refStart,
	}

	depletedAt := 0
	for month := 1; month <= months; month++ {
		refState.step(rate, 0)
		result.Reference = append(result.Reference, InvestmentMonth{
			Month:                            month,
			InvestmentBalance:                refState.CurrentValue,
			MonthlyContribution:              0,
			CumulativeInvestmentContribution: refState.CumulativeContributions,
		})

		contribution := refPayments[month] - altPayments[month]
		if altState.step(rate, contribution) && depletedAt == 0 {
			depletedAt = month
		}

		row, hasLoan := altRows[month]
		if !hasLoan {
			if len(alternative) > 0 {
				continue
			}
			row = loans.Payment{Month: month, Year: (month-1)/constants.MonthsPerYear + 1}
		}
		result.Combined = append(result.Combined, CombinedMonth{
			Payment:                          row,
			HasLoan:                          hasLoan,
			InvestmentBalance:                altState.CurrentValue,
			MonthlyContribution:              contribution,
			CumulativeInvestmentContribution: altState.CumulativeContributions,
			NetWorth:                         altState.CurrentValue - row.RemainingPrincipal,
		})
	}

	if depletedAt > 0 {
		ip.logger.Warn("alternative investment ran out of funds",
			zap.String("op", "finance.Simulate"),
			zap.Int("month", depletedAt),
		)
	}
	ip.logger.Debug(fmt.Sprintf("simulated %d investment months", months),
		zap.String("op", "finance.Simulate"),
		zap.Float64("referenceStart", refStart),
		zap.Float64("alternativeStart", altStart),
	)

	return result, nil
}
