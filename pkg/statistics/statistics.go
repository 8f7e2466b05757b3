// Package statistics summarizes loan schedules and investment trajectories.
package statistics

import (
	"github.com/loanlogic/loan-logic/pkg/finance"
	"github.com/loanlogic/loan-logic/pkg/loans"
	"github.com/loanlogic/loan-logic/pkg/mathutil"
)

// Statistics is the scalar summary of a loan and its optional investment path.
// All amounts are rounded to cents.
type Statistics struct {
	Principal             float64               `yaml:"principal" json:"principal"`
	TotalPrincipalPaid    float64               `yaml:"totalPrincipalPaid" json:"totalPrincipalPaid"`
	TotalInterestPaid     float64               `yaml:"totalInterestPaid" json:"totalInterestPaid"`
	TotalInsurancePaid    float64               `yaml:"totalInsurancePaid" json:"totalInsurancePaid"`
	TotalLoanCosts        float64               `yaml:"totalLoanCosts" json:"totalLoanCosts"`
	HighestMonthlyPayment float64               `yaml:"highestMonthlyPayment" json:"highestMonthlyPayment"`
	MedianMonthlyPayment  float64               `yaml:"medianMonthlyPayment" json:"medianMonthlyPayment"`
	Investment            *InvestmentStatistics `yaml:"investment,omitempty" json:"investment,omitempty"`
}

// InvestmentStatistics is present only when investment data was supplied.
type InvestmentStatistics struct {
	StartInvestment      float64  `yaml:"startInvestment" json:"startInvestment"`
	EndInvestmentBalance float64  `yaml:"endInvestmentBalance" json:"endInvestmentBalance"`
	NetInvestmentGrowth  float64  `yaml:"netInvestmentGrowth" json:"netInvestmentGrowth"`
	NetFinalResult       float64  `yaml:"netFinalResult" json:"netFinalResult"`
	NetWorthEndOfTerm    *float64 `yaml:"netWorthEndOfTerm,omitempty" json:"netWorthEndOfTerm,omitempty"`
}

// Comparison contrasts a reference and an alternative scenario.
type Comparison struct {
	// TotalCostDifference is reference loan costs minus alternative loan costs.
	TotalCostDifference float64  `yaml:"totalCostDifference" json:"totalCostDifference"`
	NetWorthEndOfTerm   *float64 `yaml:"netWorthEndOfTerm,omitempty" json:"netWorthEndOfTerm,omitempty"`
}

// Compute summarizes a loan schedule. An empty schedule is the no-loan case and
// yields zero totals. investment may be nil.
func Compute(schedule loans.Schedule, investment finance.InvestmentSchedule, principal float64) Statistics {
	stats := Statistics{Principal: mathutil.Round(principal)}

	var totalLoanCosts float64
	if last, ok := schedule.Last(); ok {
		totalLoanCosts = last.CumulativeInterestPaid + last.CumulativeInsurancePaid

		payments := make([]float64, len(schedule))
		highest := schedule[0].TotalMonthlyPayment
		for i, p := range schedule {
			payments[i] = p.TotalMonthlyPayment
			highest = mathutil.Max(highest, p.TotalMonthlyPayment)
		}

		stats.TotalPrincipalPaid = mathutil.Round(last.CumulativePrincipalPaid)
		stats.TotalInterestPaid = mathutil.Round(last.CumulativeInterestPaid)
		stats.TotalInsurancePaid = mathutil.Round(last.CumulativeInsurancePaid)
		stats.TotalLoanCosts = mathutil.Round(totalLoanCosts)
		stats.HighestMonthlyPayment = mathutil.Round(highest)
		stats.MedianMonthlyPayment = mathutil.Round(mathutil.Median(payments))
	}

	if len(investment) > 0 {
		first, last := investment[0], investment[len(investment)-1]
		growth := last.InvestmentBalance - last.CumulativeInvestmentContribution
		stats.Investment = &InvestmentStatistics{
			StartInvestment:      mathutil.Round(first.CumulativeInvestmentContribution),
			EndInvestmentBalance: mathutil.Round(last.InvestmentBalance),
			NetInvestmentGrowth:  mathutil.Round(growth),
			NetFinalResult:       mathutil.Round(growth - totalLoanCosts),
		}
	}

	return stats
}

// ComputeCombined summarizes an alternative loan together with its combined
// investment schedule and adds the end-of-term net worth.
func ComputeCombined(schedule loans.Schedule, combined finance.CombinedSchedule, principal float64) Statistics {
	stats := Compute(schedule, combined.InvestmentSchedule(), principal)
	if stats.Investment != nil {
		netWorth := mathutil.Round(combined[len(combined)-1].NetWorth)
		stats.Investment.NetWorthEndOfTerm = &netWorth
	}
	return stats
}

// Compare reports the cost difference between two scenarios and the
// alternative's end-of-term net worth when available.
func Compare(reference, alternative Statistics) Comparison {
	comparison := Comparison{
		TotalCostDifference: mathutil.Round(reference.TotalLoanCosts - alternative.TotalLoanCosts),
	}
	if alternative.Investment != nil && alternative.Investment.NetWorthEndOfTerm != nil {
		netWorth := *alternative.Investment.NetWorthEndOfTerm
		comparison.NetWorthEndOfTerm = &netWorth
	}
	return comparison
}
