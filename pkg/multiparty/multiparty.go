// Package multiparty adapts loan schedules and statistics for loans shared by
// several clients, each carrying their own debt insurance policy.
package multiparty

import (
	"github.com/loanlogic/loan-logic/pkg/constants"
	"github.com/loanlogic/loan-logic/pkg/loans"
	"github.com/loanlogic/loan-logic/pkg/mathutil"
	"github.com/loanlogic/loan-logic/pkg/statistics"
)

// Parties describes the clients sharing a loan.
type Parties struct {
	Count         int     `yaml:"count" json:"count"`
	MonthlyIncome float64 `yaml:"monthlyIncome" json:"monthlyIncome"`
}

func (p Parties) count() int {
	if p.Count < 1 {
		return 1
	}
	return p.Count
}

// Statistics extends the single-loan statistics with affordability figures.
type Statistics struct {
	statistics.Statistics        `yaml:",inline"`
	ClientCount                  int     `yaml:"clientCount" json:"clientCount"`
	MonthlyIncome                float64 `yaml:"monthlyIncome" json:"monthlyIncome"`
	DebtRatio                    float64 `yaml:"debtRatio,omitempty" json:"debtRatio,omitempty"`
	DebtRatioAssessment          string  `yaml:"debtRatioAssessment,omitempty" json:"debtRatioAssessment,omitempty"`
	PerClientInsurancePaid       float64 `yaml:"perClientInsurancePaid,omitempty" json:"perClientInsurancePaid,omitempty"`
	PerClientDebtRatio           float64 `yaml:"perClientDebtRatio,omitempty" json:"perClientDebtRatio,omitempty"`
	PerClientDebtRatioAssessment string  `yaml:"perClientDebtRatioAssessment,omitempty" json:"perClientDebtRatioAssessment,omitempty"`
}

// Assess labels a debt ratio percentage.
func Assess(ratio float64) string {
	switch {
	case ratio <= constants.DebtRatioGoodThreshold:
		return constants.DebtRatioGood
	case ratio <= constants.DebtRatioModerateThreshold:
		return constants.DebtRatioModerate
	default:
		return constants.DebtRatioHigh
	}
}

// ScalePremiums returns a copy of schedule with every premium multiplied by
// count, total payments and cumulative insurance recomputed. The input is not
// modified.
func ScalePremiums(schedule loans.Schedule, count int) loans.Schedule {
	scaled := schedule.Clone()
	if count <= 1 {
		return scaled
	}
	var cumulative float64
	for i := range scaled {
		p := &scaled[i]
		p.InsurancePremium *= float64(count)
		p.TotalMonthlyPayment = p.PaymentExcludingInsurance + p.InsurancePremium
		cumulative += p.InsurancePremium
		p.CumulativeInsurancePaid = cumulative
	}
	return scaled
}

// Adapter runs loan simulations for several parties.
type Adapter struct {
	Generator *loans.Generator
}

// NewAdapter wraps generator.
func NewAdapter(generator *loans.Generator) *Adapter {
	return &Adapter{Generator: generator}
}

// SimulateLevelPayment simulates an annuity loan with one premium per party.
func (a *Adapter) SimulateLevelPayment(params loans.Params, parties Parties) (loans.Schedule, error) {
	schedule, err := a.Generator.SimulateLevelPayment(params)
	if err != nil {
		return nil, err
	}
	return ScalePremiums(schedule, parties.count()), nil
}

// SimulateScheduledPrincipal simulates a principal schedule loan with one
// premium per party.
func (a *Adapter) SimulateScheduledPrincipal(params loans.Params, entries []loans.ScheduleEntry, parties Parties) (loans.Schedule, error) {
	schedule, err := a.Generator.SimulateScheduledPrincipal(params, entries)
	if err != nil {
		return nil, err
	}
	return ScalePremiums(schedule, parties.count()), nil
}

// Simulate dispatches on loan type like loans.Generator.Simulate.
func (a *Adapter) Simulate(loanType loans.LoanType, params loans.Params, entries []loans.ScheduleEntry, parties Parties) (loans.Schedule, error) {
	schedule, err := a.Generator.Simulate(loanType, params, entries)
	if err != nil {
		return nil, err
	}
	return ScalePremiums(schedule, parties.count()), nil
}

// ComputeStatistics summarizes a multi-party schedule. The schedule should
// already carry scaled premiums.
//
// The per-client debt ratio divides the median monthly payment evenly between
// clients rather than simulating each client's share of the loan.
func ComputeStatistics(schedule loans.Schedule, principal float64, parties Parties) Statistics {
	count := parties.count()
	stats := Statistics{
		Statistics:    statistics.Compute(schedule, nil, principal),
		ClientCount:   count,
		MonthlyIncome: parties.MonthlyIncome,
	}

	if parties.MonthlyIncome > 0 && len(schedule) > 0 {
		ratio := mathutil.CalculatePercentage(schedule[0].TotalMonthlyPayment, parties.MonthlyIncome)
		stats.DebtRatio = mathutil.Round(ratio)
		stats.DebtRatioAssessment = Assess(ratio)
	}

	if count > 1 {
		stats.PerClientInsurancePaid = mathutil.Round(stats.TotalInsurancePaid / float64(count))
		if parties.MonthlyIncome > 0 {
			perClientPayment := stats.MedianMonthlyPayment / float64(count)
			perClientIncome := parties.MonthlyIncome / float64(count)
			ratio := mathutil.CalculatePercentage(perClientPayment, perClientIncome)
			stats.PerClientDebtRatio = mathutil.Round(ratio)
			stats.PerClientDebtRatioAssessment = Assess(ratio)
		}
	}

	return stats
}
