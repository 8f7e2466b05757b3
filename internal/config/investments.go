package config

import (
	"github.com/loanlogic/loan-logic/pkg/finance"
	"github.com/loanlogic/loan-logic/pkg/mathutil"
	"github.com/loanlogic/loan-logic/pkg/multiparty"
)

// InvestmentConfig describes the investment account that absorbs payment
// differences. AnnualGrowthRate is a percentage.
type InvestmentConfig struct {
	StartCapital       float64  `yaml:"startCapital" mapstructure:"startCapital"`
	AnnualGrowthRate   float64  `yaml:"annualGrowthRate" mapstructure:"annualGrowthRate"`
	ReferenceCapital   *float64 `yaml:"referenceCapital,omitempty" mapstructure:"referenceCapital"`
	AlternativeCapital *float64 `yaml:"alternativeCapital,omitempty" mapstructure:"alternativeCapital"`
}

// MonthlyGrowthRate converts the annual percentage into a monthly decimal rate.
func (i *InvestmentConfig) MonthlyGrowthRate() float64 {
	return finance.MonthlyRateFromAnnual(mathutil.PercentToDecimal(i.AnnualGrowthRate))
}

// ContributionParams builds the investment simulation parameters for the given
// down payments.
func (i *InvestmentConfig) ContributionParams(referenceDownPayment, alternativeDownPayment float64) finance.ContributionParams {
	return finance.ContributionParams{
		ReferenceDownPayment:       referenceDownPayment,
		AlternativeDownPayment:     alternativeDownPayment,
		StartCapital:               i.StartCapital,
		MonthlyGrowthRate:          i.MonthlyGrowthRate(),
		ReferenceCapitalOverride:   i.ReferenceCapital,
		AlternativeCapitalOverride: i.AlternativeCapital,
	}
}

// PartiesConfig describes the clients sharing a loan.
type PartiesConfig struct {
	Count         int     `yaml:"count" mapstructure:"count"`
	MonthlyIncome float64 `yaml:"monthlyIncome,omitempty" mapstructure:"monthlyIncome"`
}

// ToParties converts the configuration to multi-party adapter input.
func (p *PartiesConfig) ToParties() multiparty.Parties {
	return multiparty.Parties{Count: p.Count, MonthlyIncome: p.MonthlyIncome}
}
