package config

import (
	"fmt"

	"github.com/loanlogic/loan-logic/pkg/constants"
	"github.com/loanlogic/loan-logic/pkg/loans"
	"github.com/loanlogic/loan-logic/pkg/mathutil"
	"github.com/loanlogic/loan-logic/pkg/validation"
)

// LoanConfig describes a loan. InterestRate is a percentage, e.g. 3.5 for 3.5%.
type LoanConfig struct {
	LoanType             string                `yaml:"loanType,omitempty" mapstructure:"loanType"`
	InterestRate         float64               `yaml:"interestRate" mapstructure:"interestRate"`
	TermYears            int                   `yaml:"termYears" mapstructure:"termYears"`
	OwnContribution      float64               `yaml:"ownContribution" mapstructure:"ownContribution"`
	PurchasePrice        float64               `yaml:"purchasePrice,omitempty" mapstructure:"purchasePrice"`
	DelayMonths          int                   `yaml:"delayMonths,omitempty" mapstructure:"delayMonths"`
	StartYear            int                   `yaml:"startYear,omitempty" mapstructure:"startYear"`
	InsuranceCoveragePct *float64              `yaml:"insuranceCoveragePct,omitempty" mapstructure:"insuranceCoveragePct"`
	Schedule             []loans.ScheduleEntry `yaml:"schedule,omitempty" mapstructure:"schedule"`
}

func (l *LoanConfig) applyDefaults() {
	if l.LoanType == "" {
		l.LoanType = string(loans.Annuity)
	}
	if l.PurchasePrice == 0 {
		l.PurchasePrice = constants.DefaultPurchasePrice
	}
	if l.StartYear == 0 {
		l.StartYear = constants.DefaultStartYear
	}
	if l.InsuranceCoveragePct == nil {
		coverage := constants.DefaultInsuranceCoverage
		l.InsuranceCoveragePct = &coverage
	}
}

func (l *LoanConfig) validate(name string) error {
	if _, err := l.Type(); err != nil {
		return fmt.Errorf("%s loan: %w", name, err)
	}
	if l.TermYears < 0 {
		return fmt.Errorf("%s loan: term years cannot be negative, got %d", name, l.TermYears)
	}
	if l.DelayMonths < 0 {
		return fmt.Errorf("%s loan: delay months cannot be negative, got %d", name, l.DelayMonths)
	}
	if l.PurchasePrice < 0 || l.OwnContribution < 0 {
		return fmt.Errorf("%s loan: purchase price and own contribution cannot be negative", name)
	}
	return nil
}

// Type parses the configured loan type.
func (l *LoanConfig) Type() (loans.LoanType, error) {
	return loans.ParseLoanType(l.LoanType)
}

// Coverage returns the insured fraction of the loan.
func (l *LoanConfig) Coverage() float64 {
	if l.InsuranceCoveragePct == nil {
		return constants.DefaultInsuranceCoverage
	}
	return *l.InsuranceCoveragePct
}

// Params converts the loan to simulator parameters with a decimal rate.
func (l *LoanConfig) Params() loans.Params {
	return loans.Params{
		DownPayment:    l.OwnContribution,
		AnnualRate:     mathutil.PercentToDecimal(l.InterestRate),
		TermYears:      l.TermYears,
		PurchasePrice:  l.PurchasePrice,
		DeferralMonths: l.DelayMonths,
		StartYear:      l.StartYear,
		Coverage:       l.Coverage(),
	}
}

// Entries returns the principal repayment schedule. A bullet loan without
// entries repays the full principal in the last month.
func (l *LoanConfig) Entries() []loans.ScheduleEntry {
	if len(l.Schedule) > 0 {
		return l.Schedule
	}
	if loanType, err := l.Type(); err == nil && loanType == loans.Bullet {
		return loans.BulletSchedule(l.Params())
	}
	return nil
}

func (l *LoanConfig) validationInfo(name string) validation.LoanConfig {
	loanType, _ := l.Type()
	months := make([]int, len(l.Schedule))
	for i, entry := range l.Schedule {
		months[i] = entry.Month
	}
	return validation.LoanConfig{
		Name:           name,
		ScheduleDriven: loanType == loans.Modular,
		TermMonths:     l.TermYears * constants.MonthsPerYear,
		DownPayment:    l.OwnContribution,
		PurchasePrice:  l.PurchasePrice,
		Coverage:       l.Coverage(),
		ScheduleMonths: months,
	}
}
