package loans

import (
	"fmt"

	"github.com/loanlogic/loan-logic/pkg/constants"
	"github.com/loanlogic/loan-logic/pkg/mathutil"
	"github.com/loanlogic/loan-logic/pkg/premium"
	"go.uber.org/zap"
)

// PrincipalPolicy decides how much principal is repaid in a month. It returns
// the principal repaid and the loan payment excluding insurance.
type PrincipalPolicy interface {
	Apply(month int, balance, interest float64) (principal, payment float64)
}

// annuityPolicy pays a fixed amount after an interest-only deferral period.
type annuityPolicy struct {
	deferralMonths int
	fixedPayment   float64
}

func (p annuityPolicy) Apply(month int, balance, interest float64) (float64, float64) {
	if month <= p.deferralMonths {
		return 0, interest
	}

	payment := p.fixedPayment
	principal := mathutil.Min(payment-interest, balance)
	if mathutil.BelowTolerance(balance - principal) {
		// Final month: absorb floating point drift.
		principal = balance
		payment = principal + interest
	}
	return principal, payment
}

// schedulePolicy repays the principal listed for each month, if any.
type schedulePolicy struct {
	amounts map[int]float64
}

func (p schedulePolicy) Apply(month int, balance, interest float64) (float64, float64) {
	principal := mathutil.Min(p.amounts[month], balance)
	return principal, interest + principal
}

// Generator produces loan schedules.
type Generator struct {
	logger    *zap.Logger
	estimator premium.Estimator
}

// NewGenerator creates a generator using the given premium estimator. An
// estimator without a table falls back to the default premium schedule.
func NewGenerator(logger *zap.Logger, estimator premium.Estimator) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(estimator.Table.Years()) == 0 {
		estimator = premium.DefaultEstimator()
	}
	return &Generator{logger: logger, estimator: estimator}
}

// Simulate dispatches to the simulator matching loanType. Bullet loans without
// entries repay the full principal in the final month.
func (g *Generator) Simulate(loanType LoanType, params Params, entries []ScheduleEntry) (Schedule, error) {
	switch loanType {
	case Annuity:
		return g.SimulateLevelPayment(params)
	case Bullet:
		if len(entries) == 0 {
			entries = BulletSchedule(params)
		}
		return g.SimulateScheduledPrincipal(params, entries)
	case Modular:
		return g.SimulateScheduledPrincipal(params, entries)
	default:
		return nil, fmt.Errorf("unknown loan type %q", loanType)
	}
}

// SimulateLevelPayment simulates an annuity loan with an optional
// interest-only deferral period.
func (g *Generator) SimulateLevelPayment(params Params) (Schedule, error) {
	principal := params.Principal()
	if principal <= 0 {
		g.logger.Info("no loan needed, down payment covers the purchase price",
			zap.String("op", "loans.SimulateLevelPayment"),
			zap.Float64("purchasePrice", params.PurchasePrice),
			zap.Float64("downPayment", params.DownPayment),
		)
		return Schedule{}, nil
	}

	if params.TermYears < 0 || params.DeferralMonths < 0 {
		return nil, fmt.Errorf("%w: term %d years, deferral %d months", ErrInvalidTerm, params.TermYears, params.DeferralMonths)
	}
	payingMonths := params.TermMonths() - params.DeferralMonths
	if payingMonths <= 0 {
		return nil, fmt.Errorf("%w: term of %d months must exceed deferral of %d months",
			ErrInvalidTerm, params.TermMonths(), params.DeferralMonths)
	}

	policy := annuityPolicy{
		deferralMonths: params.DeferralMonths,
		fixedPayment:   CalculateMonthlyPayment(principal, params.AnnualRate, payingMonths),
	}
	g.logger.Debug(fmt.Sprintf("simulating annuity loan of %.2f over %d months", principal, params.TermMonths()),
		zap.String("op", "loans.SimulateLevelPayment"),
		zap.Float64("fixedPayment", policy.fixedPayment),
		zap.Int("deferralMonths", params.DeferralMonths),
	)

	return g.run(params, premium.LevelPayment, policy), nil
}

// SimulateScheduledPrincipal simulates a loan whose principal is repaid only
// at the months listed in entries. Duplicate months keep the last amount.
func (g *Generator) SimulateScheduledPrincipal(params Params, entries []ScheduleEntry) (Schedule, error) {
	if len(entries) == 0 {
		return nil, ErrMissingSchedule
	}
	if params.TermYears < 0 {
		return nil, fmt.Errorf("%w: term %d years", ErrInvalidTerm, params.TermYears)
	}

	principal := params.Principal()
	if principal <= 0 {
		g.logger.Info("no loan needed, down payment covers the purchase price",
			zap.String("op", "loans.SimulateScheduledPrincipal"),
			zap.Float64("purchasePrice", params.PurchasePrice),
			zap.Float64("downPayment", params.DownPayment),
		)
		return Schedule{}, nil
	}

	amounts := make(map[int]float64, len(entries))
	for _, entry := range entries {
		if entry.Amount < 0 {
			return nil, fmt.Errorf("%w: month %d has negative amount %.2f", ErrInvalidSchedule, entry.Month, entry.Amount)
		}
		if entry.Month < 1 || entry.Month > params.TermMonths() {
			g.logger.Warn("ignoring repayment outside the loan term",
				zap.String("op", "loans.SimulateScheduledPrincipal"),
				zap.Int("month", entry.Month),
				zap.Int("termMonths", params.TermMonths()),
			)
			continue
		}
		if _, exists := amounts[entry.Month]; exists {
			g.logger.Warn("duplicate repayment month, keeping the last amount",
				zap.String("op", "loans.SimulateScheduledPrincipal"),
				zap.Int("month", entry.Month),
				zap.Float64("amount", entry.Amount),
			)
		}
		amounts[entry.Month] = entry.Amount
	}

	g.logger.Debug(fmt.Sprintf("simulating principal schedule loan of %.2f with %d repayments", principal, len(amounts)),
		zap.String("op", "loans.SimulateScheduledPrincipal"),
	)

	return g.run(params, premium.PrincipalSchedule, schedulePolicy{amounts: amounts}), nil
}

// run steps through every month of the term, accruing interest on the
// remaining balance and applying policy for the principal.
func (g *Generator) run(params Params, structure premium.Structure, policy PrincipalPolicy) Schedule {
	totalMonths := params.TermMonths()
	schedule := make(Schedule, 0, totalMonths)

	balance := params.Principal()
	var cumulativePrincipal, cumulativeInterest, cumulativeInsurance float64
	var monthlyPremium float64

	for month := 1; month <= totalMonths; month++ {
		year := (month-1)/constants.MonthsPerYear + 1

		// Premiums change once per simulation year.
		if (month-1)%constants.MonthsPerYear == 0 {
			monthlyPremium = g.estimator.Monthly(year, params.StartYear, structure, params.Coverage)
		}

		interest := CalculateInterestPayment(balance, params.AnnualRate)
		principal, payment := policy.Apply(month, balance, interest)

		balance -= principal
		if mathutil.BelowTolerance(balance) {
			balance = 0
		}

		cumulativePrincipal += principal
		cumulativeInterest += interest
		cumulativeInsurance += monthlyPremium

		schedule = append(schedule, Payment{
			Month:                     month,
			Year:                      year,
			PaymentExcludingInsurance: payment,
			Interest:                  interest,
			PrincipalPayment:          principal,
			InsurancePremium:          monthlyPremium,
			TotalMonthlyPayment:       payment + monthlyPremium,
			RemainingPrincipal:        balance,
			CumulativePrincipalPaid:   cumulativePrincipal,
			CumulativeInterestPaid:    cumulativeInterest,
			CumulativeInsurancePaid:   cumulativeInsurance,
		})
	}

	return schedule
}
