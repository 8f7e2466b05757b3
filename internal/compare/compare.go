// Package compare runs loan simulations end to end: one or two loans, the
// investment path funded by their payment difference, the minimum-growth
// solver and the summary statistics.
package compare

import (
	"context"
	"fmt"

	"github.com/loanlogic/loan-logic/internal/config"
	"github.com/loanlogic/loan-logic/pkg/constants"
	"github.com/loanlogic/loan-logic/pkg/finance"
	"github.com/loanlogic/loan-logic/pkg/loans"
	"github.com/loanlogic/loan-logic/pkg/multiparty"
	"github.com/loanlogic/loan-logic/pkg/optimization"
	"github.com/loanlogic/loan-logic/pkg/premium"
	"github.com/loanlogic/loan-logic/pkg/statistics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LoanSpec is one loan to simulate.
type LoanSpec struct {
	Type    loans.LoanType
	Params  loans.Params
	Entries []loans.ScheduleEntry
}

// Request describes a simulation or comparison run. Alternative and
// Investment are optional; Investment requires Alternative.
type Request struct {
	Reference   LoanSpec
	Alternative *LoanSpec
	Investment  *finance.ContributionParams
	Parties     *multiparty.Parties
	// Solver defaults to optimization.DefaultSolverConfig when zero.
	Solver optimization.SolverConfig
	// TargetMonth and TargetAmount override the solver target, which defaults
	// to repaying the alternative principal at the end of its term.
	TargetMonth  int
	TargetAmount *float64
}

// Scenario is the simulated result for one loan.
type Scenario struct {
	Type       loans.LoanType         `yaml:"loanType"`
	Principal  float64                `yaml:"principal"`
	Schedule   loans.Schedule         `yaml:"monthlyData,omitempty"`
	Annual     loans.AnnualSchedule   `yaml:"annualData,omitempty"`
	Statistics statistics.Statistics  `yaml:"statistics"`
	MultiParty *multiparty.Statistics `yaml:"multiPartyStatistics,omitempty"`
}

// InvestmentResult holds both investment paths.
type InvestmentResult struct {
	AlternativeStart float64                    `yaml:"alternativeStart"`
	ReferenceStart   float64                    `yaml:"referenceStart"`
	Combined         finance.CombinedSchedule   `yaml:"combined,omitempty"`
	Reference        finance.InvestmentSchedule `yaml:"reference,omitempty"`
}

// Report is the full result of a run. MinimumRequiredGrowthRate is the solved
// annual rate as a percentage.
type Report struct {
	Reference                 Scenario                 `yaml:"referenceLoan"`
	Alternative               *Scenario                `yaml:"alternativeLoan,omitempty"`
	AnnualDifferences         []loans.AnnualDifference `yaml:"annualDifferences,omitempty"`
	Investment                *InvestmentResult        `yaml:"investmentSimulation,omitempty"`
	MinimumGrowth             *optimization.Summary    `yaml:"minimumGrowth,omitempty"`
	MinimumRequiredGrowthRate *float64                 `yaml:"minimumRequiredGrowthRate,omitempty"`
	Comparison                *statistics.Comparison   `yaml:"comparisonStats,omitempty"`
	Parties                   *multiparty.Parties      `yaml:"clientSummary,omitempty"`
}

// Runner executes requests.
type Runner struct {
	logger    *zap.Logger
	generator *loans.Generator
	adapter   *multiparty.Adapter
	processor *finance.InvestmentProcessor
}

// NewRunner constructs a Runner using the given premium estimator.
func NewRunner(logger *zap.Logger, estimator premium.Estimator) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	generator := loans.NewGenerator(logger, estimator)
	return &Runner{
		logger:    logger,
		generator: generator,
		adapter:   multiparty.NewAdapter(generator),
		processor: finance.NewInvestmentProcessor(logger),
	}
}

// Run simulates the reference loan and, when requested, the alternative loan
// and its investment path. The two loans are simulated concurrently.
func (r *Runner) Run(ctx context.Context, req Request) (*Report, error) {
	if req.Investment != nil && req.Alternative == nil {
		return nil, fmt.Errorf("investment simulation requires an alternative loan")
	}

	var reference, alternative Scenario
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := r.simulate(gctx, req.Reference, req.Parties)
		if err != nil {
			return fmt.Errorf("reference loan: %w", err)
		}
		reference = s
		return nil
	})
	if req.Alternative != nil {
		g.Go(func() error {
			s, err := r.simulate(gctx, *req.Alternative, req.Parties)
			if err != nil {
				return fmt.Errorf("alternative loan: %w", err)
			}
			alternative = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Reference: reference}
	if req.Parties != nil {
		parties := *req.Parties
		report.Parties = &parties
	}
	if req.Alternative == nil {
		return report, nil
	}

	report.Alternative = &alternative
	report.AnnualDifferences = loans.CompareAnnual(reference.Annual, alternative.Annual)

	if req.Investment == nil {
		comparison := statistics.Compare(reference.Statistics, alternative.Statistics)
		report.Comparison = &comparison
		return report, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := r.processor.Simulate(reference.Schedule, alternative.Schedule, *req.Investment)
	if err != nil {
		return nil, fmt.Errorf("investment simulation: %w", err)
	}
	report.Investment = &InvestmentResult{
		AlternativeStart: result.AlternativeStart,
		ReferenceStart:   result.ReferenceStart,
		Combined:         result.Combined,
		Reference:        result.Reference,
	}

	report.Reference.Statistics = statistics.Compute(reference.Schedule, result.Reference, reference.Principal)
	report.Alternative.Statistics = statistics.ComputeCombined(alternative.Schedule, result.Combined, alternative.Principal)
	comparison := statistics.Compare(report.Reference.Statistics, report.Alternative.Statistics)
	report.Comparison = &comparison

	summary, err := r.solve(req, result)
	if err != nil {
		return nil, err
	}
	report.MinimumGrowth = &summary
	if rate, ok := summary.Rate(); ok {
		percent := rate * constants.PercentageMultiplier
		report.MinimumRequiredGrowthRate = &percent
	}

	r.logger.Info("comparison complete",
		zap.String("op", "compare.Run"),
		zap.String("referenceType", string(reference.Type)),
		zap.String("alternativeType", string(alternative.Type)),
		zap.Float64("totalCostDifference", comparison.TotalCostDifference),
		zap.String("solverOutcome", summary.Outcome.String()),
	)

	return report, nil
}

func (r *Runner) simulate(ctx context.Context, spec LoanSpec, parties *multiparty.Parties) (Scenario, error) {
	if err := ctx.Err(); err != nil {
		return Scenario{}, err
	}

	var schedule loans.Schedule
	var err error
	if parties != nil {
		schedule, err = r.adapter.Simulate(spec.Type, spec.Params, spec.Entries, *parties)
	} else {
		schedule, err = r.generator.Simulate(spec.Type, spec.Params, spec.Entries)
	}
	if err != nil {
		return Scenario{}, err
	}

	principal := spec.Params.Principal()
	scenario := Scenario{
		Type:       spec.Type,
		Principal:  principal,
		Schedule:   schedule,
		Annual:     loans.AggregateAnnual(schedule),
		Statistics: statistics.Compute(schedule, nil, principal),
	}
	if parties != nil {
		multi := multiparty.ComputeStatistics(schedule, principal, *parties)
		scenario.MultiParty = &multi
	}
	return scenario, nil
}

func (r *Runner) solve(req Request, result finance.Result) (optimization.Summary, error) {
	cfg := req.Solver
	if cfg == (optimization.SolverConfig{}) {
		cfg = optimization.DefaultSolverConfig()
	}
	solver, err := optimization.NewSolver(r.logger, cfg)
	if err != nil {
		return optimization.Summary{}, err
	}

	targetMonth := req.Alternative.Params.TermMonths()
	if req.TargetMonth > 0 {
		targetMonth = req.TargetMonth
	}
	targetAmount := req.Alternative.Params.Principal()
	if req.TargetAmount != nil {
		targetAmount = *req.TargetAmount
	}

	return solver.Solve(result.Combined, targetMonth, targetAmount, result.AlternativeStart), nil
}

// RequestFromConfig builds a request from a loaded configuration.
func RequestFromConfig(conf *config.Configuration) (Request, error) {
	if conf == nil {
		return Request{}, fmt.Errorf("configuration cannot be nil")
	}
	if err := conf.Validate(); err != nil {
		return Request{}, err
	}

	reference, err := loanSpec(&conf.Reference)
	if err != nil {
		return Request{}, fmt.Errorf("reference loan: %w", err)
	}
	req := Request{Reference: reference, Solver: conf.SolverConfig()}

	if conf.Alternative != nil {
		alternative, err := loanSpec(conf.Alternative)
		if err != nil {
			return Request{}, fmt.Errorf("alternative loan: %w", err)
		}
		req.Alternative = &alternative
	}
	if conf.Investment != nil {
		params := conf.Investment.ContributionParams(conf.Reference.OwnContribution, conf.Alternative.OwnContribution)
		req.Investment = &params
	}
	if conf.Parties != nil {
		parties := conf.Parties.ToParties()
		req.Parties = &parties
	}
	if conf.Solver != nil {
		req.TargetMonth = conf.Solver.TargetMonth
		req.TargetAmount = conf.Solver.TargetAmount
	}
	return req, nil
}

func loanSpec(loan *config.LoanConfig) (LoanSpec, error) {
	loanType, err := loan.Type()
	if err != nil {
		return LoanSpec{}, err
	}
	return LoanSpec{Type: loanType, Params: loan.Params(), Entries: loan.Entries()}, nil
}
