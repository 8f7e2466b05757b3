package compare

import (
	"context"
	"testing"

	"github.com/loanlogic/loan-logic/internal/config"
	"github.com/loanlogic/loan-logic/pkg/finance"
	"github.com/loanlogic/loan-logic/pkg/loans"
	"github.com/loanlogic/loan-logic/pkg/multiparty"
	"github.com/loanlogic/loan-logic/pkg/optimization"
	"github.com/loanlogic/loan-logic/pkg/premium"
	"github.com/loanlogic/loan-logic/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRunner() *Runner {
	return NewRunner(zap.NewNop(), premium.DefaultEstimator())
}

func referenceSpec() LoanSpec {
	return LoanSpec{
		Type:   loans.Annuity,
		Params: loans.Params{DownPayment: 100000, AnnualRate: 0.035, TermYears: 30, PurchasePrice: 825000, StartYear: 2025, Coverage: 1},
	}
}

func bulletSpec() LoanSpec {
	spec := referenceSpec()
	spec.Type = loans.Bullet
	return spec
}

func TestRun_ReferenceOnly(t *testing.T) {
	report, err := newTestRunner().Run(context.Background(), Request{Reference: referenceSpec()})
	require.NoError(t, err)

	assert.Len(t, report.Reference.Schedule, 360)
	assert.Len(t, report.Reference.Annual, 30)
	assert.Equal(t, 725000.0, report.Reference.Principal)
	assert.InDelta(t, 725000, report.Reference.Statistics.TotalPrincipalPaid, 0.01)
	assert.Nil(t, report.Alternative)
	assert.Nil(t, report.Investment)
	assert.Nil(t, report.Comparison)
	assert.Nil(t, report.Reference.MultiParty)
}

func TestRun_CompareWithoutInvestment(t *testing.T) {
	alternative := bulletSpec()
	report, err := newTestRunner().Run(context.Background(), Request{Reference: referenceSpec(), Alternative: &alternative})
	require.NoError(t, err)

	require.NotNil(t, report.Alternative)
	assert.Len(t, report.AnnualDifferences, 30)
	require.NotNil(t, report.Comparison)
	assert.Nil(t, report.Comparison.NetWorthEndOfTerm)
	assert.Nil(t, report.MinimumGrowth)
	assert.Nil(t, report.MinimumRequiredGrowthRate)

	last := testutil.FindPayment(report.Alternative.Schedule, 360)
	require.NotNil(t, last)
	assert.InDelta(t, 725000, last.PrincipalPayment, 0.01)

	refYear := testutil.FindYear(report.Reference.Annual, 30)
	altYear := testutil.FindYear(report.Alternative.Annual, 30)
	require.NotNil(t, refYear)
	require.NotNil(t, altYear)
	final := report.AnnualDifferences[29]
	assert.Equal(t, 30, final.Year)
	assert.InDelta(t, altYear.AnnualTotalPayment-refYear.AnnualTotalPayment, final.AnnualTotalPayment, 1e-6)
}

func TestRun_CompareWithInvestment(t *testing.T) {
	alternative := bulletSpec()
	investment := finance.ContributionParams{
		ReferenceDownPayment:   100000,
		AlternativeDownPayment: 100000,
		StartCapital:           150000,
		MonthlyGrowthRate:      finance.MonthlyRateFromAnnual(0.08),
	}

	report, err := newTestRunner().Run(context.Background(), Request{
		Reference:   referenceSpec(),
		Alternative: &alternative,
		Investment:  &investment,
		Solver:      optimization.DefaultSolverConfig(),
	})
	require.NoError(t, err)

	require.NotNil(t, report.Investment)
	assert.Equal(t, 50000.0, report.Investment.AlternativeStart)
	assert.Equal(t, 50000.0, report.Investment.ReferenceStart)
	assert.Len(t, report.Investment.Combined, 360)
	assert.Len(t, report.Investment.Reference, 360)

	require.NotNil(t, report.Reference.Statistics.Investment)
	require.NotNil(t, report.Alternative.Statistics.Investment)
	require.NotNil(t, report.Alternative.Statistics.Investment.NetWorthEndOfTerm)

	require.NotNil(t, report.MinimumGrowth)
	rate, ok := report.MinimumGrowth.Rate()
	require.True(t, ok)
	require.NotNil(t, report.MinimumRequiredGrowthRate)
	assert.InDelta(t, rate*100, *report.MinimumRequiredGrowthRate, 1e-9)

	monthly := report.MinimumGrowth.MonthlyRate
	contributions := report.Investment.Combined.Contributions(360)
	fv := optimization.FutureValue(report.Investment.AlternativeStart, contributions, 360, monthly)
	assert.InEpsilon(t, 725000, fv, 2e-3, "solved rate should reach the target")
}

func TestRun_MultiParty(t *testing.T) {
	parties := multiparty.Parties{Count: 2, MonthlyIncome: 9000}
	single, err := newTestRunner().Run(context.Background(), Request{Reference: referenceSpec()})
	require.NoError(t, err)
	shared, err := newTestRunner().Run(context.Background(), Request{Reference: referenceSpec(), Parties: &parties})
	require.NoError(t, err)

	require.NotNil(t, shared.Reference.MultiParty)
	assert.Equal(t, 2, shared.Reference.MultiParty.ClientCount)
	assert.InDelta(t, 2*single.Reference.Statistics.TotalInsurancePaid, shared.Reference.Statistics.TotalInsurancePaid, 0.02)
	require.NotNil(t, shared.Parties)
	assert.Equal(t, parties, *shared.Parties)
}

func TestRun_Errors(t *testing.T) {
	runner := newTestRunner()
	investment := finance.ContributionParams{}

	_, err := runner.Run(context.Background(), Request{Reference: referenceSpec(), Investment: &investment})
	assert.Error(t, err)

	modular := referenceSpec()
	modular.Type = loans.Modular
	_, err = runner.Run(context.Background(), Request{Reference: referenceSpec(), Alternative: &modular})
	assert.ErrorIs(t, err, loans.ErrMissingSchedule)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Run(ctx, Request{Reference: referenceSpec()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_NoLoanNeeded(t *testing.T) {
	spec := referenceSpec()
	spec.Params.DownPayment = spec.Params.PurchasePrice

	report, err := newTestRunner().Run(context.Background(), Request{Reference: spec})
	require.NoError(t, err)
	assert.Empty(t, report.Reference.Schedule)
	assert.Empty(t, report.Reference.Annual)
	assert.Zero(t, report.Reference.Statistics.TotalLoanCosts)
}

func TestRequestFromConfig(t *testing.T) {
	lower := -0.02
	target := 700000.0
	conf := &config.Configuration{
		Reference:   config.LoanConfig{InterestRate: 3.5, TermYears: 30, OwnContribution: 100000},
		Alternative: &config.LoanConfig{LoanType: "bullet", InterestRate: 3.5, TermYears: 30, OwnContribution: 50000},
		Investment:  &config.InvestmentConfig{StartCapital: 150000, AnnualGrowthRate: 6},
		Parties:     &config.PartiesConfig{Count: 2},
		Solver:      &config.SolverConfig{LowerBound: &lower, TargetMonth: 240, TargetAmount: &target},
	}
	conf.ApplyDefaults()

	req, err := RequestFromConfig(conf)
	require.NoError(t, err)

	assert.Equal(t, loans.Annuity, req.Reference.Type)
	require.NotNil(t, req.Alternative)
	assert.Equal(t, []loans.ScheduleEntry{{Month: 360, Amount: 775000}}, req.Alternative.Entries)
	require.NotNil(t, req.Investment)
	assert.Equal(t, 100000.0, req.Investment.ReferenceDownPayment)
	assert.Equal(t, 50000.0, req.Investment.AlternativeDownPayment)
	assert.Equal(t, 2, req.Parties.Count)
	assert.Equal(t, -0.02, req.Solver.LowerBound)
	assert.Equal(t, 0.10, req.Solver.UpperBound)
	assert.Equal(t, 240, req.TargetMonth)
	assert.Equal(t, 700000.0, *req.TargetAmount)

	_, err = RequestFromConfig(nil)
	assert.Error(t, err)

	conf.Reference.LoanType = "balloon"
	_, err = RequestFromConfig(conf)
	assert.Error(t, err)
}
