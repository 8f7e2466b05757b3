package optimization

import (
	"math"
	"testing"

	"github.com/loanlogic/loan-logic/pkg/finance"
	"github.com/loanlogic/loan-logic/pkg/loans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func combinedFrom(contributions []float64) finance.CombinedSchedule {
	combined := make(finance.CombinedSchedule, len(contributions))
	for i, c := range contributions {
		combined[i] = finance.CombinedMonth{
			Payment:             loans.Payment{Month: i + 1, Year: i/12 + 1},
			HasLoan:             true,
			MonthlyContribution: c,
		}
	}
	return combined
}

func repeat(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

func TestFutureValue(t *testing.T) {
	tests := []struct {
		name          string
		start         float64
		contributions []float64
		months        int
		rate          float64
		expected      float64
	}{
		{"Zero rate sums everything", 1000, []float64{100, 100, 100}, 3, 0, 1300},
		{"Start compounds only", 1000, nil, 12, 0.01, 1000 * math.Pow(1.01, 12)},
		{"Last contribution does not grow", 0, []float64{100, 100}, 2, 0.1, 110 + 100},
		{"Contributions beyond months ignored", 0, []float64{100, 100, 5000}, 2, 0, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, FutureValue(tt.start, tt.contributions, tt.months, tt.rate), 1e-9)
		})
	}

	assert.True(t, math.IsInf(FutureValue(1000, nil, 12, -1), -1))
	assert.True(t, math.IsInf(FutureValue(1000, nil, 12, -2), -1))
}

func TestSolverConfigValidate(t *testing.T) {
	require.NoError(t, DefaultSolverConfig().Validate())

	bad := []SolverConfig{
		{LowerBound: -1, UpperBound: 0.1, Tolerance: 1e-6, MaxIterations: 10},
		{LowerBound: 0.1, UpperBound: 0.1, Tolerance: 1e-6, MaxIterations: 10},
		{LowerBound: -0.05, UpperBound: 0.1, Tolerance: 0, MaxIterations: 10},
		{LowerBound: -0.05, UpperBound: 0.1, Tolerance: 1e-6, MaxIterations: 0},
	}
	for _, c := range bad {
		assert.Error(t, c.Validate(), "config %+v", c)
	}

	_, err := NewSolver(zap.NewNop(), SolverConfig{})
	assert.Error(t, err)
}

func TestSolve_RoundTripInsideBracket(t *testing.T) {
	solver, err := NewSolver(zap.NewNop(), DefaultSolverConfig())
	require.NoError(t, err)

	const monthly = 0.005
	contributions := repeat(250, 120)
	target := FutureValue(20000, contributions, 120, monthly)

	summary := solver.Solve(combinedFrom(contributions), 120, target, 20000)
	require.Equal(t, Bracketed, summary.Outcome)
	require.True(t, summary.Converged)
	assert.InDelta(t, monthly, summary.MonthlyRate, 1e-5)
	assert.InDelta(t, math.Pow(1+monthly, 12)-1, summary.AnnualRate, 1e-4)
	assert.LessOrEqual(t, summary.Iterations, DefaultSolverConfig().MaxIterations)

	rate, ok := summary.Rate()
	assert.True(t, ok)
	assert.Equal(t, summary.AnnualRate, rate)
}

func TestSolve_NegativeRateInsideBracket(t *testing.T) {
	solver, err := NewSolver(zap.NewNop(), DefaultSolverConfig())
	require.NoError(t, err)

	const monthly = -0.002
	contributions := repeat(-100, 60)
	target := FutureValue(50000, contributions, 60, monthly)

	summary := solver.Solve(combinedFrom(contributions), 60, target, 50000)
	require.Equal(t, Bracketed, summary.Outcome)
	assert.InDelta(t, monthly, summary.MonthlyRate, 1e-5)
}

func TestSolve_FallsBackOutsideBracket(t *testing.T) {
	solver, err := NewSolver(zap.NewNop(), DefaultSolverConfig())
	require.NoError(t, err)

	const monthly = 0.2
	target := FutureValue(1000, nil, 12, monthly)

	summary := solver.Solve(combinedFrom(repeat(0, 12)), 12, target, 1000)
	require.Equal(t, Unconstrained, summary.Outcome)
	require.True(t, summary.Converged)
	assert.InDelta(t, monthly, summary.MonthlyRate, 1e-6)
	assert.NotEmpty(t, summary.Notes)
}

func TestSolve_UnreachableTarget(t *testing.T) {
	solver, err := NewSolver(zap.NewNop(), DefaultSolverConfig())
	require.NoError(t, err)

	summary := solver.Solve(combinedFrom(repeat(0, 24)), 24, 1000, 0)
	assert.Equal(t, Unsolved, summary.Outcome)
	assert.False(t, summary.Converged)

	_, ok := summary.Rate()
	assert.False(t, ok)
	assert.Nil(t, SolveMinimumGrowth(combinedFrom(repeat(0, 24)), 24, 1000, 0))
}

func TestSolve_EmptyInput(t *testing.T) {
	solver, err := NewSolver(nil, DefaultSolverConfig())
	require.NoError(t, err)

	assert.Equal(t, Unsolved, solver.Solve(nil, 12, 1000, 1000).Outcome)
	assert.Equal(t, Unsolved, solver.Solve(combinedFrom(repeat(10, 12)), 0, 1000, 1000).Outcome)
}

func TestSolveMinimumGrowth(t *testing.T) {
	const monthly = 0.004
	contributions := repeat(-300, 360)
	target := FutureValue(200000, contributions, 360, monthly)

	rate := SolveMinimumGrowth(combinedFrom(contributions), 360, target, 200000)
	require.NotNil(t, rate)
	assert.InDelta(t, AnnualFromMonthly(monthly), *rate, 1e-4)
}

func TestSolve_CustomBracket(t *testing.T) {
	solver, err := NewSolver(zap.NewNop(), SolverConfig{LowerBound: 0.15, UpperBound: 0.3, Tolerance: 1e-8, MaxIterations: 100})
	require.NoError(t, err)

	target := FutureValue(1000, nil, 12, 0.2)
	summary := solver.Solve(combinedFrom(repeat(0, 12)), 12, target, 1000)
	require.Equal(t, Bracketed, summary.Outcome)
	assert.InDelta(t, 0.2, summary.MonthlyRate, 1e-7)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "bracketed", Bracketed.String())
	assert.Equal(t, "unconstrained", Unconstrained.String())
	assert.Equal(t, "unsolved", Unsolved.String())
}
