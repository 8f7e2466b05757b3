package optimization

import (
	"fmt"
	"math"

	"github.com/loanlogic/loan-logic/pkg/finance"
	"go.uber.org/zap"
)

// SolverConfig bounds the bracketed search and caps iterations for both stages.
type SolverConfig struct {
	LowerBound    float64
	UpperBound    float64
	Tolerance     float64
	MaxIterations int
}

// DefaultSolverConfig brackets the monthly rate between -5% and +10%.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		LowerBound:    -0.05,
		UpperBound:    0.10,
		Tolerance:     1e-6,
		MaxIterations: 200,
	}
}

// Validate reports whether the bounds form a usable bracket.
func (c SolverConfig) Validate() error {
	if c.LowerBound <= -1 {
		return fmt.Errorf("lower bound must be greater than -1, got %v", c.LowerBound)
	}
	if c.UpperBound <= c.LowerBound {
		return fmt.Errorf("upper bound %v must be greater than lower bound %v", c.UpperBound, c.LowerBound)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %v", c.Tolerance)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", c.MaxIterations)
	}
	return nil
}

// FutureValue compounds start and the monthly contributions at rate r through
// the given month. Contribution i (1-based) grows for months-i periods and
// contributions beyond months are ignored. A rate of -100% or lower yields
// negative infinity.
func FutureValue(start float64, contributions []float64, months int, r float64) float64 {
	if r <= -1 {
		return math.Inf(-1)
	}
	growth := 1 + r
	value := start * math.Pow(growth, float64(months))
	for i, c := range contributions {
		month := i + 1
		if month > months {
			break
		}
		value += c * math.Pow(growth, float64(months-month))
	}
	return value
}

// Solver finds the minimum monthly growth rate that reaches a target.
type Solver struct {
	logger *zap.Logger
	config SolverConfig
}

// NewSolver creates a Solver. The configuration must pass Validate.
func NewSolver(logger *zap.Logger, config SolverConfig) (*Solver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid solver configuration: %w", err)
	}
	return &Solver{logger: logger, config: config}, nil
}

// Solve returns the constant monthly rate r for which the start amount and the
// schedule's contributions grow to targetAmount by targetMonth. The root is
// searched inside the configured bracket first and by Newton iteration from
// zero when the bracket shows no sign change.
func (s *Solver) Solve(combined finance.CombinedSchedule, targetMonth int, targetAmount, start float64) Summary {
	if len(combined) == 0 || targetMonth < 1 {
		return Summary{Outcome: Unsolved, Notes: []string{"no contributions to solve against"}}
	}
	return s.SolveContributions(combined.Contributions(targetMonth), targetMonth, targetAmount, start)
}

// SolveContributions is Solve over a plain contribution series for months 1..n.
func (s *Solver) SolveContributions(contributions []float64, targetMonth int, targetAmount, start float64) Summary {
	if targetMonth < 1 {
		return Summary{Outcome: Unsolved, Notes: []string{"target month must be at least 1"}}
	}
	goal := func(r float64) float64 {
		return FutureValue(start, contributions, targetMonth, r) - targetAmount
	}

	lo, hi := s.config.LowerBound, s.config.UpperBound
	glo, ghi := goal(lo), goal(hi)

	var summary Summary
	if glo == 0 || ghi == 0 || math.Signbit(glo) != math.Signbit(ghi) {
		root, iterations, converged := brent(goal, lo, hi, glo, ghi, s.config.Tolerance, s.config.MaxIterations)
		summary = Summary{Outcome: Bracketed, MonthlyRate: root, Iterations: iterations, Converged: converged}
		if !converged {
			summary.Outcome = Unsolved
			summary.Notes = append(summary.Notes, "bracketed search hit the iteration limit")
		}
	} else {
		note := fmt.Sprintf("no sign change in [%g, %g], falling back to Newton from 0", lo, hi)
		root, iterations, converged := newton(goal, 0, s.config.Tolerance, math.Max(1, math.Abs(targetAmount))*s.config.Tolerance, s.config.MaxIterations)
		summary = Summary{Outcome: Unconstrained, MonthlyRate: root, Iterations: iterations, Converged: converged, Notes: []string{note}}
		if !converged {
			summary.Outcome = Unsolved
			summary.Notes = append(summary.Notes, "target is unreachable at any growth rate found")
		}
	}

	if summary.Outcome == Unsolved {
		summary.MonthlyRate = 0
		s.logger.Info("no growth rate reaches the target",
			zap.String("op", "optimization.Solve"),
			zap.Int("targetMonth", targetMonth),
			zap.Float64("targetAmount", targetAmount),
			zap.Int("iterations", summary.Iterations),
		)
		return summary
	}

	summary.AnnualRate = AnnualFromMonthly(summary.MonthlyRate)
	s.logger.Debug(fmt.Sprintf("minimum growth rate %.6f per month", summary.MonthlyRate),
		zap.String("op", "optimization.Solve"),
		zap.String("outcome", summary.Outcome.String()),
		zap.Float64("annualRate", summary.AnnualRate),
		zap.Int("iterations", summary.Iterations),
	)
	return summary
}

// SolveMinimumGrowth solves with the default configuration and returns the
// annual effective rate, or nil when no rate reaches the target.
func SolveMinimumGrowth(combined finance.CombinedSchedule, targetMonth int, targetAmount, start float64) *float64 {
	solver, err := NewSolver(nil, DefaultSolverConfig())
	if err != nil {
		return nil
	}
	rate, ok := solver.Solve(combined, targetMonth, targetAmount, start).Rate()
	if !ok {
		return nil
	}
	return &rate
}

// brent finds a root of f in [a, b] given f(a) and f(b) of opposite sign,
// mixing bisection with secant and inverse quadratic interpolation steps.
func brent(f func(float64) float64, a, b, fa, fb, tol float64, maxIter int) (float64, int, bool) {
	if fa == 0 {
		return a, 0, true
	}
	if fb == 0 {
		return b, 0, true
	}

	xpre, xcur := a, b
	fpre, fcur := fa, fb
	var xblk, fblk, spre, scur float64

	for i := 1; i <= maxIter; i++ {
		if fpre != 0 && fcur != 0 && math.Signbit(fpre) != math.Signbit(fcur) {
			xblk, fblk = xpre, fpre
			spre = xcur - xpre
			scur = spre
		}
		if math.Abs(fblk) < math.Abs(fcur) {
			xpre, xcur, xblk = xcur, xblk, xcur
			fpre, fcur, fblk = fcur, fblk, fcur
		}

		delta := (tol + tol*math.Abs(xcur)) / 2
		sbis := (xblk - xcur) / 2
		if fcur == 0 || math.Abs(sbis) < delta {
			return xcur, i, true
		}

		if math.Abs(spre) > delta && math.Abs(fcur) < math.Abs(fpre) {
			var stry float64
			if xpre == xblk {
				stry = -fcur * (xcur - xpre) / (fcur - fpre)
			} else {
				dpre := (fpre - fcur) / (xpre - xcur)
				dblk := (fblk - fcur) / (xblk - xcur)
				stry = -fcur * (fblk*dblk - fpre*dpre) / (dblk * dpre * (fblk - fpre))
			}
			if 2*math.Abs(stry) < math.Min(math.Abs(spre), 3*math.Abs(sbis)-delta) {
				spre, scur = scur, stry
			} else {
				spre, scur = sbis, sbis
			}
		} else {
			spre, scur = sbis, sbis
		}

		xpre, fpre = xcur, fcur
		if math.Abs(scur) > delta {
			xcur += scur
		} else if sbis > 0 {
			xcur += delta
		} else {
			xcur -= delta
		}
		fcur = f(xcur)
	}
	return xcur, maxIter, false
}

// newton iterates from x0 using a central-difference derivative. Steps that
// would land on r <= -1 are halved until they stay above it.
func newton(f func(float64) float64, x0, xtol, ftol float64, maxIter int) (float64, int, bool) {
	const h = 1e-7
	x := x0
	fx := f(x)
	for i := 1; i <= maxIter; i++ {
		if math.IsNaN(fx) || math.IsInf(fx, 0) {
			return x, i, false
		}
		derivative := (f(x+h) - f(x-h)) / (2 * h)
		if derivative == 0 || math.IsNaN(derivative) || math.IsInf(derivative, 0) {
			return x, i, false
		}
		step := fx / derivative
		next := x - step
		for halvings := 0; next <= -1 && halvings < 60; halvings++ {
			step /= 2
			next = x - step
		}
		if next <= -1 {
			return x, i, false
		}
		x = next
		fx = f(x)
		if math.Abs(step) <= xtol*(1+math.Abs(x)) && math.Abs(fx) <= ftol {
			return x, i, true
		}
	}
	return x, maxIter, false
}
