package config

import (
	"fmt"

	"github.com/loanlogic/loan-logic/pkg/optimization"
)

// SolverConfig overrides the minimum-growth solver bracket and limits. The
// target defaults to repaying the alternative principal at the end of its term.
type SolverConfig struct {
	LowerBound    *float64 `yaml:"lowerBound,omitempty" mapstructure:"lowerBound"`
	UpperBound    *float64 `yaml:"upperBound,omitempty" mapstructure:"upperBound"`
	Tolerance     float64  `yaml:"tolerance,omitempty" mapstructure:"tolerance"`
	MaxIterations int      `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
	TargetMonth   int      `yaml:"targetMonth,omitempty" mapstructure:"targetMonth"`
	TargetAmount  *float64 `yaml:"targetAmount,omitempty" mapstructure:"targetAmount"`
}

func (s *SolverConfig) applyDefaults() {
	defaults := optimization.DefaultSolverConfig()
	if s.LowerBound == nil {
		lower := defaults.LowerBound
		s.LowerBound = &lower
	}
	if s.UpperBound == nil {
		upper := defaults.UpperBound
		s.UpperBound = &upper
	}
	if s.Tolerance == 0 {
		s.Tolerance = defaults.Tolerance
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = defaults.MaxIterations
	}
}

// ToSolverConfig converts to solver settings, filling unset fields with defaults.
func (s *SolverConfig) ToSolverConfig() (optimization.SolverConfig, error) {
	out := optimization.DefaultSolverConfig()
	if s == nil {
		return out, nil
	}
	if s.LowerBound != nil {
		out.LowerBound = *s.LowerBound
	}
	if s.UpperBound != nil {
		out.UpperBound = *s.UpperBound
	}
	if s.Tolerance != 0 {
		out.Tolerance = s.Tolerance
	}
	if s.MaxIterations != 0 {
		out.MaxIterations = s.MaxIterations
	}
	if err := out.Validate(); err != nil {
		return out, fmt.Errorf("solver: %w", err)
	}
	if s.TargetMonth < 0 {
		return out, fmt.Errorf("solver: target month cannot be negative, got %d", s.TargetMonth)
	}
	return out, nil
}

// SolverConfig returns the effective solver settings, or the defaults when the
// configured ones are invalid.
func (c *Configuration) SolverConfig() optimization.SolverConfig {
	out, err := c.Solver.ToSolverConfig()
	if err != nil {
		return optimization.DefaultSolverConfig()
	}
	return out
}
