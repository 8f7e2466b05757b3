package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Stored above midpoint", 1.235, 1.24},
		{"Stored below midpoint", 2.675, 2.67},
		{"Exact midpoint to even down", 0.125, 0.12},
		{"Exact midpoint to even up", 0.375, 0.38},
		{"Above midpoint", 1.236, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative exact midpoint", -0.625, -0.62},
		{"Negative number round up", -1.236, -1.24},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Very small negative", -0.001, 0.00},
		{"Exactly one cent", 0.01, 0.01},
		{"Nearly two cents", 0.019, 0.02},
		{"First month interest", 725000 * 0.035 / 12, 2114.58},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundNonFinite(t *testing.T) {
	if !math.IsInf(Round(math.Inf(-1)), -1) {
		t.Errorf("Round(-Inf) should stay -Inf")
	}
	if !math.IsNaN(Round(math.NaN())) {
		t.Errorf("Round(NaN) should stay NaN")
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small positive", 0.001, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Exactly tolerance", 0.01, true},
		{"Large negative", -100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsZero(tt.input)
			if result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestBelowTolerance(t *testing.T) {
	if !BelowTolerance(0.0099) || !BelowTolerance(-0.005) {
		t.Errorf("sub-cent values should be below tolerance")
	}
	if BelowTolerance(0.01) {
		t.Errorf("exactly one cent is not below tolerance")
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(100.0, 100.005, 0.01) {
		t.Errorf("expected values within tolerance")
	}
	if WithinTolerance(100.0, 100.02, 0.01) {
		t.Errorf("expected values outside tolerance")
	}
}

func TestMinMax(t *testing.T) {
	if Min(1, 2) != 1 || Min(-3, -4) != -4 {
		t.Errorf("Min returned unexpected value")
	}
	if Max(1, 2) != 2 || Max(-3, -4) != -3 {
		t.Errorf("Max returned unexpected value")
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"Quarter", 25, 100, 25},
		{"Debt ratio", 1500, 4500, 33.333333},
		{"Zero total", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 1e-4 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v", tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestPercentToDecimal(t *testing.T) {
	if math.Abs(PercentToDecimal(3.5)-0.035) > 1e-12 {
		t.Errorf("PercentToDecimal(3.5) = %v, expected 0.035", PercentToDecimal(3.5))
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
	}{
		{"Empty", nil, 0},
		{"Single", []float64{4}, 4},
		{"Odd", []float64{3, 1, 2}, 2},
		{"Even", []float64{4, 1, 3, 2}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Median(tt.input)
			if result != tt.expected {
				t.Errorf("Median(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}

	input := []float64{3, 1, 2}
	Median(input)
	if input[0] != 3 || input[1] != 1 || input[2] != 2 {
		t.Errorf("Median modified its input: %v", input)
	}
}
