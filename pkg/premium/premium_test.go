package premium

import (
	"math"
	"testing"
)

func TestDefaultTableBounds(t *testing.T) {
	table := DefaultTable()
	if table.FirstYear() != 2025 || table.LastYear() != 2049 {
		t.Fatalf("table bounds = [%d, %d], want [2025, 2049]", table.FirstYear(), table.LastYear())
	}
	if len(table.Years()) != 25 {
		t.Errorf("expected 25 table years, got %d", len(table.Years()))
	}
}

func TestAnnualLevelPayment(t *testing.T) {
	e := DefaultEstimator()

	tests := []struct {
		name      string
		simYear   int
		startYear int
		coverage  float64
		expected  float64
	}{
		{"First year full coverage", 1, 2025, 1.0, 539.58},
		{"Third year half coverage", 3, 2025, 0.5, 300.205},
		{"Later start year", 1, 2030, 1.0, 656.09},
		{"Clamp past table end", 30, 2025, 1.0, 114.79},
		{"Clamp before table start", 1, 2020, 1.0, 539.58},
		{"Zero coverage", 5, 2025, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.Annual(tt.simYear, tt.startYear, LevelPayment, tt.coverage)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Annual() = %.4f, expected %.4f", result, tt.expected)
			}
		})
	}
}

func TestAnnualPrincipalScheduleEscalates(t *testing.T) {
	e := DefaultEstimator()

	first := e.Annual(1, 2040, PrincipalSchedule, 1.0)
	if math.Abs(first-539.58) > 1e-9 {
		t.Errorf("year 1 premium = %.4f, want base premium 539.58 regardless of start year", first)
	}

	tenth := e.Annual(10, 2025, PrincipalSchedule, 1.0)
	expected := 539.58 * math.Pow(1.04, 9)
	if math.Abs(tenth-expected) > 1e-9 {
		t.Errorf("year 10 premium = %.4f, want %.4f", tenth, expected)
	}

	e.Escalation = 0
	if flat := e.Annual(10, 2025, PrincipalSchedule, 0.5); math.Abs(flat-269.79) > 1e-9 {
		t.Errorf("zero escalation premium = %.4f, want 269.79", flat)
	}
}

func TestMonthlyIsTwelfthOfAnnual(t *testing.T) {
	e := DefaultEstimator()
	annual := e.Annual(2, 2025, LevelPayment, 1.0)
	monthly := e.Monthly(2, 2025, LevelPayment, 1.0)
	if math.Abs(monthly*12-annual) > 1e-9 {
		t.Errorf("Monthly()*12 = %.4f, want %.4f", monthly*12, annual)
	}
}

func TestCustomTable(t *testing.T) {
	source := map[int]float64{2030: 100, 2031: 200}
	table, err := NewTable(source)
	if err != nil {
		t.Fatalf("NewTable returned error: %v", err)
	}
	source[2030] = 999
	if table.Lookup(2030) != 100 {
		t.Errorf("table must not observe changes to its source map")
	}
	if table.Lookup(2040) != 200 {
		t.Errorf("Lookup past end = %.2f, want 200", table.Lookup(2040))
	}

	e := NewEstimator(table)
	if got := e.Annual(2, 2030, LevelPayment, 1); got != 200 {
		t.Errorf("Annual with custom table = %.2f, want 200", got)
	}
}

func TestNewTableRejectsInvalidInput(t *testing.T) {
	if _, err := NewTable(nil); err == nil {
		t.Errorf("expected error for empty table")
	}
	if _, err := NewTable(map[int]float64{2025: -1}); err == nil {
		t.Errorf("expected error for negative premium")
	}
}
