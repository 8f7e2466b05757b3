// Package premium estimates the debt insurance premium attached to a loan.
//
// Premiums come from a fixed table of annual full-coverage premiums keyed by
// calendar year. Level-payment loans read the table directly; principal
// schedule loans, whose outstanding balance stays high, start from the first
// table year and escalate by a fixed rate per simulation year.
package premium

import (
	"fmt"
	"math"
	"sort"

	"github.com/loanlogic/loan-logic/pkg/constants"
)

// DefaultEscalation is the yearly premium growth for principal schedule loans.
const DefaultEscalation = 0.04

// Structure identifies how a loan repays its principal.
type Structure int

const (
	// LevelPayment is an annuity loan with a fixed payment per month.
	LevelPayment Structure = iota
	// PrincipalSchedule covers bullet and modular loans that repay principal
	// only at scheduled months.
	PrincipalSchedule
)

func (s Structure) String() string {
	switch s {
	case LevelPayment:
		return "annuity"
	case PrincipalSchedule:
		return "principal-schedule"
	default:
		return fmt.Sprintf("Structure(%d)", int(s))
	}
}

// Table is an immutable lookup of annual full-coverage premiums by calendar year.
type Table struct {
	premiums  map[int]float64
	firstYear int
	lastYear  int
}

var defaultPremiums = map[int]float64{
	2025: 539.58, 2026: 563.91, 2027: 600.41, 2028: 624.74, 2029: 645.00,
	2030: 656.09, 2031: 674.83, 2032: 694.56, 2033: 709.42, 2034: 724.00,
	2035: 737.36, 2036: 752.82, 2037: 760.56, 2038: 767.81, 2039: 769.15,
	2040: 763.40, 2041: 752.23, 2042: 733.47, 2043: 702.50, 2044: 657.83,
	2045: 596.22, 2046: 515.62, 2047: 412.18, 2048: 280.36, 2049: 114.79,
}

// DefaultTable returns the 2025-2049 premium schedule.
func DefaultTable() Table {
	t, _ := NewTable(defaultPremiums)
	return t
}

// NewTable copies premiums into a Table. The map must not be empty.
func NewTable(premiums map[int]float64) (Table, error) {
	if len(premiums) == 0 {
		return Table{}, fmt.Errorf("premium table cannot be empty")
	}
	t := Table{premiums: make(map[int]float64, len(premiums))}
	first := true
	for year, amount := range premiums {
		if amount < 0 {
			return Table{}, fmt.Errorf("premium for %d cannot be negative: %.2f", year, amount)
		}
		t.premiums[year] = amount
		if first || year < t.firstYear {
			t.firstYear = year
		}
		if first || year > t.lastYear {
			t.lastYear = year
		}
		first = false
	}
	return t, nil
}

// Years returns the table's calendar years in ascending order.
func (t Table) Years() []int {
	years := make([]int, 0, len(t.premiums))
	for year := range t.premiums {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// FirstYear returns the earliest calendar year in the table.
func (t Table) FirstYear() int { return t.firstYear }

// LastYear returns the latest calendar year in the table.
func (t Table) LastYear() int { return t.lastYear }

// Lookup returns the premium for a calendar year. Years past the end of the
// table reuse the last year's premium and years before it reuse the first.
// Gaps inside the table fall back to the last year as well.
func (t Table) Lookup(calendarYear int) float64 {
	if len(t.premiums) == 0 {
		return 0
	}
	if calendarYear < t.firstYear {
		return t.premiums[t.firstYear]
	}
	if amount, ok := t.premiums[calendarYear]; ok {
		return amount
	}
	return t.premiums[t.lastYear]
}

// Estimator computes premiums for a loan from a Table.
type Estimator struct {
	Table      Table
	Escalation float64
}

// NewEstimator returns an Estimator over table with the default escalation.
func NewEstimator(table Table) Estimator {
	return Estimator{Table: table, Escalation: DefaultEscalation}
}

// DefaultEstimator uses DefaultTable and DefaultEscalation.
func DefaultEstimator() Estimator {
	return NewEstimator(DefaultTable())
}

// Annual returns the annual premium for a 1-based simulation year of a loan
// starting in startYear, scaled by coverage (0..1).
func (e Estimator) Annual(simulationYear, startYear int, structure Structure, coverage float64) float64 {
	var full float64
	switch structure {
	case PrincipalSchedule:
		base := e.Table.Lookup(e.Table.FirstYear())
		full = base * math.Pow(1+e.Escalation, float64(simulationYear-1))
	default:
		full = e.Table.Lookup(startYear + simulationYear - 1)
	}
	return full * coverage
}

// Monthly returns the per-month share of the annual premium.
func (e Estimator) Monthly(simulationYear, startYear int, structure Structure, coverage float64) float64 {
	return e.Annual(simulationYear, startYear, structure, coverage) / constants.MonthsPerYear
}
