// Package output provides utilities for formatting and displaying simulation results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/loanlogic/loan-logic/internal/compare"
	"github.com/loanlogic/loan-logic/pkg/constants"
	"github.com/loanlogic/loan-logic/pkg/finance"
	"github.com/loanlogic/loan-logic/pkg/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Write renders report in the given format and granularity.
func Write(w io.Writer, report *compare.Report, format, granularity string) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}
	if err := validation.ValidateGranularity(granularity); err != nil {
		return err
	}
	annual := granularity == constants.GranularityAnnual

	switch format {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, report, annual)
	case constants.OutputFormatCSV:
		return CsvFormat(w, report, annual)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, report, annual)
	default:
		return validation.ValidateOutputFormat(format)
	}
}

type namedScenario struct {
	name     string
	scenario *compare.Scenario
}

func scenarios(report *compare.Report) []namedScenario {
	out := []namedScenario{{name: "reference", scenario: &report.Reference}}
	if report.Alternative != nil {
		out = append(out, namedScenario{name: "alternative", scenario: report.Alternative})
	}
	return out
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, report *compare.Report, annual bool) error {
	p := message.NewPrinter(language.English)
	pw := &printWriter{w: w, p: p}

	for _, named := range scenarios(report) {
		s := named.scenario
		pw.printf("--- Results for %s loan (%s) ---\n", named.name, s.Type)
		if annual {
			pw.printf("Year | Interest | Principal | Insurance | Total | Remaining\n")
			pw.printf("____ | ________ | _________ | _________ | _____ | _________\n")
			for _, row := range s.Annual {
				pw.printf("%d | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f\n",
					row.Year, row.AnnualInterest, row.AnnualPrincipal, row.AnnualInsurance,
					row.AnnualTotalPayment, row.RemainingPrincipalYearEnd)
			}
		} else {
			pw.printf("Month | Year | Interest | Principal | Insurance | Total | Remaining\n")
			pw.printf("_____ | ____ | ________ | _________ | _________ | _____ | _________\n")
			for _, row := range s.Schedule {
				pw.printf("%d | %d | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f\n",
					row.Month, row.Year, row.Interest, row.PrincipalPayment, row.InsurancePremium,
					row.TotalMonthlyPayment, row.RemainingPrincipal)
			}
		}
		if len(s.Schedule) == 0 {
			pw.printf("No loan needed\n")
		}

		st := s.Statistics
		pw.printf("\nPrincipal: $%.2f\n", s.Principal)
		pw.printf("Total interest paid: $%.2f\n", st.TotalInterestPaid)
		pw.printf("Total insurance paid: $%.2f\n", st.TotalInsurancePaid)
		pw.printf("Total loan costs: $%.2f\n", st.TotalLoanCosts)
		pw.printf("Highest monthly payment: $%.2f\n", st.HighestMonthlyPayment)
		pw.printf("Median monthly payment: $%.2f\n", st.MedianMonthlyPayment)
		if inv := st.Investment; inv != nil {
			pw.printf("Start investment: $%.2f\n", inv.StartInvestment)
			pw.printf("End investment balance: $%.2f\n", inv.EndInvestmentBalance)
			pw.printf("Net investment growth: $%.2f\n", inv.NetInvestmentGrowth)
			pw.printf("Net final result: $%.2f\n", inv.NetFinalResult)
			if inv.NetWorthEndOfTerm != nil {
				pw.printf("Net worth at end of term: $%.2f\n", *inv.NetWorthEndOfTerm)
			}
		}
		if mp := s.MultiParty; mp != nil {
			pw.printf("Clients: %d\n", mp.ClientCount)
			if mp.DebtRatioAssessment != "" {
				pw.printf("Debt ratio: %.2f%% (%s)\n", mp.DebtRatio, mp.DebtRatioAssessment)
			}
			if mp.ClientCount > 1 {
				pw.printf("Insurance paid per client: $%.2f\n", mp.PerClientInsurancePaid)
			}
			if mp.PerClientDebtRatioAssessment != "" {
				pw.printf("Debt ratio per client: %.2f%% (%s)\n", mp.PerClientDebtRatio, mp.PerClientDebtRatioAssessment)
			}
		}
		pw.printf("\n")
	}

	if annual && len(report.AnnualDifferences) > 0 {
		pw.printf("--- Annual differences (alternative - reference) ---\n")
		pw.printf("Year | Interest | Principal | Insurance | Total | Remaining\n")
		pw.printf("____ | ________ | _________ | _________ | _____ | _________\n")
		for _, row := range report.AnnualDifferences {
			pw.printf("%d | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f\n",
				row.Year, row.AnnualInterest, row.AnnualPrincipal, row.AnnualInsurance,
				row.AnnualTotalPayment, row.RemainingPrincipalYearEnd)
		}
		pw.printf("\n")
	}

	if inv := report.Investment; inv != nil && !annual {
		pw.printf("--- Investment simulation ---\n")
		pw.printf("Start (reference / alternative): $%.2f / $%.2f\n", inv.ReferenceStart, inv.AlternativeStart)
		pw.printf("Month | Contribution | Balance | Net worth | Reference balance\n")
		pw.printf("_____ | ____________ | _______ | _________ | _________________\n")
		refByMonth := make(map[int]finance.InvestmentMonth, len(inv.Reference))
		for _, row := range inv.Reference {
			refByMonth[row.Month] = row
		}
		for _, row := range inv.Combined {
			pw.printf("%d | $%.2f | $%.2f | $%.2f | $%.2f\n",
				row.Month, row.MonthlyContribution, row.InvestmentBalance, row.NetWorth,
				refByMonth[row.Month].InvestmentBalance)
		}
		pw.printf("\n")
	}

	if c := report.Comparison; c != nil {
		pw.printf("--- Comparison ---\n")
		pw.printf("Total cost difference (reference - alternative): $%.2f\n", c.TotalCostDifference)
		if c.NetWorthEndOfTerm != nil {
			pw.printf("Net worth at end of term: $%.2f\n", *c.NetWorthEndOfTerm)
		}
		if report.MinimumGrowth != nil {
			if report.MinimumRequiredGrowthRate != nil {
				pw.printf("Minimum required growth rate: %.4f%% per year (%s)\n",
					*report.MinimumRequiredGrowthRate, report.MinimumGrowth.Outcome)
			} else {
				pw.printf("Minimum required growth rate: none found\n")
			}
		}
	}

	return pw.err
}

// CsvFormat outputs in comma-separated value format. Loan rows of both
// scenarios share one table keyed by a scenario column; monthly alternative
// rows carry the investment columns when an investment was simulated.
func CsvFormat(w io.Writer, report *compare.Report, annual bool) error {
	cw := csv.NewWriter(w)
	if annual {
		if err := cw.Write([]string{"scenario", "year", "interest", "principal", "insurance", "total", "remaining"}); err != nil {
			return err
		}
		for _, named := range scenarios(report) {
			for _, row := range named.scenario.Annual {
				record := []string{named.name, strconv.Itoa(row.Year),
					money(row.AnnualInterest), money(row.AnnualPrincipal), money(row.AnnualInsurance),
					money(row.AnnualTotalPayment), money(row.RemainingPrincipalYearEnd)}
				if err := cw.Write(record); err != nil {
					return err
				}
			}
		}
		cw.Flush()
		return cw.Error()
	}

	header := []string{"scenario", "month", "year", "interest", "principal", "insurance", "total", "remaining"}
	withInvestment := report.Investment != nil
	if withInvestment {
		header = append(header, "contribution", "investmentBalance", "netWorth")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	var combined map[int]finance.CombinedMonth
	if withInvestment {
		combined = make(map[int]finance.CombinedMonth, len(report.Investment.Combined))
		for _, row := range report.Investment.Combined {
			combined[row.Month] = row
		}
	}

	for _, named := range scenarios(report) {
		for _, row := range named.scenario.Schedule {
			record := []string{named.name, strconv.Itoa(row.Month), strconv.Itoa(row.Year),
				money(row.Interest), money(row.PrincipalPayment), money(row.InsurancePremium),
				money(row.TotalMonthlyPayment), money(row.RemainingPrincipal)}
			if withInvestment {
				if inv, ok := combined[row.Month]; ok && named.scenario == report.Alternative {
					record = append(record, money(inv.MonthlyContribution), money(inv.InvestmentBalance), money(inv.NetWorth))
				} else {
					record = append(record, "", "", "")
				}
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// YAMLFormat outputs the full report as YAML. Annual output omits the monthly
// schedules and investment paths.
func YAMLFormat(w io.Writer, report *compare.Report, annual bool) error {
	view := *report
	if annual {
		view.Reference.Schedule = nil
		if report.Alternative != nil {
			alt := *report.Alternative
			alt.Schedule = nil
			view.Alternative = &alt
		}
		view.Investment = nil
	} else {
		view.Reference.Annual = nil
		if report.Alternative != nil {
			alt := *report.Alternative
			alt.Annual = nil
			view.Alternative = &alt
		}
		view.AnnualDifferences = nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("unable to encode report: %w", err)
	}
	return enc.Close()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// printWriter keeps the first write error so table rendering stays linear.
type printWriter struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func (pw *printWriter) printf(format string, args ...interface{}) {
	if pw.err != nil {
		return
	}
	_, pw.err = pw.p.Fprintf(pw.w, format, args...)
}
