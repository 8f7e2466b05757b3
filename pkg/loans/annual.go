package loans

// AnnualPayment summarizes one simulation year of a loan schedule.
type AnnualPayment struct {
	Year                       int     `yaml:"year" json:"year"`
	AnnualInterest             float64 `yaml:"annualInterest" json:"annualInterest"`
	AnnualPrincipal            float64 `yaml:"annualPrincipal" json:"annualPrincipal"`
	AnnualInsurance            float64 `yaml:"annualInsurance" json:"annualInsurance"`
	AnnualTotalPayment         float64 `yaml:"annualTotalPayment" json:"annualTotalPayment"`
	RemainingPrincipalYearEnd  float64 `yaml:"remainingPrincipalYearEnd" json:"remainingPrincipalYearEnd"`
	CumulativeInterestYearEnd  float64 `yaml:"cumulativeInterestYearEnd" json:"cumulativeInterestYearEnd"`
	CumulativeInsuranceYearEnd float64 `yaml:"cumulativeInsuranceYearEnd" json:"cumulativeInsuranceYearEnd"`
	CumulativePrincipalYearEnd float64 `yaml:"cumulativePrincipalYearEnd" json:"cumulativePrincipalYearEnd"`
}

// AnnualSchedule is a loan schedule grouped by simulation year.
type AnnualSchedule []AnnualPayment

// AggregateAnnual groups a monthly schedule by year. Flows are summed while
// balances and cumulative totals keep the year-end value.
func AggregateAnnual(schedule Schedule) AnnualSchedule {
	annual := AnnualSchedule{}
	index := make(map[int]int)

	for _, p := range schedule {
		i, ok := index[p.Year]
		if !ok {
			annual = append(annual, AnnualPayment{Year: p.Year})
			i = len(annual) - 1
			index[p.Year] = i
		}
		row := &annual[i]
		row.AnnualInterest += p.Interest
		row.AnnualPrincipal += p.PrincipalPayment
		row.AnnualInsurance += p.InsurancePremium
		row.AnnualTotalPayment += p.TotalMonthlyPayment
		row.RemainingPrincipalYearEnd = p.RemainingPrincipal
		row.CumulativeInterestYearEnd = p.CumulativeInterestPaid
		row.CumulativeInsuranceYearEnd = p.CumulativeInsurancePaid
		row.CumulativePrincipalYearEnd = p.CumulativePrincipalPaid
	}

	return annual
}

// AnnualDifference is the alternative minus reference delta for one year.
type AnnualDifference struct {
	Year                      int     `yaml:"year" json:"year"`
	AnnualInterest            float64 `yaml:"annualInterest" json:"annualInterest"`
	AnnualPrincipal           float64 `yaml:"annualPrincipal" json:"annualPrincipal"`
	AnnualInsurance           float64 `yaml:"annualInsurance" json:"annualInsurance"`
	AnnualTotalPayment        float64 `yaml:"annualTotalPayment" json:"annualTotalPayment"`
	RemainingPrincipalYearEnd float64 `yaml:"remainingPrincipalYearEnd" json:"remainingPrincipalYearEnd"`
}

// CompareAnnual subtracts reference from alternative year by year. Years
// present in only one schedule compare against zero.
func CompareAnnual(reference, alternative AnnualSchedule) []AnnualDifference {
	refByYear := make(map[int]AnnualPayment, len(reference))
	altByYear := make(map[int]AnnualPayment, len(alternative))
	lastYear := 0
	for _, row := range reference {
		refByYear[row.Year] = row
		if row.Year > lastYear {
			lastYear = row.Year
		}
	}
	for _, row := range alternative {
		altByYear[row.Year] = row
		if row.Year > lastYear {
			lastYear = row.Year
		}
	}

	var diffs []AnnualDifference
	for year := 1; year <= lastYear; year++ {
		ref, refOK := refByYear[year]
		alt, altOK := altByYear[year]
		if !refOK && !altOK {
			continue
		}
		diffs = append(diffs, AnnualDifference{
			Year:                      year,
			AnnualInterest:            alt.AnnualInterest - ref.AnnualInterest,
			AnnualPrincipal:           alt.AnnualPrincipal - ref.AnnualPrincipal,
			AnnualInsurance:           alt.AnnualInsurance - ref.AnnualInsurance,
			AnnualTotalPayment:        alt.AnnualTotalPayment - ref.AnnualTotalPayment,
			RemainingPrincipalYearEnd: alt.RemainingPrincipalYearEnd - ref.RemainingPrincipalYearEnd,
		})
	}
	return diffs
}
