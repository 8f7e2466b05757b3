package loans

// Payment holds one month of a loan schedule.
type Payment struct {
	Month                     int     `yaml:"month" json:"month"`
	Year                      int     `yaml:"year" json:"year"`
	PaymentExcludingInsurance float64 `yaml:"paymentExcludingInsurance" json:"paymentExcludingInsurance"`
	Interest                  float64 `yaml:"interest" json:"interest"`
	PrincipalPayment          float64 `yaml:"principalPayment" json:"principalPayment"`
	InsurancePremium          float64 `yaml:"insurancePremium" json:"insurancePremium"`
	TotalMonthlyPayment       float64 `yaml:"totalMonthlyPayment" json:"totalMonthlyPayment"`
	RemainingPrincipal        float64 `yaml:"remainingPrincipal" json:"remainingPrincipal"`
	CumulativePrincipalPaid   float64 `yaml:"cumulativePrincipalPaid" json:"cumulativePrincipalPaid"`
	CumulativeInterestPaid    float64 `yaml:"cumulativeInterestPaid" json:"cumulativeInterestPaid"`
	CumulativeInsurancePaid   float64 `yaml:"cumulativeInsurancePaid" json:"cumulativeInsurancePaid"`
}

// Schedule is an ordered month-by-month loan schedule. An empty schedule means
// no loan was needed.
type Schedule []Payment

// Last returns the final month of the schedule.
func (s Schedule) Last() (Payment, bool) {
	if len(s) == 0 {
		return Payment{}, false
	}
	return s[len(s)-1], true
}

// Months returns the highest month number in the schedule.
func (s Schedule) Months() int {
	highest := 0
	for _, p := range s {
		if p.Month > highest {
			highest = p.Month
		}
	}
	return highest
}

// TotalPaymentsByMonth indexes TotalMonthlyPayment by month.
func (s Schedule) TotalPaymentsByMonth() map[int]float64 {
	payments := make(map[int]float64, len(s))
	for _, p := range s {
		payments[p.Month] = p.TotalMonthlyPayment
	}
	return payments
}

// ByMonth indexes the schedule rows by month.
func (s Schedule) ByMonth() map[int]Payment {
	rows := make(map[int]Payment, len(s))
	for _, p := range s {
		rows[p.Month] = p
	}
	return rows
}

// Clone returns an independent copy of the schedule.
func (s Schedule) Clone() Schedule {
	if s == nil {
		return nil
	}
	out := make(Schedule, len(s))
	copy(out, s)
	return out
}
