// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/loanlogic/loan-logic/pkg/loans"
)

// FindPayment finds a month in a loan schedule.
// Returns a pointer to the payment if found, nil otherwise.
func FindPayment(schedule loans.Schedule, month int) *loans.Payment {
	for i := range schedule {
		if schedule[i].Month == month {
			return &schedule[i]
		}
	}
	return nil
}

// FindYear finds a year in an annual schedule.
// Returns a pointer to the row if found, nil otherwise.
func FindYear(annual loans.AnnualSchedule, year int) *loans.AnnualPayment {
	for i := range annual {
		if annual[i].Year == year {
			return &annual[i]
		}
	}
	return nil
}
