// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/loanlogic/loan-logic/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatYAML:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatYAML, format)
}

// ValidateGranularity checks if the row granularity is monthly or annual.
func ValidateGranularity(granularity string) error {
	if granularity != constants.GranularityMonthly && granularity != constants.GranularityAnnual {
		return fmt.Errorf("expected granularity of %s or %s, got %s",
			constants.GranularityMonthly, constants.GranularityAnnual, granularity)
	}
	return nil
}
