// Package constants provides shared constants for the loan-logic application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPlaces is the number of decimals kept when rounding currency
	DecimalPlaces = 2

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent).
	// Remaining principal below this value is snapped to zero.
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Loan defaults mirroring the calculator's historical inputs.
const (
	// DefaultPurchasePrice is used when a loan omits its purchase price
	DefaultPurchasePrice = 825000.0

	// DefaultStartYear is the calendar year a loan starts in when unspecified
	DefaultStartYear = 2025

	// DefaultInsuranceCoverage is full (100%) debt insurance coverage
	DefaultInsuranceCoverage = 1.0
)

// Debt ratio assessment thresholds, in percent of monthly income.
const (
	DebtRatioGoodThreshold     = 33.0
	DebtRatioModerateThreshold = 43.0

	DebtRatioGood     = "good"
	DebtRatioModerate = "moderate"
	DebtRatioHigh     = "high"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"

	// GranularityMonthly prints one row per month
	GranularityMonthly = "monthly"

	// GranularityAnnual prints one row per simulation year
	GranularityAnnual = "annual"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. LOANLOGIC_OUTPUT_FORMAT
	EnvPrefix = "LOANLOGIC"
)
