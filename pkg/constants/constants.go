// Package constants provides shared constants for the rentvsbuy application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)

// Historical dataset columns. Values in the dataset are percentages and are
// divided by PercentageMultiplier before use.
const (
	// ColumnPriceGrowth is the annual property price growth column
	ColumnPriceGrowth = "PriceGrowth"

	// ColumnEPF is the annual EPF dividend rate column
	ColumnEPF = "EPF"

	// ColumnOPR is the average overnight policy rate column
	ColumnOPR = "OPR_avg"

	// ColumnRentYield is the annual rental yield column
	ColumnRentYield = "RentYield"

	// OPRSpread is the bank spread added to the OPR average to approximate
	// a retail mortgage rate.
	OPRSpread = 0.02
)

// Fallback assumptions used when a dataset column yields no usable values.
const (
	DefaultPropertyGrowth   = 0.03
	DefaultInvestmentReturn = 0.06
	DefaultMortgageRate     = 0.05
	DefaultRentYield        = 0.04
)

// Strategy labels for summary winners.
const (
	WinnerBuy    = "buy"
	WinnerInvest = "invest"
	WinnerTie    = "tie"
)
