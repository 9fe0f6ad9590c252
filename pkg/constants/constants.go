// Package constants provides shared constants for the npv-calculator application.
package constants

// Financial constants
const (
	// PercentageMultiplier converts a percentage rate to a decimal fraction
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Form defaults, used to pre-populate the calculator when no configuration
// overrides them.
const (
	// DefaultDiscountRatePercent is the initial discount rate shown in the form
	DefaultDiscountRatePercent = 10.0

	// DefaultInitialInvestment is the initial investment shown in the form
	DefaultInitialInvestment = 5000.0

	// DefaultCashFlowCount is how many random cash flows a reset generates
	DefaultCashFlowCount = 5

	// RandomCashFlowMin is the inclusive lower bound for generated cash flows
	RandomCashFlowMin = 500

	// RandomCashFlowMax is the inclusive upper bound for generated cash flows
	RandomCashFlowMax = 5000

	// MaxRandomCashFlowCount bounds how many flows one request may generate
	MaxRandomCashFlowCount = 1000
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

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8050"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)
