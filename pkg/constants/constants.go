// Package constants provides shared constants for the finance-calculators application.
package constants

// MonthLayout is the format used for month-granular dates such as loan start
// dates and amortization schedule keys.
const MonthLayout = "2006-01"

// DateLayout is the format expected for day-granular dates such as bond
// settlement and maturity dates.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerYear is the actual/365 year basis
	DaysPerYear = 365.0

	// TradingDaysPerYear is the annualization basis for daily volatility
	TradingDaysPerYear = 252.0

	// WorkHoursPerYear is used to derive hourly rates from annual salaries
	WorkHoursPerYear = 2080.0

	// CurrencyPlaces is the number of decimal places kept for currency values
	CurrencyPlaces = 2

	// RatioPlaces is the number of decimal places kept for rates, ratios and yields
	RatioPlaces = 4

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// BasisPoint is one hundredth of a percent expressed as a decimal
	BasisPoint = 0.0001
)

// Score bounds shared by every heuristic score (liquidity, risk, confidence).
const (
	MinScore = 1
	MaxScore = 10

	// NeutralConfidence is the starting point for confidence heuristics
	NeutralConfidence = 5
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "fincalc.yaml"

	// EnvPrefix is the prefix for environment overrides, e.g. FINCALC_SERVER_ADDRESS
	EnvPrefix = "FINCALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultRequestsPerSecond is the default per-client request rate
	DefaultRequestsPerSecond = 10.0

	// DefaultBurst is the default per-client burst size
	DefaultBurst = 20
)

// Cache backends
const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	// DefaultCacheTTLSeconds is the default lifetime of a cached evaluation
	DefaultCacheTTLSeconds = 3600
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// YieldTolerance is the convergence tolerance for yield solvers
	YieldTolerance = 1e-10
)
