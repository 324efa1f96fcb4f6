package hedgefund

import (
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Calculator analyses fund investments with a fixed set of defaults.
type Calculator struct {
	Defaults Defaults
	Now      datetime.Clock
	rules    validation.Table[Inputs]
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithDefaults replaces the built-in defaults.
func WithDefaults(d Defaults) Option {
	return func(c *Calculator) {
		c.Defaults = d
	}
}

// WithClock sets the clock used to date lockup and redemption.
func WithClock(clock datetime.Clock) Option {
	return func(c *Calculator) {
		c.Now = clock
	}
}

// New creates a Calculator.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		Defaults: DefaultDefaults(),
		Now:      datetime.SystemClock,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rules = c.buildRules()
	return c
}

var defaultCalculator = New()

// Calculate analyses in with the built-in defaults.
func Calculate(in Inputs) Outputs {
	return defaultCalculator.Calculate(in)
}

// Validate validates in with the built-in defaults.
func Validate(in Inputs) validation.Result {
	return defaultCalculator.Validate(in)
}

// ValidateField validates a single field of in.
func ValidateField(field string, in Inputs) validation.FieldResult {
	return defaultCalculator.ValidateField(field, in)
}
