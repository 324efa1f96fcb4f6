// Package calculators wires every calculator module into a registry with
// its configured defaults.
package calculators

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/iwvelando/finance-calculators/internal/calculators/bond"
	"github.com/iwvelando/finance-calculators/internal/calculators/forex"
	"github.com/iwvelando/finance-calculators/internal/calculators/hedgefund"
	"github.com/iwvelando/finance-calculators/internal/calculators/loan"
	"github.com/iwvelando/finance-calculators/internal/calculators/rentalyield"
	"github.com/iwvelando/finance-calculators/internal/calculators/salary"
	"github.com/iwvelando/finance-calculators/internal/calculators/valuation"
	"github.com/iwvelando/finance-calculators/internal/registry"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
)

// Overrides maps a calculator id to the default fields to replace, keyed by
// the json names of the module's Defaults.
type Overrides map[string]map[string]any

type builder struct {
	id    string
	build func(raw map[string]any, clock datetime.Clock) (registry.Calculator, error)
}

func entry[D any](id string, defaults func() D, bind func(D, datetime.Clock) registry.Calculator) builder {
	return builder{
		id: id,
		build: func(raw map[string]any, clock datetime.Clock) (registry.Calculator, error) {
			d, err := decodeDefaults(id, defaults(), raw)
			if err != nil {
				return nil, err
			}
			return bind(d, clock), nil
		},
	}
}

var builders = []builder{
	entry(bond.ID, bond.DefaultDefaults, func(d bond.Defaults, clock datetime.Clock) registry.Calculator {
		return bond.New(bond.WithDefaults(d), bond.WithClock(clock)).Bind()
	}),
	entry(valuation.ID, valuation.DefaultDefaults, func(d valuation.Defaults, clock datetime.Clock) registry.Calculator {
		return valuation.New(valuation.WithDefaults(d), valuation.WithClock(clock)).Bind()
	}),
	entry(forex.ID, forex.DefaultDefaults, func(d forex.Defaults, clock datetime.Clock) registry.Calculator {
		return forex.New(forex.WithDefaults(d), forex.WithClock(clock)).Bind()
	}),
	entry(hedgefund.ID, hedgefund.DefaultDefaults, func(d hedgefund.Defaults, clock datetime.Clock) registry.Calculator {
		return hedgefund.New(hedgefund.WithDefaults(d), hedgefund.WithClock(clock)).Bind()
	}),
	entry(rentalyield.ID, rentalyield.DefaultDefaults, func(d rentalyield.Defaults, clock datetime.Clock) registry.Calculator {
		return rentalyield.New(rentalyield.WithDefaults(d), rentalyield.WithClock(clock)).Bind()
	}),
	entry(salary.ID, salary.DefaultDefaults, func(d salary.Defaults, clock datetime.Clock) registry.Calculator {
		return salary.New(salary.WithDefaults(d), salary.WithClock(clock)).Bind()
	}),
	entry(loan.ID, loan.DefaultDefaults, func(d loan.Defaults, clock datetime.Clock) registry.Calculator {
		return loan.New(loan.WithDefaults(d), loan.WithClock(clock)).Bind()
	}),
}

// IDs returns every calculator id in registration order.
func IDs() []string {
	ids := make([]string, 0, len(builders))
	for _, b := range builders {
		ids = append(ids, b.id)
	}
	return ids
}

// decodeDefaults overlays raw onto defaults. Map fields are merged.
func decodeDefaults[D any](id string, defaults D, raw map[string]any) (D, error) {
	if len(raw) == 0 {
		return defaults, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &defaults,
	})
	if err != nil {
		return defaults, err
	}
	if err := decoder.Decode(raw); err != nil {
		return defaults, fmt.Errorf("defaults for %s: %w", id, err)
	}
	return defaults, nil
}

// Build creates every calculator. A nil clock uses the system clock.
// Overrides for unknown ids are rejected.
func Build(overrides Overrides, clock datetime.Clock) ([]registry.Calculator, error) {
	known := make(map[string]bool, len(builders))
	for _, b := range builders {
		known[b.id] = true
	}
	for id := range overrides {
		if !known[id] {
			return nil, fmt.Errorf("defaults for %s: %w", id, registry.ErrNotFound)
		}
	}
	if clock == nil {
		clock = datetime.SystemClock
	}

	built := make([]registry.Calculator, 0, len(builders))
	for _, b := range builders {
		c, err := b.build(overrides[b.id], clock)
		if err != nil {
			return nil, err
		}
		built = append(built, c)
	}
	return built, nil
}

// RegisterAll builds every calculator and registers it with r.
func RegisterAll(r *registry.Registry, overrides Overrides, clock datetime.Clock) error {
	built, err := Build(overrides, clock)
	if err != nil {
		return err
	}
	for _, c := range built {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}
