package registry

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/cespare/xxhash/v2"
	"github.com/go-viper/mapstructure/v2"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Calculator is the type-erased view of a calculator module used by the CLI,
// the HTTP API and the evaluation service. Raw inputs are keyed by the json
// field names of the module's input record.
type Calculator interface {
	Descriptor() Descriptor
	Decode(raw map[string]any) (any, error)
	Validate(raw map[string]any) (validation.Result, error)
	ValidateField(field string, value any, raw map[string]any) (validation.FieldResult, error)
	Evaluate(raw map[string]any) (Evaluation, error)
	Fingerprint(raw map[string]any) (uint64, error)
}

// Evaluation is the result of validating and calculating one input record.
type Evaluation struct {
	Calculator string            `json:"calculator" yaml:"calculator"`
	Validation validation.Result `json:"validation" yaml:"validation"`
	Outputs    any               `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// Module holds the typed functions of a calculator module.
type Module[I, O any] struct {
	Descriptor    Descriptor
	Calculate     func(I) O
	Validate      func(I) validation.Result
	ValidateField func(string, I) validation.FieldResult
}

type binding[I, O any] struct {
	module Module[I, O]
}

// Bind adapts a typed module to the Calculator interface.
func Bind[I, O any](m Module[I, O]) Calculator {
	return &binding[I, O]{module: m}
}

func (b *binding[I, O]) Descriptor() Descriptor {
	return b.module.Descriptor
}

func (b *binding[I, O]) decode(raw map[string]any) (I, error) {
	var in I
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &in,
	})
	if err != nil {
		return in, err
	}
	if err := decoder.Decode(raw); err != nil {
		return in, fmt.Errorf("%w for %s: %w", ErrDecode, b.module.Descriptor.ID, err)
	}
	return in, nil
}

func (b *binding[I, O]) Decode(raw map[string]any) (any, error) {
	return b.decode(raw)
}

func (b *binding[I, O]) Validate(raw map[string]any) (validation.Result, error) {
	in, err := b.decode(raw)
	if err != nil {
		return validation.Result{}, err
	}
	return b.module.Validate(in), nil
}

// ValidateField checks a single field as if value had just been entered into
// raw. Unknown fields are valid; values of the wrong type are reported as a
// field error.
func (b *binding[I, O]) ValidateField(field string, value any, raw map[string]any) (validation.FieldResult, error) {
	if _, ok := b.module.Descriptor.Input(field); !ok {
		return validation.FieldResult{IsValid: true}, nil
	}
	merged := maps.Clone(raw)
	if merged == nil {
		merged = make(map[string]any)
	}
	merged[field] = value
	in, err := b.decode(merged)
	if err != nil {
		return validation.FieldResult{IsValid: false, Error: fmt.Sprintf("Invalid value for %s", field)}, nil
	}
	return b.module.ValidateField(field, in), nil
}

func (b *binding[I, O]) Evaluate(raw map[string]any) (eval Evaluation, err error) {
	eval.Calculator = b.module.Descriptor.ID
	in, err := b.decode(raw)
	if err != nil {
		return eval, err
	}
	eval.Validation = b.module.Validate(in)
	if !eval.Validation.IsValid {
		return eval, ErrInvalidInputs
	}

	defer func() {
		if r := recover(); r != nil {
			eval.Outputs = nil
			err = fmt.Errorf("error calculating %s: %w", b.module.Descriptor.Title, ErrCalculation)
		}
	}()
	eval.Outputs = b.module.Calculate(in)
	return eval, nil
}

// Fingerprint hashes the decoded inputs, so equivalent raw maps (different
// key order, "5" versus 5) share a fingerprint.
func (b *binding[I, O]) Fingerprint(raw map[string]any) (uint64, error) {
	in, err := b.decode(raw)
	if err != nil {
		return 0, err
	}
	data, err := json.Marshal(in)
	if err != nil {
		return 0, fmt.Errorf("%w for %s: %w", ErrDecode, b.module.Descriptor.ID, err)
	}
	return xxhash.Sum64(data), nil
}

// ToRaw converts a typed input record to the raw map form used by the
// Calculator interface.
func ToRaw(in any) (map[string]any, error) {
	raw := make(map[string]any)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &raw,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(in); err != nil {
		return nil, err
	}
	return raw, nil
}

// NewExample builds an Example from a typed input record. It panics if the
// record cannot be converted, which only happens for non-struct values.
func NewExample(name, description string, in any) Example {
	raw, err := ToRaw(in)
	if err != nil {
		panic(fmt.Sprintf("registry: example %q: %v", name, err))
	}
	return Example{Name: name, Description: description, Inputs: raw}
}
