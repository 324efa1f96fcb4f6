package registry

import "errors"

var (
	// ErrNotFound is returned when no calculator has the requested id.
	ErrNotFound = errors.New("calculator not found")

	// ErrDuplicate is returned when registering an id twice.
	ErrDuplicate = errors.New("calculator already registered")

	// ErrDecode is returned when raw inputs cannot be decoded into the
	// calculator's input record, e.g. text in a numeric field.
	ErrDecode = errors.New("cannot decode inputs")

	// ErrInvalidInputs is returned by Evaluate when validation reports errors.
	ErrInvalidInputs = errors.New("invalid inputs")

	// ErrCalculation is returned when a formula fails at run time.
	ErrCalculation = errors.New("calculation failed")
)
