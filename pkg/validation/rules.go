// Package validation provides declarative input validation for calculators
// and common validation utilities.
//
// A calculator describes its checks as a Table of rules, each bound to one
// field. Validate runs the whole table; ValidateField runs only the rules of a
// single field against the full record, which is what per-keystroke checks
// need.
package validation

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Result is the outcome of validating a full input record.
type Result struct {
	IsValid  bool              `json:"isValid" yaml:"isValid"`
	Errors   map[string]string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings map[string]string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// FieldResult is the outcome of validating a single field.
type FieldResult struct {
	IsValid bool   `json:"isValid" yaml:"isValid"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
	Warning string `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// Severity distinguishes blocking errors from informational warnings.
type Severity int

const (
	// SeverityError blocks calculation.
	SeverityError Severity = iota
	// SeverityWarning is reported but calculation proceeds.
	SeverityWarning
)

// Rule is a single check bound to a field.
type Rule[T any] struct {
	Field    string
	Severity Severity
	Message  string
	Fails    func(in T) bool
	When     func(in T) bool
}

// If restricts the rule to records for which cond holds.
func (r Rule[T]) If(cond func(in T) bool) Rule[T] {
	r.When = cond
	return r
}

// AsWarning downgrades the rule to a warning.
func (r Rule[T]) AsWarning() Rule[T] {
	r.Severity = SeverityWarning
	return r
}

func (r Rule[T]) applies(in T) bool {
	return r.When == nil || r.When(in)
}

// Table is an ordered set of rules. Order matters only for which message is
// reported when several rules of one field fail: the first one wins.
type Table[T any] []Rule[T]

// Validate runs every rule against in.
func (t Table[T]) Validate(in T) Result {
	result := Result{
		Errors:   make(map[string]string),
		Warnings: make(map[string]string),
	}
	for _, rule := range t {
		if !rule.applies(in) || !rule.Fails(in) {
			continue
		}
		target := result.Errors
		if rule.Severity == SeverityWarning {
			target = result.Warnings
		}
		if _, exists := target[rule.Field]; !exists {
			target[rule.Field] = rule.Message
		}
	}
	result.IsValid = len(result.Errors) == 0
	return result
}

// ValidateField runs only the rules for field. Unknown fields are valid.
func (t Table[T]) ValidateField(field string, in T) FieldResult {
	result := FieldResult{IsValid: true}
	for _, rule := range t {
		if rule.Field != field || !rule.applies(in) || !rule.Fails(in) {
			continue
		}
		switch rule.Severity {
		case SeverityError:
			if result.Error == "" {
				result.Error = rule.Message
				result.IsValid = false
			}
		case SeverityWarning:
			if result.Warning == "" {
				result.Warning = rule.Message
			}
		}
	}
	return result
}

// Fields returns the distinct field names covered by the table.
func (t Table[T]) Fields() []string {
	var fields []string
	for _, rule := range t {
		if !slices.Contains(fields, rule.Field) {
			fields = append(fields, rule.Field)
		}
	}
	return fields
}

// Check builds an error rule from a predicate that reports failure.
func Check[T any](field string, fails func(in T) bool, message string) Rule[T] {
	return Rule[T]{Field: field, Severity: SeverityError, Message: message, Fails: fails}
}

// Warn builds a warning rule from a predicate that reports failure.
func Warn[T any](field string, fails func(in T) bool, message string) Rule[T] {
	return Rule[T]{Field: field, Severity: SeverityWarning, Message: message, Fails: fails}
}

// NonFinite reports whether v is NaN or an infinity.
func NonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// Range requires min <= value <= max.
func Range[T any](field string, get func(in T) float64, min, max float64, message string) Rule[T] {
	return Check(field, func(in T) bool {
		v := get(in)
		return NonFinite(v) || v < min || v > max
	}, message)
}

// Positive requires value > 0.
func Positive[T any](field string, get func(in T) float64, message string) Rule[T] {
	return Check(field, func(in T) bool {
		v := get(in)
		return NonFinite(v) || v <= 0
	}, message)
}

// NonNegative requires value >= 0.
func NonNegative[T any](field string, get func(in T) float64, message string) Rule[T] {
	return Check(field, func(in T) bool {
		v := get(in)
		return NonFinite(v) || v < 0
	}, message)
}

// Above warns when value > limit.
func Above[T any](field string, get func(in T) float64, limit float64, message string) Rule[T] {
	return Warn(field, func(in T) bool { return get(in) > limit }, message)
}

// OneOf requires the value to be one of allowed (case-insensitive).
func OneOf[T any](field string, get func(in T) string, allowed []string, message string) Rule[T] {
	if message == "" {
		message = fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", "))
	}
	return Check(field, func(in T) bool {
		v := strings.ToLower(strings.TrimSpace(get(in)))
		for _, candidate := range allowed {
			if v == strings.ToLower(candidate) {
				return false
			}
		}
		return true
	}, message)
}

// Date requires the value to parse with layout. Empty values pass when
// optional is true.
func Date[T any](field string, get func(in T) string, layout string, optional bool, message string) Rule[T] {
	return Check(field, func(in T) bool {
		v := strings.TrimSpace(get(in))
		if v == "" {
			return !optional
		}
		_, err := time.Parse(layout, v)
		return err != nil
	}, message)
}
