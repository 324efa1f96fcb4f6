// Package output renders catalog entries, validation results and
// evaluations as pretty text, JSON, YAML or CSV.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/iwvelando/finance-calculators/internal/registry"
	"github.com/iwvelando/finance-calculators/internal/service"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/format"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"gopkg.in/yaml.v3"
)

// Writer renders values in one output format.
type Writer struct {
	out    io.Writer
	format string
	p      *message.Printer
}

// New creates a Writer for format, which must be one of the supported
// output formats.
func New(out io.Writer, format string) (*Writer, error) {
	if err := validation.ValidateOutputFormat(format); err != nil {
		return nil, err
	}
	return &Writer{out: out, format: format, p: message.NewPrinter(language.English)}, nil
}

// Format returns the output format.
func (w *Writer) Format() string {
	return w.format
}

// structured writes v as JSON or YAML and reports whether it did.
func (w *Writer) structured(v any) (bool, error) {
	switch w.format {
	case constants.OutputFormatJSON:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case constants.OutputFormatYAML:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

func (w *Writer) csv(header []string, rows [][]string) error {
	cw := csv.NewWriter(w.out)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func (w *Writer) printf(format string, args ...any) {
	_, _ = w.p.Fprintf(w.out, format, args...)
}

// Descriptors renders the calculator catalog.
func (w *Writer) Descriptors(descs []registry.Descriptor) error {
	if ok, err := w.structured(descs); ok {
		return err
	}
	if w.format == constants.OutputFormatCSV {
		rows := make([][]string, 0, len(descs))
		for _, d := range descs {
			rows = append(rows, []string{d.ID, d.Category, d.Title, d.Version, d.Description})
		}
		return w.csv([]string{"id", "category", "title", "version", "description"}, rows)
	}

	idWidth, categoryWidth := len("ID"), len("Category")
	for _, d := range descs {
		idWidth = max(idWidth, len(d.ID))
		categoryWidth = max(categoryWidth, len(d.Category))
	}
	w.printf("%-*s | %-*s | %s\n", idWidth, "ID", categoryWidth, "Category", "Title")
	w.printf("%s-|-%s-|-%s\n", strings.Repeat("-", idWidth), strings.Repeat("-", categoryWidth), strings.Repeat("-", 5))
	for _, d := range descs {
		w.printf("%-*s | %-*s | %s\n", idWidth, d.ID, categoryWidth, d.Category, d.Title)
	}
	return nil
}

// Descriptor renders one calculator's schema and examples.
func (w *Writer) Descriptor(d registry.Descriptor) error {
	if ok, err := w.structured(d); ok {
		return err
	}
	if w.format == constants.OutputFormatCSV {
		var rows [][]string
		for _, f := range d.Inputs {
			rows = append(rows, fieldRow("input", f))
		}
		for _, f := range d.Outputs {
			rows = append(rows, fieldRow("output", f))
		}
		return w.csv([]string{"kind", "name", "label", "type", "unit", "required", "min", "max", "options", "default"}, rows)
	}

	w.printf("--- %s (%s, v%s) ---\n", d.Title, d.ID, d.Version)
	w.printf("%s\n\nInputs:\n", d.Description)
	for _, f := range d.Inputs {
		w.printf("  %-28s %s%s\n", f.Name, f.Label, w.fieldDetail(f))
	}
	w.printf("\nOutputs:\n")
	for _, f := range d.Outputs {
		unit := ""
		if f.Unit != "" {
			unit = " (" + f.Unit + ")"
		}
		w.printf("  %-28s %s%s\n", f.Name, f.Label, unit)
	}
	if len(d.Examples) > 0 {
		w.printf("\nExamples:\n")
		for _, ex := range d.Examples {
			w.printf("  %s: %s\n", ex.Name, ex.Description)
		}
	}
	return nil
}

func (w *Writer) fieldDetail(f registry.Field) string {
	var parts []string
	parts = append(parts, string(f.Type))
	if f.Required {
		parts = append(parts, "required")
	}
	switch {
	case f.Min != nil && f.Max != nil:
		parts = append(parts, w.p.Sprintf("%v to %v", number.Decimal(*f.Min), number.Decimal(*f.Max)))
	case f.Min != nil:
		parts = append(parts, w.p.Sprintf("at least %v", number.Decimal(*f.Min)))
	}
	if f.Unit != "" {
		parts = append(parts, f.Unit)
	}
	if len(f.Options) > 0 {
		parts = append(parts, strings.Join(f.Options, "|"))
	}
	if f.Default != nil {
		parts = append(parts, fmt.Sprintf("default %v", f.Default))
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

func fieldRow(kind string, f registry.Field) []string {
	bound := func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
	def := ""
	if f.Default != nil {
		def = fmt.Sprint(f.Default)
	}
	return []string{kind, f.Name, f.Label, string(f.Type), f.Unit, strconv.FormatBool(f.Required), bound(f.Min), bound(f.Max), strings.Join(f.Options, "|"), def}
}

// Validation renders a full validation result.
func (w *Writer) Validation(res validation.Result) error {
	if ok, err := w.structured(res); ok {
		return err
	}
	if w.format == constants.OutputFormatCSV {
		return w.csv([]string{"severity", "field", "message"}, messageRows(res))
	}
	w.printValidation(res)
	return nil
}

// Field renders the quick validation of one field.
func (w *Writer) Field(field string, res validation.FieldResult) error {
	if ok, err := w.structured(res); ok {
		return err
	}
	if w.format == constants.OutputFormatCSV {
		return w.csv([]string{"field", "valid", "error", "warning"},
			[][]string{{field, strconv.FormatBool(res.IsValid), res.Error, res.Warning}})
	}
	status := "valid"
	if !res.IsValid {
		status = "invalid"
	}
	w.printf("%s: %s\n", field, status)
	if res.Error != "" {
		w.printf("  error: %s\n", res.Error)
	}
	if res.Warning != "" {
		w.printf("  warning: %s\n", res.Warning)
	}
	return nil
}

func messageRows(res validation.Result) [][]string {
	var rows [][]string
	for _, field := range slices.Sorted(maps.Keys(res.Errors)) {
		rows = append(rows, []string{"error", field, res.Errors[field]})
	}
	for _, field := range slices.Sorted(maps.Keys(res.Warnings)) {
		rows = append(rows, []string{"warning", field, res.Warnings[field]})
	}
	return rows
}

func (w *Writer) printValidation(res validation.Result) {
	if res.IsValid {
		w.printf("Inputs are valid\n")
	} else {
		w.printf("Inputs are invalid\n")
	}
	for _, row := range messageRows(res) {
		w.printf("  %-7s %s: %s\n", row[0], row[1], row[2])
	}
}

// Result renders one evaluation. d supplies the labels and units of the
// outputs; a zero Descriptor falls back to the raw field names.
func (w *Writer) Result(res service.Result, d registry.Descriptor) error {
	if ok, err := w.structured(res); ok {
		return err
	}
	rows, err := Flatten(res.Outputs)
	if err != nil {
		return err
	}
	if w.format == constants.OutputFormatCSV {
		records := make([][]string, 0, len(rows))
		for _, r := range rows {
			records = append(records, []string{r.Key, r.String()})
		}
		return w.csv([]string{"field", "value"}, records)
	}

	title := d.Title
	if title == "" {
		title = res.Calculator
	}
	suffix := ""
	if res.Cached {
		suffix = ", cached"
	}
	w.printf("--- Results for %s (%s%s) ---\n", title, res.Duration, suffix)
	if !res.Validation.IsValid || len(res.Validation.Warnings) > 0 {
		w.printValidation(res.Validation)
	}
	if res.Error != "" {
		w.printf("Error: %s\n", res.Error)
	}

	labels := make(map[string]registry.Field, len(d.Outputs))
	for _, f := range d.Outputs {
		labels[f.Name] = f
	}
	width := 0
	for _, r := range rows {
		width = max(width, len(w.label(r.Key, labels)))
	}
	for _, r := range rows {
		w.printf("%-*s | %s\n", width, w.label(r.Key, labels), w.value(r, labels[r.Key]))
	}
	return nil
}

// Examples renders the outcome of running shipped examples.
func (w *Writer) Examples(runs []registry.ExampleRun) error {
	if ok, err := w.structured(runs); ok {
		return err
	}
	if w.format == constants.OutputFormatCSV {
		rows := make([][]string, 0, len(runs))
		for _, run := range runs {
			rows = append(rows, []string{run.Calculator, run.Example, strconv.FormatBool(run.Error == ""), run.Error})
		}
		return w.csv([]string{"calculator", "example", "ok", "error"}, rows)
	}
	for _, run := range runs {
		status := "ok"
		if run.Error != "" {
			status = "FAILED: " + run.Error
		}
		w.printf("%s / %s: %s\n", run.Calculator, run.Example, status)
	}
	return nil
}

func (w *Writer) label(key string, labels map[string]registry.Field) string {
	if f, ok := labels[key]; ok && f.Label != "" {
		return f.Label
	}
	return key
}

func (w *Writer) value(r Row, f registry.Field) string {
	n, ok := r.Value.(json.Number)
	if !ok {
		return r.String()
	}
	v, err := n.Float64()
	if err != nil {
		return n.String()
	}
	if f.Unit == "$" {
		return format.Currency(v)
	}
	switch f.Unit {
	case "%":
		return format.Percent(v)
	case "x":
		return format.Ratio(v, 2) + "x"
	}
	formatted := w.p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(constants.RatioPlaces)))
	switch f.Unit {
	case "":
		return formatted
	default:
		return formatted + " " + f.Unit
	}
}

// Row is one leaf of a flattened value. Keys use dots for nested objects
// and [i] for list elements; values are json.Number, string, bool or nil.
type Row struct {
	Key   string
	Value any
}

// String formats the value without locale grouping.
func (r Row) String() string {
	switch v := r.Value.(type) {
	case nil:
		return ""
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Flatten walks the JSON form of v in field order.
func Flatten(v any) ([]Row, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode outputs: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rows []Row
	if err := flatten(dec, "", &rows); err != nil {
		return nil, fmt.Errorf("failed to flatten outputs: %w", err)
	}
	return rows, nil
}

func flatten(dec *json.Decoder, prefix string, rows *[]Row) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		*rows = append(*rows, Row{Key: prefix, Value: tok})
		return nil
	}

	switch delim {
	case '{':
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := keyTok.(string)
			if prefix != "" {
				key = prefix + "." + key
			}
			if err := flatten(dec, key, rows); err != nil {
				return err
			}
		}
	case '[':
		for i := 0; dec.More(); i++ {
			if err := flatten(dec, fmt.Sprintf("%s[%d]", prefix, i), rows); err != nil {
				return err
			}
		}
	}
	// closing delimiter
	_, err = dec.Token()
	return err
}
