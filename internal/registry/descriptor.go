package registry

// FieldType describes how a field is entered and displayed.
type FieldType string

// Field types.
const (
	FieldNumber     FieldType = "number"
	FieldCurrency   FieldType = "currency"
	FieldPercentage FieldType = "percentage"
	FieldInteger    FieldType = "integer"
	FieldText       FieldType = "text"
	FieldSelect     FieldType = "select"
	FieldDate       FieldType = "date"
	FieldMonth      FieldType = "month"
	FieldList       FieldType = "list"
	FieldBoolean    FieldType = "boolean"
)

// Field is one entry of an input or output schema.
type Field struct {
	Name     string    `json:"name" yaml:"name"`
	Label    string    `json:"label" yaml:"label"`
	Type     FieldType `json:"type" yaml:"type"`
	Unit     string    `json:"unit,omitempty" yaml:"unit,omitempty"`
	Min      *float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *float64  `json:"max,omitempty" yaml:"max,omitempty"`
	Options  []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Required bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Default  any       `json:"default,omitempty" yaml:"default,omitempty"`
	Help     string    `json:"help,omitempty" yaml:"help,omitempty"`
}

// Example is a named input scenario shipped with a calculator.
type Example struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Inputs      map[string]any `json:"inputs" yaml:"inputs"`
}

// Descriptor is the catalog metadata of a calculator.
type Descriptor struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Category    string    `json:"category" yaml:"category"`
	Description string    `json:"description" yaml:"description"`
	Version     string    `json:"version" yaml:"version"`
	Tags        []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Inputs      []Field   `json:"inputs" yaml:"inputs"`
	Outputs     []Field   `json:"outputs" yaml:"outputs"`
	Examples    []Example `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Input returns the input field called name.
func (d Descriptor) Input(name string) (Field, bool) {
	for _, f := range d.Inputs {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Number declares a plain numeric field.
func Number(name, label string) Field {
	return Field{Name: name, Label: label, Type: FieldNumber}
}

// Currency declares a monetary field.
func Currency(name, label string) Field {
	return Field{Name: name, Label: label, Type: FieldCurrency, Unit: "$"}
}

// Percentage declares a field expressed in percent.
func Percentage(name, label string) Field {
	return Field{Name: name, Label: label, Type: FieldPercentage, Unit: "%"}
}

// Integer declares a whole-number field.
func Integer(name, label string) Field {
	return Field{Name: name, Label: label, Type: FieldInteger}
}

// Text declares a free-text field.
func Text(name, label string) Field {
	return Field{Name: name, Label: label, Type: FieldText}
}

// Select declares an enumerated field.
func Select(name, label string, options ...string) Field {
	return Field{Name: name, Label: label, Type: FieldSelect, Options: options}
}

// Date declares a YYYY-MM-DD field.
func Date(name, label string) Field {
	return Field{Name: name, Label: label, Type: FieldDate}
}

// Month declares a YYYY-MM field.
func Month(name, label string) Field {
	return Field{Name: name, Label: label, Type: FieldMonth}
}

// List declares a list-valued field.
func List(name, label string) Field {
	return Field{Name: name, Label: label, Type: FieldList}
}

// Between sets the documented bounds.
func (f Field) Between(min, max float64) Field {
	f.Min, f.Max = &min, &max
	return f
}

// AtLeast sets the documented lower bound.
func (f Field) AtLeast(min float64) Field {
	f.Min = &min
	return f
}

// In sets the display unit.
func (f Field) In(unit string) Field {
	f.Unit = unit
	return f
}

// Require marks the field as required.
func (f Field) Require() Field {
	f.Required = true
	return f
}

// WithDefault records the value used when the field is left empty.
func (f Field) WithDefault(v any) Field {
	f.Default = v
	return f
}

// Describe attaches help text.
func (f Field) Describe(help string) Field {
	f.Help = help
	return f
}
