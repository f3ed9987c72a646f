package query

import "slices"

// ControlType identifies the form control a field is edited with.
type ControlType int

const (
	TextInput ControlType = iota
	DatePicker
	Dropdown
)

// String returns the control type name used in JSON payloads and tables.
func (c ControlType) String() string {
	switch c {
	case TextInput:
		return "textInput"
	case DatePicker:
		return "datePicker"
	case Dropdown:
		return "dropdown"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (c ControlType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Text conditions
const (
	ConditionContains = "Contains"
	ConditionEquals   = "Equals"
)

// Text operators
const (
	OperatorAnd    = "Multiple value (and)"
	OperatorOr     = "Multiple value (or)"
	OperatorSingle = "Single value"
)

// Date ranges
const (
	RangeFuture = "In the future"
	RangePast   = "In the past"
	RangeWithin = "Within the dates"
)

var (
	textConditions = []string{ConditionContains, ConditionEquals}
	textOperators  = []string{OperatorAnd, OperatorOr, OperatorSingle}
	dateRanges     = []string{RangeFuture, RangePast, RangeWithin}
)

// FieldConfig describes how a search field is edited and serialized.
// It is implemented by TextField, DateField and DropdownField only.
type FieldConfig interface {
	// ControlType returns the variant tag
	ControlType() ControlType
	// VisibleIn reports whether the field applies to the classification
	VisibleIn(classification string) bool

	// included reports whether the entry contributes a filter clause
	included(entry SearchField) bool
	// print renders the value expression that follows the field name
	print(entry SearchField, b *Builder) (string, error)
}

// visibility is the optional set of classifications a field applies to.
// A nil set means every classification.
type visibility []string

func (v visibility) VisibleIn(classification string) bool {
	return v == nil || slices.Contains(v, classification)
}

// TextField is a free text field with a condition and an operator.
type TextField struct {
	Conditions []string
	Operators  []string
	Visible    []string
}

// NewTextField returns a text field with the standard conditions and
// operators, restricted to the given classifications (none means all).
func NewTextField(visibleIn ...string) TextField {
	return TextField{
		Conditions: textConditions,
		Operators:  textOperators,
		Visible:    nilIfEmpty(visibleIn),
	}
}

func (f TextField) ControlType() ControlType { return TextInput }

func (f TextField) VisibleIn(classification string) bool {
	return visibility(f.Visible).VisibleIn(classification)
}

// DateField is a date field with a fixed set of date range labels.
type DateField struct {
	Ranges  []string
	Visible []string
}

// NewDateField returns a date field with the standard date ranges.
func NewDateField(visibleIn ...string) DateField {
	return DateField{
		Ranges:  dateRanges,
		Visible: nilIfEmpty(visibleIn),
	}
}

func (f DateField) ControlType() ControlType { return DatePicker }

func (f DateField) VisibleIn(classification string) bool {
	return visibility(f.Visible).VisibleIn(classification)
}

// Option is a selectable dropdown value.
// For static options ID and Name are the same string.
type Option struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Document is one record of a delivery search response.
type Document map[string]any

// RemoteSource fetches dropdown options from the delivery API.
type RemoteSource struct {
	// RequestPath is relative to <tenant>/delivery/v1/
	RequestPath string
	// Transform maps the response documents to options
	Transform func(docs []Document) []Option
}

// DropdownField is a field whose value is picked from a list.
// Options is nil when the values are fetched from the delivery API.
type DropdownField struct {
	Options []string
	Visible []string
	Remote  *RemoteSource
}

func (f DropdownField) ControlType() ControlType { return Dropdown }

func (f DropdownField) VisibleIn(classification string) bool {
	return visibility(f.Visible).VisibleIn(classification)
}

// StaticOptions reports whether the options are known without a request.
func (f DropdownField) StaticOptions() bool {
	return f.Options != nil
}

// DefaultTextField is the configuration of any field name that has no
// explicit catalog entry.
var DefaultTextField = NewTextField()

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
