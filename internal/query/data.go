package query

import (
	"slices"
	"time"
)

// Sort orders
const (
	SortAscending  = "Ascending"
	SortDescending = "Descending"
	// SortNone is the sort field sentinel meaning "do not sort"
	SortNone = "None"
)

// ReturnAll is the return field meaning "return every stored field".
const ReturnAll = "All"

// FieldOption holds the per-entry choices of the field's control.
type FieldOption struct {
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
	Operator  string `json:"operator,omitempty" yaml:"operator,omitempty"`
	DateRange string `json:"dateRange,omitempty" yaml:"dateRange,omitempty"`
}

// FieldValue holds the entered value: Text for text and dropdown fields,
// StartDate and EndDate for date fields.
type FieldValue struct {
	Text      string     `json:"text,omitempty" yaml:"text,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty" yaml:"endDate,omitempty"`
}

// SearchField is one filter added to the query.
type SearchField struct {
	Field  string      `json:"field" yaml:"field"`
	Option FieldOption `json:"option" yaml:"option"`
	Value  FieldValue  `json:"value" yaml:"value"`
}

// QueryData is the complete input of the link builder.
type QueryData struct {
	TenantURL      string        `json:"tenantUrl,omitempty" yaml:"tenantUrl,omitempty"`
	Classification string        `json:"classification,omitempty" yaml:"classification,omitempty"`
	SearchFields   []SearchField `json:"searchFields,omitempty" yaml:"searchFields,omitempty"`
	ReturnFields   []string      `json:"returnFields,omitempty" yaml:"returnFields,omitempty"`
	RowsNumber     string        `json:"rowsNumber,omitempty" yaml:"rowsNumber,omitempty"`
	StartRow       string        `json:"startRow,omitempty" yaml:"startRow,omitempty"`
	SortByField    string        `json:"sortByField,omitempty" yaml:"sortByField,omitempty"`
	SortOrder      string        `json:"sortOrder,omitempty" yaml:"sortOrder,omitempty"`
}

// Clone returns a deep copy of the query data.
func (q QueryData) Clone() QueryData {
	c := q
	c.ReturnFields = slices.Clone(q.ReturnFields)
	if q.SearchFields != nil {
		c.SearchFields = make([]SearchField, len(q.SearchFields))
		for i, sf := range q.SearchFields {
			c.SearchFields[i] = sf.clone()
		}
	}
	return c
}

// SearchField returns the entry for field and its index, or -1.
func (q QueryData) SearchField(field string) (SearchField, int) {
	for i, sf := range q.SearchFields {
		if sf.Field == field {
			return sf, i
		}
	}
	return SearchField{}, -1
}

func (sf SearchField) clone() SearchField {
	c := sf
	if sf.Value.StartDate != nil {
		t := *sf.Value.StartDate
		c.Value.StartDate = &t
	}
	if sf.Value.EndDate != nil {
		t := *sf.Value.EndDate
		c.Value.EndDate = &t
	}
	return c
}
