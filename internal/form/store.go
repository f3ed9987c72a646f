// Package form holds the mutable state of a query being edited and the
// update operations applied to it.
package form

import (
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/query"
)

// Row limits accepted by the delivery search API
const (
	MinRows = 1
	MaxRows = 1000
)

// maxSafeInteger is the largest start row that survives a round trip
// through a JSON number.
const maxSafeInteger = 1<<53 - 1

var (
	ErrUnknownClassification = errors.New("unknown classification")
	ErrFieldNotFound         = errors.New("field is not part of the search")
	ErrFieldExists           = errors.New("field is already part of the search")
	ErrEmptyField            = errors.New("field name is empty")
	ErrInvalidRows           = errors.New("an integer between 1 and 1000 is only allowed")
	ErrInvalidStartRow       = errors.New("an integer greater than or equal 0 is only allowed")
)

// alwaysReturnable are return fields kept regardless of the available fields.
var alwaysReturnable = []string{query.ReturnAll, "document"}

// Store is the explicit form state. It is safe for concurrent use and is
// shared by reference between the surfaces editing the same query.
type Store struct {
	mu      sync.RWMutex
	catalog *query.Catalog
	builder *query.Builder
	data    query.QueryData
	manual  []string
	link    string
	// seq numbers the snapshots taken by Link; linkSeq is the one of link
	seq     uint64
	linkSeq uint64
}

// Option configures a Store.
type Option func(*Store)

// WithCatalog replaces the field catalog used for availability and building.
func WithCatalog(c *query.Catalog) Option {
	return func(s *Store) { s.catalog = c }
}

// WithBuilder replaces the link builder.
func WithBuilder(b *query.Builder) Option {
	return func(s *Store) { s.builder = b }
}

// New returns a store in its initial state: the first classification, no
// search fields and every field returned.
func New(opts ...Option) *Store {
	s := &Store{catalog: query.DefaultCatalog}
	for _, opt := range opts {
		opt(s)
	}
	if s.builder == nil {
		s.builder = query.NewBuilder(query.WithCatalog(s.catalog))
	}
	s.data = query.QueryData{
		Classification: query.Classifications[0],
		SearchFields:   []query.SearchField{},
		ReturnFields:   []string{query.ReturnAll},
	}
	return s
}

// Snapshot returns a deep copy of the current query data.
func (s *Store) Snapshot() query.QueryData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// SetTenantURL sets the base URL of the tenant.
func (s *Store) SetTenantURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.TenantURL = strings.TrimSpace(url)
}

// SetClassification switches the classification and drops the search and
// return fields that do not apply to it. The sort field is kept.
func (s *Store) SetClassification(classification string) error {
	if !query.IsClassification(classification) {
		return errors.Wrapf(ErrUnknownClassification, "%q", classification)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]query.SearchField, 0, len(s.data.SearchFields))
	for _, sf := range s.data.SearchFields {
		if s.catalog.Config(sf.Field).VisibleIn(classification) {
			kept = append(kept, sf)
		}
	}
	s.data.Classification = classification
	s.data.SearchFields = kept
	s.data.ReturnFields = s.catalog.Visible(classification, s.data.ReturnFields)
	return nil
}

// AvailableFields returns the catalog fields of the current classification
// followed by the manually added fields.
func (s *Store) AvailableFields() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.availableFields()
}

func (s *Store) availableFields() []string {
	return append(s.catalog.FieldsFor(s.data.Classification), s.manual...)
}

// AvailableSearchFields returns the available fields not yet in the search.
func (s *Store) AvailableSearchFields() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var fields []string
	for _, f := range s.availableFields() {
		if _, i := s.data.SearchField(f); i < 0 {
			fields = append(fields, f)
		}
	}
	return fields
}

// SortableFields returns the available fields the search can be sorted by.
func (s *Store) SortableFields() []string {
	return query.Sortable(s.AvailableFields())
}

// IncludeSearchField adds an empty entry for field to the search. A
// dropdown with static options starts on its first option.
func (s *Store) IncludeSearchField(field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.includeSearchField(field)
}

func (s *Store) includeSearchField(field string) error {
	if _, i := s.data.SearchField(field); i >= 0 {
		return errors.Wrapf(ErrFieldExists, "%s", field)
	}
	entry := query.SearchField{Field: field}
	if dd, ok := s.catalog.Config(field).(query.DropdownField); ok && len(dd.Options) > 0 {
		entry.Value.Text = dd.Options[0]
	}
	s.data.SearchFields = append(s.data.SearchFields, entry)
	return nil
}

// ExcludeSearchField removes field from the search and from the manual
// fields. Return fields that are no longer available are dropped too.
func (s *Store) ExcludeSearchField(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.SearchFields = slices.DeleteFunc(s.data.SearchFields, func(sf query.SearchField) bool {
		return sf.Field == field
	})
	s.manual = slices.DeleteFunc(s.manual, func(f string) bool { return f == field })

	available := s.availableFields()
	s.data.ReturnFields = slices.DeleteFunc(s.data.ReturnFields, func(f string) bool {
		return !slices.Contains(alwaysReturnable, f) && !slices.Contains(available, f)
	})
}

// AddManualField registers a field name missing from the catalog and adds
// it to the search. Adding a known manual field again is a no-op.
func (s *Store) AddManualField(field string) error {
	field = strings.TrimSpace(field)
	if field == "" {
		return ErrEmptyField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.manual, field) {
		return nil
	}
	s.manual = append(s.manual, field)
	if _, i := s.data.SearchField(field); i >= 0 {
		return nil
	}
	return s.includeSearchField(field)
}

// SetOption replaces the control options of a search field.
func (s *Store) SetOption(field string, option query.FieldOption) error {
	return s.update(field, func(sf *query.SearchField) { sf.Option = option })
}

// SetValue replaces the value of a search field.
func (s *Store) SetValue(field string, value query.FieldValue) error {
	return s.update(field, func(sf *query.SearchField) { sf.Value = value })
}

func (s *Store) update(field string, fn func(*query.SearchField)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, i := s.data.SearchField(field)
	if i < 0 {
		return errors.Wrapf(ErrFieldNotFound, "%s", field)
	}
	fn(&s.data.SearchFields[i])
	return nil
}

// ToggleReturnField flips the presence of field in the return fields.
// "All" switches between every field and none; any other field replaces
// "All" when added.
func (s *Store) ToggleReturnField(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.data.ReturnFields
	switch {
	case field == query.ReturnAll && slices.Contains(current, query.ReturnAll):
		s.data.ReturnFields = []string{}
	case field == query.ReturnAll:
		s.data.ReturnFields = []string{query.ReturnAll}
	case slices.Contains(current, field):
		s.data.ReturnFields = without(current, field)
	default:
		s.data.ReturnFields = append(without(current, query.ReturnAll), field)
	}
}

// ExcludeReturnField removes field from the return fields.
func (s *Store) ExcludeReturnField(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.ReturnFields = without(s.data.ReturnFields, field)
}

// ClearReturnFields empties the return fields.
func (s *Store) ClearReturnFields() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.ReturnFields = []string{}
}

// SetRows sets the number of rows to return. The value is kept even when
// ValidateRows rejects it.
func (s *Store) SetRows(rows string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.RowsNumber = rows
}

// SetStartRow sets the row offset.
func (s *Store) SetStartRow(start string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.StartRow = start
}

// SetSort sets the sort field and order. An empty order means ascending.
func (s *Store) SetSort(field, order string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.SortByField = field
	s.data.SortOrder = order
}

// LoadExample replaces the query with a copy of example. The tenant URL is
// kept unless the example carries its own.
func (s *Store) LoadExample(example query.QueryData) {
	s.Replace(example)
}

// Replace swaps the whole query for a copy of q, keeping the tenant URL
// when q has none.
func (s *Store) Replace(q query.QueryData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := q.Clone()
	if data.TenantURL == "" {
		data.TenantURL = s.data.TenantURL
	}
	s.data = data
}

// Link builds the link of the current query and remembers it. A failed
// build leaves the remembered link untouched, and a build finishing after
// one of newer data never replaces it.
func (s *Store) Link() (string, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	snapshot := s.data.Clone()
	s.mu.Unlock()

	link, err := s.builder.Build(snapshot)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.linkSeq {
		s.link = link
		s.linkSeq = seq
	}
	return link, nil
}

// LastLink returns the last successfully built link.
func (s *Store) LastLink() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.link
}

// ValidateRows checks a rows value; empty means the API default.
func ValidateRows(rows string) error {
	if rows == "" || isIntegerIn(rows, MinRows, MaxRows) {
		return nil
	}
	return errors.Wrapf(ErrInvalidRows, "rows %q", rows)
}

// ValidateStartRow checks a start row value; empty means the first row.
func ValidateStartRow(start string) error {
	if start == "" || isIntegerIn(start, 0, maxSafeInteger) {
		return nil
	}
	return errors.Wrapf(ErrInvalidStartRow, "start %q", start)
}

func isIntegerIn(s string, min, max float64) bool {
	f, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f == math.Trunc(f) && f >= min && f <= max
}

func without(fields []string, field string) []string {
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != field {
			kept = append(kept, f)
		}
	}
	return kept
}
