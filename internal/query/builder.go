package query

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultTenantURL is used when the query data carries no tenant URL.
const DefaultTenantURL = "https://myXX.digitalexperience.ibm.com/api/00000000-0000-0000-0000-00000000fcb"

const searchPath = "/delivery/v1/search?q=*:*&fq=classification:"

// projectAll is the projection that returns every stored field and the
// rendered document.
const projectAll = "*,document:[json]"

var sortSuffixes = map[string]string{
	SortAscending:  " asc",
	SortDescending: " desc",
}

var returnFieldValues = map[string]string{
	"document": "document:[json]",
}

// Builder serializes QueryData into a delivery search URL.
// A Builder is immutable after construction and safe for concurrent use.
type Builder struct {
	catalog    *Catalog
	names      FieldNames
	defaultURL string
	location   *time.Location
	ownZone    bool
	notify     func(link string)
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithCatalog sets the field configuration table.
func WithCatalog(c *Catalog) BuilderOption {
	return func(b *Builder) { b.catalog = c }
}

// WithFieldNames sets the local to API field name translation.
func WithFieldNames(n FieldNames) BuilderOption {
	return func(b *Builder) { b.names = n }
}

// WithDefaultTenantURL sets the base URL used when the query has none.
func WithDefaultTenantURL(url string) BuilderOption {
	return func(b *Builder) { b.defaultURL = url }
}

// WithLocation sets the time zone whose calendar dates anchor
// "Within the dates" ranges.
func WithLocation(loc *time.Location) BuilderOption {
	return func(b *Builder) { b.location = loc }
}

// WithTimestampZone anchors "Within the dates" ranges on the calendar date
// of each timestamp in its own zone, ignoring the builder location. Use it
// when dates arrive with the offset of the user who picked them.
func WithTimestampZone() BuilderOption {
	return func(b *Builder) { b.ownZone = true }
}

// WithNotify registers a callback receiving every successfully built link.
func WithNotify(fn func(link string)) BuilderOption {
	return func(b *Builder) { b.notify = fn }
}

// NewBuilder returns a builder over DefaultCatalog and DefaultFieldNames
// unless overridden by opts.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		catalog:    DefaultCatalog,
		names:      DefaultFieldNames,
		defaultURL: DefaultTenantURL,
		location:   time.Local,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.location == nil {
		b.location = time.Local
	}
	if b.catalog == nil {
		b.catalog = DefaultCatalog
	}
	return b
}

var defaultBuilder = NewBuilder()

// Build serializes q with the default builder.
func Build(q QueryData) (string, error) {
	return defaultBuilder.Build(q)
}

// Build returns the delivery search URL for q. A query without a
// classification yields an empty link. q is never modified.
func (b *Builder) Build(q QueryData) (string, error) {
	if q.Classification == "" {
		return "", nil
	}

	var sb strings.Builder
	if q.TenantURL != "" {
		sb.WriteString(q.TenantURL)
	} else {
		sb.WriteString(b.defaultURL)
	}
	sb.WriteString(searchPath)
	sb.WriteString(strings.ToLower(q.Classification))

	filters, err := b.filters(q.SearchFields)
	if err != nil {
		return "", err
	}
	if filters != "" {
		sb.WriteString("&")
		sb.WriteString(filters)
	}

	if projection := b.projection(q.ReturnFields); projection != "" {
		sb.WriteString("&fl=")
		sb.WriteString(projection)
	}

	if q.RowsNumber != "" {
		sb.WriteString("&rows=")
		sb.WriteString(q.RowsNumber)
	}
	if q.StartRow != "" {
		sb.WriteString("&start=")
		sb.WriteString(q.StartRow)
	}

	if q.SortByField != "" && q.SortByField != SortNone {
		order := q.SortOrder
		if order == "" {
			order = SortAscending
		}
		suffix, ok := sortSuffixes[order]
		if !ok {
			return "", errors.Wrapf(ErrUnknownSortOrder, "sort by %s: %q", q.SortByField, order)
		}
		sb.WriteString("&sort=")
		sb.WriteString(b.names.API(q.SortByField))
		sb.WriteString(suffix)
	}

	link := whitespace.ReplaceAllString(sb.String(), "%20")
	if b.notify != nil {
		b.notify(link)
	}
	return link, nil
}

func (b *Builder) filters(fields []SearchField) (string, error) {
	clauses := make([]string, 0, len(fields))
	for _, entry := range fields {
		cfg := b.catalog.Config(entry.Field)
		if !cfg.included(entry) {
			continue
		}
		expr, err := cfg.print(entry, b)
		if err != nil {
			return "", errors.Wrapf(err, "field %s", entry.Field)
		}
		clauses = append(clauses, "fq="+b.names.API(entry.Field)+expr)
	}
	return strings.Join(clauses, "&"), nil
}

func (b *Builder) projection(fields []string) string {
	for _, f := range fields {
		if f == ReturnAll {
			return projectAll
		}
	}
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		name := b.names.API(f)
		if v, ok := returnFieldValues[name]; ok {
			name = v
		}
		names = append(names, name)
	}
	return strings.Join(names, ",")
}
