package query

import (
	"slices"

	"github.com/spf13/cast"
)

// Classifications lists the document classifications in display order.
var Classifications = []string{
	"content",
	"asset",
	"content-type",
	"image-profile",
	"category",
	"taxonomy",
	"layout",
	"layout-mapping",
	"page",
}

// ExcludedSorters lists the fields the delivery API cannot sort by.
var ExcludedSorters = []string{
	"string",
	"kind",
	"contentText",
	"categoryLeaves",
	"categories",
	"tags",
}

// Catalog is an ordered, read-only table of field configurations.
type Catalog struct {
	names   []string
	entries map[string]FieldConfig
}

// CatalogEntry pairs a field name with its configuration.
type CatalogEntry struct {
	Name   string
	Config FieldConfig
}

// NewCatalog builds a catalog preserving the order of entries.
// A later entry with the same name replaces the earlier one.
func NewCatalog(entries ...CatalogEntry) *Catalog {
	c := &Catalog{entries: make(map[string]FieldConfig, len(entries))}
	for _, e := range entries {
		if _, ok := c.entries[e.Name]; !ok {
			c.names = append(c.names, e.Name)
		}
		c.entries[e.Name] = e.Config
	}
	return c
}

// Lookup returns the configuration for the field. Unknown fields resolve
// to DefaultTextField; the boolean reports whether an entry exists.
func (c *Catalog) Lookup(field string) (FieldConfig, bool) {
	if cfg, ok := c.entries[field]; ok {
		return cfg, true
	}
	return DefaultTextField, false
}

// Config is Lookup without the presence flag.
func (c *Catalog) Config(field string) FieldConfig {
	cfg, _ := c.Lookup(field)
	return cfg
}

// Names returns every configured field name in catalog order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.names)
}

// FieldsFor returns the configured fields that apply to the classification.
func (c *Catalog) FieldsFor(classification string) []string {
	var fields []string
	for _, name := range c.names {
		if c.entries[name].VisibleIn(classification) {
			fields = append(fields, name)
		}
	}
	return fields
}

// Visible filters names down to the ones applying to the classification.
// Names without an entry use the default configuration and always apply.
func (c *Catalog) Visible(classification string, names []string) []string {
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if c.Config(name).VisibleIn(classification) {
			kept = append(kept, name)
		}
	}
	return kept
}

// Sortable filters out the fields listed in ExcludedSorters.
func Sortable(fields []string) []string {
	var sortable []string
	for _, f := range fields {
		if !slices.Contains(ExcludedSorters, f) {
			sortable = append(sortable, f)
		}
	}
	return sortable
}

// IsClassification reports whether name is a known classification.
func IsClassification(name string) bool {
	return slices.Contains(Classifications, name)
}

// libraryOptions prepends the implicit default library to the libraries
// returned by the delivery API.
func libraryOptions(docs []Document) []Option {
	options := []Option{{ID: "default", Name: "Default"}}
	for _, doc := range docs {
		options = append(options, Option{
			ID:   cast.ToString(doc["id"]),
			Name: cast.ToString(doc["name"]),
		})
	}
	return options
}

// DefaultCatalog is the field table of the delivery search API.
var DefaultCatalog = NewCatalog(
	CatalogEntry{"id", NewTextField()},
	CatalogEntry{"name", NewTextField()},
	CatalogEntry{"categories", NewTextField("content", "asset", "content-type")},
	CatalogEntry{"tags", NewTextField("content", "asset", "content-type", "image-profile")},
	CatalogEntry{"status", DropdownField{
		Options: []string{"Ready", "Retired"},
		Visible: []string{"content", "asset"},
	}},
	CatalogEntry{"categoryLeaves", NewTextField("content", "asset", "content-type")},
	CatalogEntry{"libraryId", DropdownField{
		Visible: []string{"content", "asset"},
		Remote: &RemoteSource{
			RequestPath: "search?q=classification:library&rows=1000&fl=id,name",
			Transform:   libraryOptions,
		},
	}},
	CatalogEntry{"lastModified", NewDateField()},
	CatalogEntry{"lastModifierId", NewTextField()},
	CatalogEntry{"contentType", DropdownField{Visible: []string{"content"}}},
	CatalogEntry{"contentText", NewTextField("content")},
	CatalogEntry{"locale", NewTextField("content")},
	CatalogEntry{"mediaType", NewTextField("asset")},
	CatalogEntry{"kind", NewTextField("content")},
	CatalogEntry{"created", NewDateField()},
	CatalogEntry{"creatorId", NewTextField()},
	CatalogEntry{"path", NewTextField("asset")},
	CatalogEntry{"location", DropdownField{
		Options: []string{"All", "Web Assets", "Managed Assets"},
		Visible: []string{"asset"},
	}},
	CatalogEntry{"assetType", DropdownField{
		Options: []string{"File", "Image", "Video"},
		Visible: []string{"asset"},
	}},
	CatalogEntry{"sortableDate1", NewDateField("content")},
	CatalogEntry{"sortableDate2", NewDateField("content")},
	CatalogEntry{"sortableDate3", NewDateField("content")},
	CatalogEntry{"sortableDate4", NewDateField("content")},
)

// FieldNames maps local field identifiers to delivery API identifiers.
type FieldNames map[string]string

// DefaultFieldNames holds the identifiers the delivery API spells
// differently.
var DefaultFieldNames = FieldNames{
	"contentText": "text",
	"contentType": "type",
}

// API returns the delivery API identifier for a local field name.
func (n FieldNames) API(field string) string {
	if name, ok := n[field]; ok {
		return name
	}
	return field
}
