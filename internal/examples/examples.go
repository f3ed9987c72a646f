// Package examples provides the predefined example queries.
package examples

import (
	"github.com/pkg/errors"

	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/query"
)

// ErrNotFound is returned by Get for an unknown example name.
var ErrNotFound = errors.New("example not found")

// Example is a named query.
type Example struct {
	Name  string          `json:"name" yaml:"name"`
	Query query.QueryData `json:"query" yaml:"query"`
}

var equalsSingle = query.FieldOption{Condition: query.ConditionEquals, Operator: query.OperatorSingle}

var containsSingle = query.FieldOption{Condition: query.ConditionContains, Operator: query.OperatorSingle}

func content(fields ...query.SearchField) query.QueryData {
	return query.QueryData{Classification: "content", SearchFields: fields, ReturnFields: []string{}}
}

func text(field string, option query.FieldOption, value string) query.SearchField {
	return query.SearchField{Field: field, Option: option, Value: query.FieldValue{Text: value}}
}

func pick(field, value string) query.SearchField {
	return query.SearchField{Field: field, Value: query.FieldValue{Text: value}}
}

func assetLocation(location string) query.QueryData {
	return query.QueryData{
		Classification: "asset",
		SearchFields:   []query.SearchField{pick("location", location)},
		ReturnFields:   []string{},
	}
}

func managedAssetType(assetType string) query.QueryData {
	return query.QueryData{
		Classification: "asset",
		SearchFields: []query.SearchField{
			pick("location", "Managed Assets"),
			pick("assetType", assetType),
		},
		ReturnFields: []string{},
	}
}

func productID(option query.FieldOption, value string) query.QueryData {
	return content(pick("contentType", "Product"), text("string1", option, value))
}

func with(q query.QueryData, fn func(*query.QueryData)) query.QueryData {
	fn(&q)
	return q
}

var all = []Example{
	{"All content types", query.QueryData{Classification: "content-type", SearchFields: []query.SearchField{}, ReturnFields: []string{}}},
	{"All categories", query.QueryData{Classification: "category", SearchFields: []query.SearchField{}, ReturnFields: []string{}}},
	{`All "ready" content`, content(pick("status", "Ready"))},
	{"Content item by ID", content(text("id", equalsSingle, "dummy-content-id"))},
	{"All content items (defaults to 10)", content()},
	{"All content items, 5 rows", with(content(), func(q *query.QueryData) {
		q.RowsNumber = "5"
	})},
	{"All content items, 5 rows starting at row 5", with(content(), func(q *query.QueryData) {
		q.RowsNumber = "5"
		q.StartRow = "5"
	})},
	{"All content items, sorted by name", with(content(), func(q *query.QueryData) {
		q.SortByField = "name"
		q.SortOrder = query.SortAscending
	})},
	{"All content items, sorted by lastModified", with(content(), func(q *query.QueryData) {
		q.SortByField = "lastModified"
		q.SortOrder = query.SortAscending
	})},
	{"All content items, only name, id, and status fields", with(content(), func(q *query.QueryData) {
		q.ReturnFields = []string{"name", "id", "status"}
	})},
	{"All content items, only name and document fields, with document (parsed as JSON)", with(content(), func(q *query.QueryData) {
		q.ReturnFields = []string{"name", "document"}
	})},
	{`Content items search for "city" in the name field`, content(text("name", containsSingle, "city"))},
	{`Content items with "Article" content type`, content(pick("contentType", "Article"))},
	{`Content items with category leaf value "travel"`, content(text("categoryLeaves", equalsSingle, "travel"))},
	{`Content items search for "ian" in text`, content(text("contentText", containsSingle, "ian"))},
	{"All assets", assetLocation("All")},
	{"All managed assets", assetLocation("Managed Assets")},
	{"All web application assets", assetLocation("Web Assets")},
	{"All managed image assets", managedAssetType("Image")},
	{"All managed video assets", managedAssetType("Video")},
	{`Assets with tag "beach" or "summer"`, query.QueryData{
		Classification: "asset",
		SearchFields: []query.SearchField{
			text("tags", query.FieldOption{Condition: query.ConditionEquals, Operator: query.OperatorOr}, "beach, summer"),
		},
		ReturnFields: []string{},
	}},
	{`Content items of type "Product" where the ProductId element (search key 'string1') has value "1234"`,
		productID(equalsSingle, "1234")},
	{`Content items of type "Product" where the ProductId element (search key 'string1') contains the value "12"`,
		productID(containsSingle, "12")},
	{`Content items of type "Event" where the EventDate element (search key 'sortableDate1') is in the future, ordered ascending`,
		with(content(
			pick("contentType", "Event"),
			query.SearchField{Field: "sortableDate1", Option: query.FieldOption{DateRange: query.RangeFuture}},
		), func(q *query.QueryData) {
			q.SortByField = "sortableDate1"
			q.SortOrder = query.SortAscending
		})},
}

// All returns every example in display order. The queries are copies.
func All() []Example {
	out := make([]Example, len(all))
	for i, ex := range all {
		out[i] = Example{Name: ex.Name, Query: ex.Query.Clone()}
	}
	return out
}

// Names returns the example names in display order.
func Names() []string {
	names := make([]string, len(all))
	for i, ex := range all {
		names[i] = ex.Name
	}
	return names
}

// Get returns a copy of the named example's query.
func Get(name string) (query.QueryData, error) {
	for _, ex := range all {
		if ex.Name == name {
			return ex.Query.Clone(), nil
		}
	}
	return query.QueryData{}, errors.Wrapf(ErrNotFound, "%q", name)
}
