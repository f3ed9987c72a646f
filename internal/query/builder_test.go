package query_test

import (
	"strings"
	"testing"
	"time"

	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = query.DefaultTenantURL + "/delivery/v1/search?q=*:*&fq=classification:"

func textField(field, condition, operator, text string) query.SearchField {
	return query.SearchField{
		Field:  field,
		Option: query.FieldOption{Condition: condition, Operator: operator},
		Value:  query.FieldValue{Text: text},
	}
}

func dateField(field, dateRange string, start, end *time.Time) query.SearchField {
	return query.SearchField{
		Field:  field,
		Option: query.FieldOption{DateRange: dateRange},
		Value:  query.FieldValue{StartDate: start, EndDate: end},
	}
}

func dropdown(field, text string) query.SearchField {
	return query.SearchField{Field: field, Value: query.FieldValue{Text: text}}
}

func mustBuild(t *testing.T, q query.QueryData, opts ...query.BuilderOption) string {
	t.Helper()
	link, err := query.NewBuilder(opts...).Build(q)
	require.NoError(t, err)
	return link
}

func TestBuildEmptyQuery(t *testing.T) {
	link, err := query.Build(query.QueryData{})
	assert.NoError(t, err)
	assert.Empty(t, link)
}

func TestBuildClassificationOnly(t *testing.T) {
	for _, c := range query.Classifications {
		link := mustBuild(t, query.QueryData{Classification: c})
		assert.Equal(t, base+c, link)
		assert.NotContains(t, link, "&fq=")
		assert.NotContains(t, link, "&fl=")
	}
}

func TestBuildLowerCasesClassification(t *testing.T) {
	link := mustBuild(t, query.QueryData{Classification: "Content-Type"})
	assert.Equal(t, base+"content-type", link)
}

func TestBuildTenantURL(t *testing.T) {
	link := mustBuild(t, query.QueryData{
		TenantURL:      "https://my12.example.com/api/abc",
		Classification: "content",
	})
	assert.Equal(t, "https://my12.example.com/api/abc/delivery/v1/search?q=*:*&fq=classification:content", link)

	link = mustBuild(t, query.QueryData{Classification: "asset"},
		query.WithDefaultTenantURL("http://localhost:9000"))
	assert.True(t, strings.HasPrefix(link, "http://localhost:9000/delivery/v1/search"))
}

func TestBuildTextField(t *testing.T) {
	tests := []struct {
		name  string
		entry query.SearchField
		want  string
	}{
		{
			name:  "equals single value",
			entry: textField("name", query.ConditionEquals, query.OperatorSingle, "city"),
			want:  "&fq=name:city",
		},
		{
			name:  "contains single value",
			entry: textField("name", query.ConditionContains, query.OperatorSingle, "city"),
			want:  "&fq=name:*city*",
		},
		{
			name:  "defaults to equals single value",
			entry: textField("name", "", "", "  city "),
			want:  "&fq=name:city",
		},
		{
			name:  "multiple values or",
			entry: textField("tags", query.ConditionEquals, query.OperatorOr, "beach, summer"),
			want:  "&fq=tags:(beach%20OR%20summer)",
		},
		{
			name:  "multiple values and contains",
			entry: textField("tags", query.ConditionContains, query.OperatorAnd, "sun,sea"),
			want:  "&fq=tags:(*sun*%20AND%20*sea*)",
		},
		{
			name:  "first inner whitespace run escaped",
			entry: textField("name", query.ConditionEquals, query.OperatorSingle, " new   york  city "),
			want:  `&fq=name:new\%20york%20%20city`,
		},
		{
			name:  "tabs count as whitespace",
			entry: textField("name", query.ConditionEquals, query.OperatorSingle, "a\tb"),
			want:  `&fq=name:a\%20b`,
		},
		{
			name:  "no-break space counts as whitespace",
			entry: textField("name", query.ConditionEquals, query.OperatorSingle, "\u00a0a\u00a0b"),
			want:  `&fq=name:a\%20b`,
		},
		{
			name:  "next line is not whitespace",
			entry: textField("name", query.ConditionEquals, query.OperatorSingle, "a\u0085b\u0085"),
			want:  "&fq=name:a\u0085b\u0085",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := mustBuild(t, query.QueryData{
				Classification: "content",
				SearchFields:   []query.SearchField{tt.entry},
			})
			assert.Equal(t, base+"content"+tt.want, link)
		})
	}
}

func TestBuildSkipsEmptyText(t *testing.T) {
	link := mustBuild(t, query.QueryData{
		Classification: "content",
		SearchFields: []query.SearchField{
			textField("name", query.ConditionEquals, query.OperatorSingle, ""),
			textField("id", query.ConditionEquals, query.OperatorSingle, "42"),
		},
	})
	assert.Equal(t, base+"content&fq=id:42", link)
}

func TestBuildUnknownFieldIsText(t *testing.T) {
	link := mustBuild(t, query.QueryData{
		Classification: "content",
		SearchFields: []query.SearchField{
			textField("string1", query.ConditionContains, query.OperatorSingle, "12"),
		},
	})
	assert.Contains(t, link, "&fq=string1:*12*")
}

func TestBuildDateField(t *testing.T) {
	start := time.Date(2021, 1, 1, 15, 30, 0, 0, time.UTC)
	end := time.Date(2021, 1, 31, 8, 0, 0, 0, time.UTC)

	link := mustBuild(t, query.QueryData{
		Classification: "content",
		SearchFields:   []query.SearchField{dateField("created", query.RangeFuture, nil, nil)},
	})
	assert.Contains(t, link, "&fq=created:[NOW%20TO%20*]")

	link = mustBuild(t, query.QueryData{
		Classification: "content",
		SearchFields:   []query.SearchField{dateField("lastModified", query.RangePast, nil, nil)},
	})
	assert.Contains(t, link, "&fq=lastModified:[*%20TO%20NOW]")

	link = mustBuild(t, query.QueryData{
		Classification: "content",
		SearchFields:   []query.SearchField{dateField("created", query.RangeWithin, &start, &end)},
	}, query.WithLocation(time.UTC))
	assert.Contains(t, link, "&fq=created:[2021-01-01T00:00:00.000Z%20TO%202021-01-31T23:59:59.999Z]")
}

func TestBuildDateUsesCalendarDateOfLocation(t *testing.T) {
	// 20:00 UTC is already the next day ten hours east
	start := time.Date(2021, 1, 1, 20, 0, 0, 0, time.UTC)
	end := time.Date(2021, 1, 1, 20, 0, 0, 0, time.UTC)

	link := mustBuild(t, query.QueryData{
		Classification: "content",
		SearchFields:   []query.SearchField{dateField("created", query.RangeWithin, &start, &end)},
	}, query.WithLocation(time.FixedZone("UTC+10", 10*60*60)))
	assert.Contains(t, link, "[2021-01-02T00:00:00.000Z%20TO%202021-01-02T23:59:59.999Z]")
}

func TestBuildDateWithTimestampZone(t *testing.T) {
	// picked as January 1st and 31st two hours east of UTC
	zone := time.FixedZone("UTC+2", 2*60*60)
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, zone)
	end := time.Date(2021, 1, 31, 0, 0, 0, 0, zone)
	q := query.QueryData{
		Classification: "content",
		SearchFields:   []query.SearchField{dateField("created", query.RangeWithin, &start, &end)},
	}

	link := mustBuild(t, q, query.WithLocation(time.UTC), query.WithTimestampZone())
	assert.Contains(t, link, "&fq=created:[2021-01-01T00:00:00.000Z%20TO%202021-01-31T23:59:59.999Z]")

	link = mustBuild(t, q, query.WithLocation(time.UTC))
	assert.Contains(t, link, "&fq=created:[2020-12-31T00:00:00.000Z%20TO%202021-01-30T23:59:59.999Z]")
}

func TestBuildSkipsIncompleteDateRange(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	link := mustBuild(t, query.QueryData{
		Classification: "content",
		SearchFields: []query.SearchField{
			dateField("created", query.RangeWithin, &start, nil),
			dateField("lastModified", "", nil, nil),
		},
	})
	assert.Equal(t, base+"content", link)
}

func TestBuildDropdownField(t *testing.T) {
	tests := []struct {
		name  string
		entry query.SearchField
		want  string
	}{
		{"lower cased", dropdown("status", "Ready"), "&fq=status:ready"},
		{"managed assets", dropdown("location", "Managed Assets"), "&fq=location:%5C/dxdam/*"},
		{"web assets", dropdown("location", "Web Assets"), "&fq=location:(NOT%20%5C/dxdam/*)"},
		{"whitespace wrapped", dropdown("assetType", "Foo Bar"), "&fq=assetType:(foo%20bar)"},
		{"translated name", dropdown("contentType", "Article"), "&fq=type:article"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := mustBuild(t, query.QueryData{
				Classification: "asset",
				SearchFields:   []query.SearchField{tt.entry},
			})
			assert.Equal(t, base+"asset"+tt.want, link)
		})
	}
}

func TestBuildDropdownExclusion(t *testing.T) {
	link := mustBuild(t, query.QueryData{
		Classification: "asset",
		SearchFields: []query.SearchField{
			dropdown("location", "All"),
			dropdown("status", ""),
		},
	})
	assert.Equal(t, base+"asset", link)
	assert.NotContains(t, link, "fq=location")
}

func TestBuildReturnFields(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{"all", []string{"All"}, "&fl=*,document:[json]"},
		{"all wins", []string{"name", "All"}, "&fl=*,document:[json]"},
		{"document as json", []string{"name", "document"}, "&fl=name,document:[json]"},
		{"translated", []string{"contentText", "id"}, "&fl=text,id"},
		{"blank names skipped", []string{"", "id"}, "&fl=id"},
		{"none", []string{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := mustBuild(t, query.QueryData{Classification: "content", ReturnFields: tt.fields})
			assert.Equal(t, base+"content"+tt.want, link)
		})
	}
}

func TestBuildPaging(t *testing.T) {
	link := mustBuild(t, query.QueryData{Classification: "content", RowsNumber: "5", StartRow: "10"})
	assert.Equal(t, base+"content&rows=5&start=10", link)

	// values pass through unvalidated
	link = mustBuild(t, query.QueryData{Classification: "content", RowsNumber: "abc"})
	assert.Equal(t, base+"content&rows=abc", link)
}

func TestBuildSorting(t *testing.T) {
	link := mustBuild(t, query.QueryData{Classification: "content", SortByField: "name", SortOrder: query.SortDescending})
	assert.True(t, strings.HasSuffix(link, "&sort=name%20desc"), link)

	link = mustBuild(t, query.QueryData{Classification: "content", SortByField: "name"})
	assert.True(t, strings.HasSuffix(link, "&sort=name%20asc"), link)

	link = mustBuild(t, query.QueryData{Classification: "content", SortByField: query.SortNone, SortOrder: query.SortDescending})
	assert.NotContains(t, link, "&sort=")
}

func TestBuildTranslatesFieldNamesEverywhere(t *testing.T) {
	link := mustBuild(t, query.QueryData{
		Classification: "content",
		SearchFields: []query.SearchField{
			textField("contentText", query.ConditionContains, query.OperatorSingle, "ian"),
		},
		ReturnFields: []string{"contentText"},
		SortByField:  "contentText",
	})
	assert.Equal(t, base+"content&fq=text:*ian*&fl=text&sort=text%20asc", link)
	assert.NotContains(t, link, "contentText")
}

func TestBuildFullQueryOrder(t *testing.T) {
	link := mustBuild(t, query.QueryData{
		TenantURL:      "https://tenant",
		Classification: "content",
		SearchFields: []query.SearchField{
			dropdown("status", "Ready"),
			textField("name", query.ConditionContains, query.OperatorSingle, "city"),
		},
		ReturnFields: []string{"name", "document"},
		RowsNumber:   "5",
		StartRow:     "5",
		SortByField:  "lastModified",
		SortOrder:    query.SortDescending,
	})
	assert.Equal(t,
		"https://tenant/delivery/v1/search?q=*:*&fq=classification:content"+
			"&fq=status:ready&fq=name:*city*&fl=name,document:[json]&rows=5&start=5&sort=lastModified%20desc",
		link)
}

func TestBuildErrors(t *testing.T) {
	var notified []string
	b := query.NewBuilder(query.WithNotify(func(link string) { notified = append(notified, link) }))

	_, err := b.Build(query.QueryData{
		Classification: "content",
		SearchFields:   []query.SearchField{textField("name", "", "Some values", "x")},
	})
	assert.ErrorIs(t, err, query.ErrUnknownOperator)
	assert.Contains(t, err.Error(), "name")

	_, err = b.Build(query.QueryData{
		Classification: "content",
		SearchFields:   []query.SearchField{dateField("created", "Tomorrow", nil, nil)},
	})
	assert.ErrorIs(t, err, query.ErrUnknownDateRange)

	_, err = b.Build(query.QueryData{Classification: "content", SortByField: "name", SortOrder: "Sideways"})
	assert.ErrorIs(t, err, query.ErrUnknownSortOrder)

	assert.Empty(t, notified)
}

func TestBuildNotify(t *testing.T) {
	var notified []string
	b := query.NewBuilder(query.WithNotify(func(link string) { notified = append(notified, link) }))

	link, err := b.Build(query.QueryData{Classification: "page"})
	require.NoError(t, err)
	assert.Equal(t, []string{link}, notified)

	// empty input produces no link to report
	_, err = b.Build(query.QueryData{})
	require.NoError(t, err)
	assert.Len(t, notified, 1)
}

func TestBuildIsPure(t *testing.T) {
	start := time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC)
	q := query.QueryData{
		Classification: "content",
		SearchFields: []query.SearchField{
			textField("tags", query.ConditionEquals, query.OperatorOr, "a, b"),
			dateField("created", query.RangeWithin, &start, &end),
		},
		ReturnFields: []string{"name"},
		SortByField:  "name",
	}
	before := q.Clone()

	first := mustBuild(t, q)
	second := mustBuild(t, q)
	assert.Equal(t, first, second)
	assert.Equal(t, before, q)
}

func TestBuildWithCatalog(t *testing.T) {
	catalog := query.NewCatalog(
		query.CatalogEntry{Name: "color", Config: query.DropdownField{Options: []string{"Red", "Blue"}}},
	)
	link := mustBuild(t, query.QueryData{
		Classification: "content",
		SearchFields:   []query.SearchField{dropdown("color", "Red")},
	}, query.WithCatalog(catalog), query.WithFieldNames(query.FieldNames{"color": "colour"}))
	assert.Equal(t, base+"content&fq=colour:red", link)
}
