package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/form"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/query"
)

const tenantBase = "https://tenant/delivery/v1/search?q=*:*&fq=classification:"

func TestLinkFromFlags(t *testing.T) {
	output, err := execute(t, NewLinkCommand(),
		"--tenant-url", "https://tenant",
		"-c", "content",
		"-f", "name=city;condition=contains",
		"--sort", "name", "--order", "desc",
	)
	require.NoError(t, err)
	assert.Equal(t, tenantBase+"content&fq=name:*city*&fl=*,document:[json]&sort=name%20desc\n", output)
}

func TestLinkFilters(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "dropdown defaults to its first option",
			args: []string{"-c", "asset", "-f", "assetType", "-r", "name"},
			want: tenantBase + "asset&fq=assetType:file&fl=name",
		},
		{
			name: "dropdown value",
			args: []string{"-c", "asset", "-f", "location=Web Assets", "-r", "name", "-r", "path"},
			want: tenantBase + "asset&fq=location:(NOT%20%5C/dxdam/*)&fl=name,path",
		},
		{
			name: "text operator with long label",
			args: []string{"-c", "asset", "-f", "tags=beach, summer;operator=Multiple value (or)", "-r", "All", "-r", "All"},
			want: tenantBase + "asset&fq=tags:(beach%20OR%20summer)",
		},
		{
			name: "date within",
			args: []string{"-f", "lastModified;range=within;start=2021-01-01;end=2021-01-31", "-r", "id"},
			want: tenantBase + "content&fq=lastModified:[2021-01-01T00:00:00.000Z%20TO%202021-01-31T23:59:59.999Z]&fl=id",
		},
		{
			name: "date in the past",
			args: []string{"-f", "created;range=past", "-r", "id"},
			want: tenantBase + "content&fq=created:[*%20TO%20NOW]&fl=id",
		},
		{
			name: "manual field",
			args: []string{"-f", "string1=1234", "-r", "id"},
			want: tenantBase + "content&fq=string1:1234&fl=id",
		},
		{
			name: "paging",
			args: []string{"-r", "id", "--rows", "5", "--start", "10"},
			want: tenantBase + "content&fl=id&rows=5&start=10",
		},
		{
			name: "invalid rows are kept",
			args: []string{"-r", "id", "--rows", "5000"},
			want: tenantBase + "content&fl=id&rows=5000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--tenant-url", "https://tenant"}, tt.args...)
			output, err := execute(t, NewLinkCommand(), args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(output))
		})
	}
}

func TestLinkFromExample(t *testing.T) {
	output, err := execute(t, NewLinkCommand(),
		"--tenant-url", "https://tenant",
		"--example", "All web application assets",
	)
	require.NoError(t, err)
	assert.Equal(t, tenantBase+"asset&fq=location:(NOT%20%5C/dxdam/*)", strings.TrimSpace(output))

	// an explicit classification drops the fields that do not apply
	output, err = execute(t, NewLinkCommand(),
		"--tenant-url", "https://tenant",
		"--example", "All web application assets",
		"-c", "content",
	)
	require.NoError(t, err)
	assert.Equal(t, tenantBase+"content", strings.TrimSpace(output))
}

func TestLinkFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tenantUrl: https://other
classification: content
searchFields:
  - field: name
    option:
      condition: Equals
    value:
      text: summer
`), 0o644))

	output, err := execute(t, NewLinkCommand(), "--file", path, "--sort", "name")
	require.NoError(t, err)
	assert.Equal(t, "https://other/delivery/v1/search?q=*:*&fq=classification:content&fq=name:summer&sort=name%20asc", strings.TrimSpace(output))
}

func TestLinkJSONOutput(t *testing.T) {
	output, err := execute(t, NewLinkCommand(),
		"--tenant-url", "https://tenant",
		"-c", "category",
		"--output", "json",
	)
	require.NoError(t, err)

	var result LinkResult
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, tenantBase+"category&fl=*,document:[json]", result.Link)
	assert.Equal(t, "category", result.Query.Classification)
	assert.Equal(t, "https://tenant", result.Query.TenantURL)
}

func TestLinkErrors(t *testing.T) {
	tests := map[string][]string{
		"unknown classification": {"-c", "library"},
		"missing field name":     {"-f", "=x"},
		"unknown filter option":  {"-f", "name=x;mode=fast"},
		"option without value":   {"-f", "name=x;condition"},
		"unknown operator":       {"-f", "name=x;operator=xor"},
		"invalid date":           {"-f", "created;range=within;start=yesterday"},
		"unknown sort order":     {"--sort", "name", "--order", "sideways"},
		"unknown example":        {"--example", "nothing like it"},
		"missing file":           {"--file", "/does/not/exist.yaml"},
		"invalid output":         {"--output", "xml"},
		"example and file":       {"--example", "All assets", "--file", "q.yaml"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			output, err := execute(t, NewLinkCommand(), args...)
			assert.Error(t, err)
			assert.Empty(t, output)
		})
	}
}

func TestApplyFilterKeepsExistingField(t *testing.T) {
	store := form.New()
	require.NoError(t, applyFilter(store, "name=first"))
	require.NoError(t, applyFilter(store, "name;condition=contains"))

	q := store.Snapshot()
	require.Len(t, q.SearchFields, 1)
	assert.Equal(t, "first", q.SearchFields[0].Value.Text)
	assert.Equal(t, query.ConditionContains, q.SearchFields[0].Option.Condition)
}

func TestLookupName(t *testing.T) {
	name, err := lookupName(operatorNames, "operator", " AND ")
	require.NoError(t, err)
	assert.Equal(t, query.OperatorAnd, name)

	name, err = lookupName(rangeNames, "range", "in the future")
	require.NoError(t, err)
	assert.Equal(t, query.RangeFuture, name)

	_, err = lookupName(orderNames, "sort order", "up")
	assert.EqualError(t, err, `unknown sort order "up"`)
}
