package server

import (
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/query"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/tenant"
)

// FieldDescriptor describes a search field and how it is edited
type FieldDescriptor struct {
	Name        string            `json:"name"`
	APIName     string            `json:"apiName"`
	ControlType query.ControlType `json:"controlType"`
	Conditions  []string          `json:"conditions,omitempty"`
	Operators   []string          `json:"operators,omitempty"`
	Ranges      []string          `json:"dateRanges,omitempty"`
	Options     []string          `json:"options,omitempty"`
	Remote      bool              `json:"remote,omitempty"`
	Sortable    bool              `json:"sortable"`
}

// OptionsResponse lists the selectable options of a dropdown field
type OptionsResponse struct {
	Field   string         `json:"field"`
	Options []query.Option `json:"options"`
}

// LinkResponse carries a built link or the reason the build failed.
// LastLink is the last link built successfully on the same connection.
type LinkResponse struct {
	Link     string `json:"link,omitempty"`
	Error    string `json:"error,omitempty"`
	LastLink string `json:"lastLink,omitempty"`
}

// ExampleResponse is a predefined query with its link
type ExampleResponse struct {
	Name  string          `json:"name"`
	Query query.QueryData `json:"query"`
	Link  string          `json:"link"`
}

// TenantCheckResponse reports whether a tenant URL is reachable
type TenantCheckResponse struct {
	URL    string      `json:"url"`
	OK     bool        `json:"ok"`
	Tenant tenant.Info `json:"tenant,omitempty"`
	Error  string      `json:"error,omitempty"`
}
