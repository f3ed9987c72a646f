// Package tenant talks to the content delivery API of a tenant.
package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cast"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/query"
	"github.com/acoustic-content-samples/sample-delivery-search-api/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// ErrNoTenantURL is returned when a client is created without a tenant URL.
var ErrNoTenantURL = errors.New("tenant URL cannot be empty")

// ErrNotDropdown is returned when options are requested for a field that is
// not edited with a dropdown.
var ErrNotDropdown = errors.New("field has no selectable options")

// StatusError is returned for a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("tenant returned status: %s", e.Status)
	}
	return fmt.Sprintf("tenant returned status: %s, body: %s", e.Status, e.Body)
}

// SearchResponse is the subset of a delivery search response the client reads.
type SearchResponse struct {
	NumFound  int              `json:"numFound"`
	Documents []query.Document `json:"documents"`
}

// Info is the current tenant description returned by the registry.
type Info map[string]any

// Client is a delivery API client bound to one tenant URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	names      query.FieldNames
	cache      *OptionCache
	logger     *logger.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the timeout of every request. It applies to a copy of
// the HTTP client, never to a client passed with WithHTTPClient.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithFieldNames sets the local to API field name translation.
func WithFieldNames(n query.FieldNames) ClientOption {
	return func(c *Client) { c.names = n }
}

// WithCache makes FieldOptions reuse fresh entries of cache.
func WithCache(cache *OptionCache) ClientOption {
	return func(c *Client) { c.cache = cache }
}

// NewClient returns a client for the tenant API URL.
func NewClient(tenantURL string, opts ...ClientOption) (*Client, error) {
	tenantURL = strings.TrimRight(strings.TrimSpace(tenantURL), "/")
	if tenantURL == "" {
		return nil, ErrNoTenantURL
	}

	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    tenantURL,
		names:      query.DefaultFieldNames,
		logger:     logger.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the tenant API URL the client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CheckTenant verifies the tenant URL by reading the current tenant from
// the registry.
func (c *Client) CheckTenant(ctx context.Context) (Info, error) {
	var info Info
	if err := c.getJSON(ctx, c.baseURL+"/registry/v1/currenttenant", &info); err != nil {
		return nil, fmt.Errorf("failed to check tenant %s: %w", c.baseURL, err)
	}
	return info, nil
}

// Get issues a delivery request. requestPath is relative to
// <tenant>/delivery/v1/ and may carry a query string.
func (c *Client) Get(ctx context.Context, requestPath string) (*SearchResponse, error) {
	var resp SearchResponse
	url := c.baseURL + "/delivery/v1/" + strings.TrimLeft(requestPath, "/")
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", requestPath, err)
	}
	return &resp, nil
}

// UniqueFieldValues returns the distinct non-empty values a field has in
// the tenant's content, in locale order.
func (c *Client) UniqueFieldValues(ctx context.Context, field string) ([]string, error) {
	apiName := c.names.API(field)
	resp, err := c.Get(ctx, "search?q=classification:content&rows=1000&fl="+apiName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(resp.Documents))
	values := make([]string, 0, len(resp.Documents))
	for _, doc := range resp.Documents {
		value, err := cast.ToStringE(doc[apiName])
		if err != nil {
			c.logger.Debug("Skipping value of %s that is not a scalar: %v", apiName, doc[apiName])
			continue
		}
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}

	collate.New(language.Und).SortStrings(values)
	return values, nil
}

// FieldOptions returns the selectable options of a dropdown field: its
// static options, the transformed response of its remote source or the
// distinct values found in content.
func (c *Client) FieldOptions(ctx context.Context, field string, cfg query.FieldConfig) ([]query.Option, error) {
	dd, ok := cfg.(query.DropdownField)
	if !ok {
		return nil, fmt.Errorf("%s: %w", field, ErrNotDropdown)
	}
	if dd.StaticOptions() {
		return StaticOptions(dd.Options), nil
	}

	key := c.baseURL + "|" + field
	if c.cache != nil {
		if options, ok := c.cache.Get(key); ok {
			c.logger.Debug("Option cache hit for %s", key)
			return options, nil
		}
	}

	var options []query.Option
	if dd.Remote != nil {
		resp, err := c.Get(ctx, dd.Remote.RequestPath)
		if err != nil {
			return nil, err
		}
		options = dd.Remote.Transform(resp.Documents)
	} else {
		values, err := c.UniqueFieldValues(ctx, field)
		if err != nil {
			return nil, err
		}
		options = StaticOptions(values)
	}

	if c.cache != nil {
		c.cache.Put(key, options)
	}
	return options, nil
}

// StaticOptions turns plain values into options whose ID is the value.
func StaticOptions(values []string) []query.Option {
	options := make([]query.Option, len(values))
	for i, v := range values {
		options[i] = query.Option{ID: v, Name: v}
	}
	return options
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("GET %s", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
