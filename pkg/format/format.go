package format

import (
	"strings"

	"github.com/fatih/color"

	"github.com/acoustic-content-samples/sample-delivery-search-api/pkg/logger"
)

// APIEndpoint represents an API endpoint
type APIEndpoint struct {
	Method      string
	Path        string
	Description string
}

// FormatHTTPMethod returns a colored and bold HTTP method string
func FormatHTTPMethod(method string) string {
	switch method {
	case "GET":
		return color.New(color.Bold, color.FgGreen).Sprint(method)
	case "POST":
		return color.New(color.Bold, color.FgYellow).Sprint(method)
	case "OPTIONS":
		return color.New(color.Bold, color.FgWhite).Sprint(method)
	default:
		return color.New(color.Bold).Sprint(method)
	}
}

// FormatListening returns the colored startup line of the API server
func FormatListening(addr string) string {
	green := color.New(color.FgGreen)
	return green.Sprint("Delivery search API listening on ") +
		color.New(color.Bold, color.FgCyan).Sprint(addr)
}

// FormatLink colors a search link: the base in bold and each query
// parameter name in cyan.
func FormatLink(link string) string {
	base, params, found := strings.Cut(link, "?")
	if !found {
		return color.New(color.Bold).Sprint(link)
	}

	name := color.New(color.FgCyan)
	parts := strings.Split(params, "&")
	for i, p := range parts {
		if key, value, ok := strings.Cut(p, "="); ok {
			parts[i] = name.Sprint(key) + "=" + value
		}
	}
	return color.New(color.Bold).Sprint(base) + "?" + strings.Join(parts, "&")
}

// LogAPIEndpoint logs an API endpoint with consistent formatting
func LogAPIEndpoint(logger *logger.Logger, endpoint APIEndpoint) {
	// Using tabs for alignment since ANSI color codes don't affect tab stops
	logger.Info("  %s\t%s\t\t%s",
		FormatHTTPMethod(endpoint.Method),
		endpoint.Path,
		endpoint.Description,
	)
}

// LogAPIEndpoints logs a header and a list of API endpoints
func LogAPIEndpoints(logger *logger.Logger, endpoints []APIEndpoint) {
	logger.Info("API endpoints:")
	for _, endpoint := range endpoints {
		LogAPIEndpoint(logger, endpoint)
	}
}
