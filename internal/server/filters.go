package server

import (
	"fmt"
	"strings"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
)

const (
	requestIDHeader    = "X-Request-Id"
	requestIDAttribute = "requestID"
)

func corsFilter(container *restful.Container) restful.FilterFunction {
	cors := restful.CrossOriginResourceSharing{
		AllowedHeaders: []string{"Content-Type", "Accept", requestIDHeader},
		ExposeHeaders:  []string{requestIDHeader},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		// no AllowedDomains: every origin is allowed
		Container:      container,
	}
	return cors.Filter
}

// requestIDFilter propagates the caller's request id or assigns a new one
func requestIDFilter(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	id := req.HeaderParameter(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	req.SetAttribute(requestIDAttribute, id)
	resp.AddHeader(requestIDHeader, id)
	chain.ProcessFilter(req, resp)
}

func loggingFilter(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	// Print request line with query parameters
	url := req.Request.URL.Path
	if req.Request.URL.RawQuery != "" {
		url += "?" + req.Request.URL.RawQuery
	}
	id, _ := req.Attribute(requestIDAttribute).(string)
	log.Info("[%s] %s %s %s", id, req.Request.Method, url, req.Request.Proto)

	// Print headers in debug mode
	if log.IsDebugEnabled() && len(req.Request.Header) > 0 {
		headers := make([]string, 0, len(req.Request.Header))
		for name, values := range req.Request.Header {
			headers = append(headers, fmt.Sprintf("%s: %s", name, values[0]))
		}
		log.Debug("Headers: %s", strings.Join(headers, ", "))
	}

	chain.ProcessFilter(req, resp)

	log.Debug("[%s] Response status: %d", id, resp.StatusCode())
}
