package server

import (
	restful "github.com/emicklei/go-restful/v3"

	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/query"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/version"
)

// RegisterRoutes registers the delivery search routes
func RegisterRoutes(ws *restful.WebService, handler *Handler) {
	ws.Route(ws.GET("/version").To(handler.GetVersion).
		Doc("get server version information").
		Returns(200, "OK", version.Info{}))

	ws.Route(ws.GET("/classifications").To(handler.ListClassifications).
		Doc("list document classifications").
		Returns(200, "OK", []string{}))

	ws.Route(ws.GET("/fields").To(handler.ListFields).
		Doc("list search fields").
		Param(ws.QueryParameter("classification", "only fields applying to this classification").DataType("string")).
		Returns(200, "OK", []FieldDescriptor{}).
		Returns(400, "Bad Request", Error{}))

	ws.Route(ws.GET("/fields/{field}/options").To(handler.GetFieldOptions).
		Doc("list dropdown options of a field").
		Param(ws.PathParameter("field", "field name").DataType("string")).
		Param(ws.QueryParameter("tenantUrl", "tenant API URL used for remote options").DataType("string")).
		Returns(200, "OK", OptionsResponse{}).
		Returns(400, "Bad Request", Error{}).
		Returns(502, "Bad Gateway", Error{}))

	ws.Route(ws.GET("/examples").To(handler.ListExamples).
		Doc("list example queries with their links").
		Returns(200, "OK", []ExampleResponse{}))

	ws.Route(ws.POST("/link").To(handler.BuildLink).
		Doc("build the search link of query data").
		Reads(query.QueryData{}).
		Returns(200, "OK", LinkResponse{}).
		Returns(400, "Bad Request", Error{}))

	ws.Route(ws.GET("/link/ws").To(handler.LinkWS).
		Doc("build links for query data sent over a websocket"))

	ws.Route(ws.GET("/tenant/check").To(handler.CheckTenant).
		Doc("check that a tenant URL is reachable").
		Param(ws.QueryParameter("url", "tenant API URL").DataType("string")).
		Returns(200, "OK", TenantCheckResponse{}).
		Returns(400, "Bad Request", Error{}))
}
