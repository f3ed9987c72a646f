package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/gorilla/websocket"

	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/examples"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/form"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/query"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/tenant"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/version"
	"github.com/acoustic-content-samples/sample-delivery-search-api/pkg/logger"
)

var log = logger.New()

// Configure the WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is meant to be called from a local browser form
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler serves the delivery search API
type Handler struct {
	catalog       *query.Catalog
	names         query.FieldNames
	builder       *query.Builder
	cache         *tenant.OptionCache
	defaultTenant string
	httpTimeout   time.Duration
}

// NewHandler creates a Handler from the server configuration
func NewHandler(cfg Config, cache *tenant.OptionCache) *Handler {
	// dates posted by a browser carry the user's offset
	opts := []query.BuilderOption{query.WithCatalog(query.DefaultCatalog), query.WithTimestampZone()}
	if cfg.DefaultTenantURL != "" {
		opts = append(opts, query.WithDefaultTenantURL(cfg.DefaultTenantURL))
	}
	return &Handler{
		catalog:       query.DefaultCatalog,
		names:         query.DefaultFieldNames,
		builder:       query.NewBuilder(opts...),
		cache:         cache,
		defaultTenant: cfg.DefaultTenantURL,
		httpTimeout:   cfg.HTTPTimeout,
	}
}

// GetVersion handles GET /version
func (h *Handler) GetVersion(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndJson(http.StatusOK, version.Current(), restful.MIME_JSON)
}

// ListClassifications handles GET /classifications
func (h *Handler) ListClassifications(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndJson(http.StatusOK, query.Classifications, restful.MIME_JSON)
}

// ListFields handles GET /fields
func (h *Handler) ListFields(req *restful.Request, resp *restful.Response) {
	classification := req.QueryParameter("classification")

	names := h.catalog.Names()
	if classification != "" {
		if !query.IsClassification(classification) {
			writeError(resp, Newf(CodeBadRequest, "unknown classification %q", classification))
			return
		}
		names = h.catalog.FieldsFor(classification)
	}

	sortable := query.Sortable(names)
	fields := make([]FieldDescriptor, 0, len(names))
	for _, name := range names {
		d := h.describe(name)
		d.Sortable = slices.Contains(sortable, name)
		fields = append(fields, d)
	}
	resp.WriteHeaderAndJson(http.StatusOK, fields, restful.MIME_JSON)
}

func (h *Handler) describe(name string) FieldDescriptor {
	d := FieldDescriptor{Name: name, APIName: h.names.API(name)}
	switch cfg := h.catalog.Config(name).(type) {
	case query.TextField:
		d.ControlType = query.TextInput
		d.Conditions = cfg.Conditions
		d.Operators = cfg.Operators
	case query.DateField:
		d.ControlType = query.DatePicker
		d.Ranges = cfg.Ranges
	case query.DropdownField:
		d.ControlType = query.Dropdown
		d.Options = cfg.Options
		d.Remote = !cfg.StaticOptions()
	}
	return d
}

// GetFieldOptions handles GET /fields/{field}/options
func (h *Handler) GetFieldOptions(req *restful.Request, resp *restful.Response) {
	field := req.PathParameter("field")
	cfg, known := h.catalog.Lookup(field)
	if !known {
		writeError(resp, Newf(CodeNotFound, "unknown field %s", field))
		return
	}
	dd, ok := cfg.(query.DropdownField)
	if !ok {
		writeError(resp, Newf(CodeBadRequest, "field %s has no selectable options", field))
		return
	}
	if dd.StaticOptions() {
		resp.WriteHeaderAndJson(http.StatusOK, OptionsResponse{Field: field, Options: tenant.StaticOptions(dd.Options)}, restful.MIME_JSON)
		return
	}

	client, err := h.client(req.QueryParameter("tenantUrl"))
	if err != nil {
		writeError(resp, Newf(CodeBadRequest, "options of %s are fetched from the tenant: %v", field, err))
		return
	}

	options, err := client.FieldOptions(req.Request.Context(), field, cfg)
	if err != nil {
		log.Error("Failed to fetch options of %s from %s: %v", field, client.BaseURL(), err)
		writeError(resp, Newf(CodeBadGateway, "failed to fetch options of %s: %v", field, err))
		return
	}
	resp.WriteHeaderAndJson(http.StatusOK, OptionsResponse{Field: field, Options: options}, restful.MIME_JSON)
}

// ListExamples handles GET /examples
func (h *Handler) ListExamples(req *restful.Request, resp *restful.Response) {
	all := examples.All()
	out := make([]ExampleResponse, 0, len(all))
	for _, ex := range all {
		link, err := h.builder.Build(ex.Query)
		if err != nil {
			log.Error("Example %q does not build: %v", ex.Name, err)
			continue
		}
		out = append(out, ExampleResponse{Name: ex.Name, Query: ex.Query, Link: link})
	}
	resp.WriteHeaderAndJson(http.StatusOK, out, restful.MIME_JSON)
}

// BuildLink handles POST /link
func (h *Handler) BuildLink(req *restful.Request, resp *restful.Response) {
	var q query.QueryData
	if err := req.ReadEntity(&q); err != nil {
		writeError(resp, Newf(CodeBadRequest, "invalid query data: %v", err))
		return
	}

	link, err := h.builder.Build(q)
	if err != nil {
		writeError(resp, Newf(CodeBadRequest, "%v", err))
		return
	}
	resp.WriteHeaderAndJson(http.StatusOK, LinkResponse{Link: link}, restful.MIME_JSON)
}

// LinkWS handles GET /link/ws. Every text frame carries query data and is
// answered with the link built from it.
func (h *Handler) LinkWS(req *restful.Request, resp *restful.Response) {
	conn, err := upgrader.Upgrade(resp.ResponseWriter, req.Request, nil)
	if err != nil {
		// Upgrade writes the error response itself
		log.Error("Failed to upgrade link connection: %v", err)
		return
	}
	defer conn.Close()

	store := form.New(form.WithBuilder(h.builder))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("Link connection closed unexpectedly: %v", err)
			}
			return
		}

		if err := conn.WriteJSON(h.answer(store, data)); err != nil {
			log.Warn("Failed to write link: %v", err)
			return
		}
	}
}

func (h *Handler) answer(store *form.Store, data []byte) LinkResponse {
	var q query.QueryData
	if err := json.Unmarshal(data, &q); err != nil {
		return LinkResponse{Error: "invalid query data: " + err.Error(), LastLink: store.LastLink()}
	}

	store.Replace(q)
	link, err := store.Link()
	if err != nil {
		return LinkResponse{Error: err.Error(), LastLink: store.LastLink()}
	}
	return LinkResponse{Link: link, LastLink: link}
}

// CheckTenant handles GET /tenant/check
func (h *Handler) CheckTenant(req *restful.Request, resp *restful.Response) {
	client, err := h.client(req.QueryParameter("url"))
	if err != nil {
		writeError(resp, Newf(CodeBadRequest, "%v", err))
		return
	}

	result := TenantCheckResponse{URL: client.BaseURL()}
	info, err := client.CheckTenant(req.Request.Context())
	if err != nil {
		log.Warn("Tenant check failed: %v", err)
		result.Error = err.Error()
	} else {
		result.OK = true
		result.Tenant = info
	}
	resp.WriteHeaderAndJson(http.StatusOK, result, restful.MIME_JSON)
}

func (h *Handler) client(tenantURL string) (*tenant.Client, error) {
	if tenantURL == "" {
		tenantURL = h.defaultTenant
	}
	client, err := tenant.NewClient(tenantURL, tenant.WithTimeout(h.httpTimeout), tenant.WithCache(h.cache))
	if errors.Is(err, tenant.ErrNoTenantURL) {
		return nil, errors.New("no tenant URL given and none configured")
	}
	return client, err
}
