// Package server exposes the link builder as a JSON API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/robfig/cron/v3"

	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/tenant"
	"github.com/acoustic-content-samples/sample-delivery-search-api/pkg/format"
)

const shutdownTimeout = 5 * time.Second

// Config holds the server settings
type Config struct {
	Port             int
	DefaultTenantURL string
	HTTPTimeout      time.Duration
	CacheTTL         time.Duration
	// PruneSchedule is the cron spec of the option cache pruning
	PruneSchedule string
}

// Server is the API server with its background jobs
type Server struct {
	cfg       Config
	container *restful.Container
	ws        *restful.WebService
	cache     *tenant.OptionCache
	cron      *cron.Cron
}

// New creates the server and registers its routes and filters
func New(cfg Config) (*Server, error) {
	cache := tenant.NewOptionCache(cfg.CacheTTL)
	handler := NewHandler(cfg, cache)

	container := restful.NewContainer()

	ws := new(restful.WebService)
	ws.Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)
	RegisterRoutes(ws, handler)
	container.Add(ws)

	container.Filter(corsFilter(container))
	container.Filter(requestIDFilter)
	container.Filter(loggingFilter)

	s := &Server{
		cfg:       cfg,
		container: container,
		ws:        ws,
		cache:     cache,
		cron:      cron.New(),
	}
	if cfg.PruneSchedule != "" {
		if _, err := s.cron.AddFunc(cfg.PruneSchedule, s.pruneCache); err != nil {
			return nil, fmt.Errorf("invalid cache prune schedule %q: %w", cfg.PruneSchedule, err)
		}
	}
	return s, nil
}

// Handler returns the HTTP handler serving the API
func (s *Server) Handler() http.Handler {
	return s.container
}

// Endpoints lists the registered routes
func (s *Server) Endpoints() []format.APIEndpoint {
	endpoints := make([]format.APIEndpoint, 0, len(s.ws.Routes()))
	for _, route := range s.ws.Routes() {
		endpoints = append(endpoints, format.APIEndpoint{
			Method:      route.Method,
			Path:        route.Path,
			Description: route.Doc,
		})
	}
	return endpoints
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	s.cron.Start()
	log.Debug("Option cache pruning scheduled: %s", s.cfg.PruneSchedule)
	defer func() {
		<-s.cron.Stop().Done()
	}()

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: s.container,
	}

	format.LogAPIEndpoints(log, s.Endpoints())
	if s.cfg.DefaultTenantURL != "" {
		log.Info("Default tenant: %s", log.Highlight(s.cfg.DefaultTenantURL))
	}
	log.Info(format.FormatListening(fmt.Sprintf("http://localhost:%d", s.cfg.Port)))

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Success("Server exited properly")
	return nil
}

func (s *Server) pruneCache() {
	if removed := s.cache.Prune(); removed > 0 {
		log.Debug("Pruned %d expired option lists", removed)
	}
}
