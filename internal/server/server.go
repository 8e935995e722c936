// Package server exposes the catalog and plan validation over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imamik/azcap/internal/catalog"
	"github.com/imamik/azcap/internal/validate"
)

// Server routes catalog passthroughs and plan validation.
type Server struct {
	catalog *catalog.Resolver
	engine  *validate.Engine
	logger  *slog.Logger
	origins []string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithCORSOrigins sets the allowed CORS origins. "*" allows any origin.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// New builds a Server over the given resolver and validation engine.
func New(resolver *catalog.Resolver, engine *validate.Engine, opts ...Option) *Server {
	s := &Server{
		catalog: resolver,
		engine:  engine,
		logger:  slog.Default(),
		origins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler with CORS and logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/healthz", s.handleHealthz)
	mux.HandleFunc("GET /api/subscriptions", s.handleSubscriptions)
	mux.HandleFunc("GET /api/locations", s.handleLocations)
	mux.HandleFunc("GET /api/locations/zone-mappings", s.handleZoneMappings)
	mux.HandleFunc("GET /api/compute/vm-sizes", s.handleVMSizes)
	mux.HandleFunc("GET /api/compute/resource-skus", s.handleComputeSKUs)
	mux.HandleFunc("GET /api/compute/vm-zone-details", s.handleVMZoneDetails)
	mux.HandleFunc("GET /api/compute/usage", s.handleUsage)
	mux.HandleFunc("GET /api/resource-skus", s.handleResourceSKUs)
	mux.HandleFunc("POST /api/cache/clear", s.handleCacheClear)
	mux.HandleFunc("POST /api/validate-plan", s.handleValidatePlan)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s.withLogging(s.withCORS(mux))
}
