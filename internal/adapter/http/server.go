package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/climatquartier/scenario-service/internal/domain"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker = sharedobs.ReadinessChecker

// Simulator computes scenario results for the API.
type Simulator interface {
	Simulate(ctx context.Context, req domain.ScenarioRequest) (domain.SimulationResult, error)
}

// Server exposes the scenario API alongside health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	catalog    *domain.Catalog
	simulator  Simulator
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the
// /api/v1 routes.
func NewServer(addr string, ready ReadinessChecker, catalog *domain.Catalog, sim Simulator, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      withRequestLogging(logger, mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		catalog:   catalog,
		simulator: sim,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/zones", s.handleListZones)
	mux.HandleFunc("GET /api/v1/zones/{id}", s.handleGetZone)
	mux.HandleFunc("GET /api/v1/zones/{id}/impacts", s.handleZoneImpacts)
	mux.HandleFunc("GET /api/v1/scenarios", s.handleListScenarios)
	mux.HandleFunc("GET /api/v1/tables", s.handleListTables)
	mux.HandleFunc("POST /api/v1/simulate", s.handleSimulate)
	mux.HandleFunc("POST /api/v1/interpolate", s.handleInterpolate)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
