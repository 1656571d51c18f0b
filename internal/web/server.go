// Package web provides the HTTP server and handlers for the laser
// parameter catalog.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/industrialdepot/internal/catalog"
	"github.com/JonMunkholm/industrialdepot/internal/config"
	"github.com/JonMunkholm/industrialdepot/internal/core"
	"github.com/JonMunkholm/industrialdepot/internal/metrics"
	"github.com/JonMunkholm/industrialdepot/internal/translate"
	"github.com/JonMunkholm/industrialdepot/internal/web/middleware"
)

// Deps are the components the handlers serve.
type Deps struct {
	Service *core.Service
	Terms   *translate.Mapper
	Catalog *catalog.Catalog
	Metrics *metrics.Recorder // optional
}

// Server is the HTTP server for the catalog.
type Server struct {
	service *core.Service
	terms   *translate.Mapper
	catalog *catalog.Catalog
	metrics *metrics.Recorder
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance.
func NewServer(deps Deps, cfg *config.Config) *Server {
	s := &Server{
		service: deps.Service,
		terms:   deps.Terms,
		catalog: deps.Catalog,
		metrics: deps.Metrics,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	var rec middleware.RequestRecorder
	if s.metrics != nil {
		rec = s.metrics
	}

	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger(rec))
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))

	// Security hardening
	s.router.Use(securityHeaders)

	if s.cfg.Rate.Enabled {
		limiter := middleware.NewRateLimiter(s.cfg.Rate.RequestsPerMinute, s.cfg.Rate.ExemptIPs)
		s.router.Use(limiter.Handler)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Pages
	s.router.Get("/", s.handleCalculatorPage)
	s.router.Post("/", s.handleCalculatorSubmit)

	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler())
	}

	s.router.Route("/api", func(r chi.Router) {
		// Parameter lookup
		r.Get("/materials", s.handleMaterials)
		r.Get("/cut", s.handleLookup(core.KindCut))
		r.Get("/perforation", s.handleLookup(core.KindPerforation))
		r.Post("/calculate", s.handleCalculate)

		// Table maintenance
		r.Get("/status", s.handleStatus)
		r.Group(func(r chi.Router) {
			if s.cfg.Rate.Enabled {
				r.Use(middleware.NewRateLimiter(s.cfg.Rate.RefreshLimit, s.cfg.Rate.ExemptIPs).Handler)
			}
			r.Use(middleware.RequireAPIKey(s.cfg.Security.RefreshAPIKeys))
			r.Post("/refresh", s.handleRefresh)
		})

		// Translation
		r.Get("/translate", s.handleTranslate)

		// Equipment
		r.Get("/robots", s.handleListEquipment(catalog.KindRobot))
		r.Get("/robots/{model}", s.handleGetEquipment(catalog.KindRobot))
		r.Get("/cobots", s.handleListEquipment(catalog.KindCobot))
		r.Get("/cobots/{model}", s.handleGetEquipment(catalog.KindCobot))
		r.Get("/equipment/{kind}", s.handleListEquipmentByKind)
		r.Get("/equipment/{kind}/{model}", s.handleGetEquipmentByKind)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// The calculator page only uses inline styles and no scripts
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")

		// Control referrer information
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as JSON with the given status.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
