// Package api serves stored simulation runs over HTTP.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
	"github.com/deluair/BD-publicfinance-simulation/internal/logfields"
	"github.com/deluair/BD-publicfinance-simulation/internal/metrics"
	"github.com/deluair/BD-publicfinance-simulation/internal/runstore"
	"github.com/deluair/BD-publicfinance-simulation/internal/version"
)

const defaultListLimit = 50

// Server represents the API server.
type Server struct {
	Addr     string
	router   *chi.Mux
	server   *http.Server
	store    runstore.Store
	registry *prom.Registry
	errors   *ferrors.HTTPErrorAdapter
	logger   *slog.Logger
}

// NewServer creates a server reading runs from store. A nil registry serves
// the default Prometheus registry at /metrics.
func NewServer(addr string, store runstore.Store, registry *prom.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		Addr:     addr,
		router:   chi.NewRouter(),
		store:    store,
		registry: registry,
		errors:   ferrors.NewHTTPErrorAdapter(logger),
		logger:   logger,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/runs", s.handleListRuns)
	s.router.Get("/runs/{id}", s.handleGetRun)
	s.router.Get("/runs/{id}/ledger", s.handleLedgerJSON)
	s.router.Get("/runs/{id}/ledger.csv", s.handleLedgerCSV)
	s.router.Method(http.MethodGet, "/metrics", metrics.HTTPHandler(s.registry))
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start blocks serving requests until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("Starting API server", slog.String("addr", s.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Response represents a standard API response.
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

func (s *Server) success(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(Response{Success: true, Data: data})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.success(w, map[string]string{"status": "healthy", "version": version.Version})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.errors.WriteError(w, ferrors.ValidationError("limit must be a non-negative integer").
				WithContext("limit", raw).
				Build())
			return
		}
		limit = n
	}
	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		s.errors.WriteError(w, err)
		return
	}
	if runs == nil {
		runs = []runstore.Run{}
	}
	s.success(w, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.errors.WriteError(w, err)
		return
	}
	s.success(w, run)
}

func (s *Server) handleLedgerJSON(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.GetRun(r.Context(), id); err != nil {
		s.errors.WriteError(w, err)
		return
	}
	table, err := s.store.LoadLedger(r.Context(), id)
	if err != nil {
		s.errors.WriteError(w, err)
		return
	}
	s.success(w, table)
}

func (s *Server) handleLedgerCSV(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.GetRun(r.Context(), id); err != nil {
		s.errors.WriteError(w, err)
		return
	}
	table, err := s.store.LoadLedger(r.Context(), id)
	if err != nil {
		s.errors.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.csv"`)
	w.WriteHeader(http.StatusOK)
	if err := table.WriteCSV(w); err != nil {
		s.logger.Warn("Failed to stream ledger CSV", logfields.RunID(id), logfields.Error(err))
	}
}
