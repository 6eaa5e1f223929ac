package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/kvsession/internal/logging"
	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes a SessionStore over HTTP for inspection and operations tooling.
type Server struct {
	Store  ports.SessionStore
	Logger *slog.Logger
}

// Option configures the handler.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMetrics mounts GET /metrics backed by gatherer.
func WithMetrics(gatherer prometheus.Gatherer) Option {
	return func(c *config) {
		c.gatherer = gatherer
	}
}

// NewHandler creates a new HTTP handler for the store.
func NewHandler(store ports.SessionStore, opts ...Option) http.Handler {
	cfg := &config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	server := &Server{Store: store, Logger: cfg.logger}
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if cfg.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", server.GetSession)
		r.Put("/", server.PutSession)
		r.Delete("/", server.DeleteSession)
		r.Post("/touch", server.TouchSession)
	})

	return r
}

// parseTTL reads the ttl query parameter. Missing means Infinity.
func parseTTL(r *http.Request) (time.Duration, error) {
	raw := r.URL.Query().Get("ttl")
	if raw == "" {
		return ports.Infinity, nil
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if ttl <= 0 {
		return 0, errors.New("ttl must be positive")
	}
	return ttl, nil
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := s.Store.Get(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrCorruptRecord) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		s.Logger.Error("GetSession failed", "session_id", id, "err", err)
		return
	}
	if record == nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(record); err != nil {
		s.Logger.Warn("GetSession: failed to write response", "session_id", id, "err", err)
	}
}

// PutSession handles PUT /sessions/{id}?ttl=30m.
func (s *Server) PutSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ttl, err := parseTTL(r)
	if err != nil {
		http.Error(w, "Invalid ttl", http.StatusBadRequest)
		return
	}

	var record domain.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("PutSession: Invalid request body", "err", err)
		return
	}

	if err := s.Store.Set(r.Context(), id, &record, ttl); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.Logger.Error("PutSession failed", "session_id", id, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TouchSession handles POST /sessions/{id}/touch?ttl=30m.
func (s *Server) TouchSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ttl, err := parseTTL(r)
	if err != nil {
		http.Error(w, "Invalid ttl", http.StatusBadRequest)
		return
	}

	if err := s.Store.Touch(r.Context(), id, ttl); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.Logger.Error("TouchSession failed", "session_id", id, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.Store.Destroy(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.Logger.Error("DeleteSession failed", "session_id", id, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
