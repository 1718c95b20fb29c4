// Package http exposes the solver over a small JSON API: solve a level,
// list and download exported artifacts, scrape metrics. It is a thin
// presentation boundary; all search semantics live in the coordinator.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/entity12208/macroforge/internal/logging"
	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/entity12208/macroforge/pkg/ports"
	"github.com/entity12208/macroforge/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// lockTTL bounds how long a crashed replica can hold a level lock.
const lockTTL = 5 * time.Minute

// Config wires the server's collaborators.
type Config struct {
	// Registry hands out per-level coordinators.
	Registry *session.Registry

	// Store serves artifact listing and download. Optional.
	Store ports.ArtifactStore

	// Locker extends the one-search-per-level rule across replicas.
	// Optional.
	Locker ports.DistributedLocker

	// Prom mounts /metrics for the given gatherer. Optional.
	Prom prometheus.Gatherer

	Logger *slog.Logger
}

// Server handles the solver API.
type Server struct {
	cfg Config
}

// solveResponse is the JSON result of a solve request.
type solveResponse struct {
	Found    bool   `json:"found"`
	Frames   int    `json:"frames,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Filename string `json:"filename,omitempty"`

	NodesExplored int `json:"nodes_explored,omitempty"`
	Trials        int `json:"trials,omitempty"`
	FramesStepped int `json:"frames_stepped"`
}

// NewHandler creates the HTTP handler.
func NewHandler(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	s := &Server{cfg: cfg}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Post("/levels/{level}/solve", s.handleSolve)
	r.Get("/artifacts", s.handleListArtifacts)
	r.Get("/artifacts/{key}", s.handleGetArtifact)
	if cfg.Prom != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Prom, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	level := chi.URLParam(r, "level")
	ctx := r.Context()

	coord, release, err := s.cfg.Registry.Acquire(level)
	if err != nil {
		s.cfg.Logger.Error("failed to acquire solver", "level", level, "error", err)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	defer release()

	if s.cfg.Locker != nil {
		unlock, err := s.cfg.Locker.Lock(ctx, level, lockTTL)
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
			return
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				s.cfg.Logger.Warn("failed to release level lock (will expire via TTL)",
					"level", level,
					"err", err,
				)
			}
		}()
	}

	outcome, err := coord.Solve(ctx)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSearchInFlight):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			s.cfg.Logger.Error("solve failed", "level", level, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}

	resp := solveResponse{
		Found:         outcome.IsFound(),
		Reason:        string(outcome.Reason),
		NodesExplored: outcome.Stats.NodesExplored,
		Trials:        outcome.Stats.Trials,
		FramesStepped: outcome.Stats.FramesStepped,
	}
	if outcome.IsFound() {
		resp.Frames = len(outcome.Sequence)
		artifact, err := coord.Export(ctx, level)
		if err != nil {
			s.cfg.Logger.Error("export failed", "level", level, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		resp.Filename = artifact.Filename
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no artifact store configured"})
		return
	}
	keys, err := s.cfg.Store.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"artifacts": keys})
}

func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no artifact store configured"})
		return
	}
	key := chi.URLParam(r, "key")
	artifact, err := s.cfg.Store.Load(r.Context(), key)
	if errors.Is(err, domain.ErrArtifactNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "artifact not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
