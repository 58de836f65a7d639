// Package api exposes the mention-network analysis over HTTP.
//
// The API recomputes the analysis from the stored corpus per request;
// the corpus is small (one search's worth of tweets) and rebuilding keeps
// the server stateless. Endpoints:
//
//	GET /healthz               liveness probe
//	GET /api/summary           corpus statistics
//	GET /api/top?k=10&kind=in  top-k ranking
//	GET /api/graph             graph as JSON (nodes + weighted edges)
//	GET /api/graph.graphml     graph in GraphML interchange format
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/jselig/mentionet/pkg/errors"
	"github.com/jselig/mentionet/pkg/graphio"
	"github.com/jselig/mentionet/pkg/mentiongraph"
	"github.com/jselig/mentionet/pkg/metrics"
	"github.com/jselig/mentionet/pkg/pipeline"
)

// Server serves analysis results over HTTP.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a Server over the given runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	return &Server{runner: runner, logger: logger}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/top", s.handleTop)
		r.Get("/graph", s.handleGraph)
		r.Get("/graph.graphml", s.handleGraphML)
	})
	return r
}

// requestID tags each request with a uuid and logs method, path, and
// duration on completion.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"id", id, "method", r.Method, "path", r.URL.Path,
			"took", time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	result, err := s.analyze(r, pipeline.Options{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":  result.Summary,
		"warnings": result.Warnings,
	})
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{}

	if v := r.URL.Query().Get("k"); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil || k < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid k: %q", v))
			return
		}
		opts.SetTopK(k)
	}
	kind, err := metrics.ParseDegreeKind(r.URL.Query().Get("kind"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.DegreeKind = kind

	result, err := s.analyze(r, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"kind":     kind,
		"rankings": result.Rankings,
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	result, err := s.analyze(r, pipeline.Options{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, graphJSON(result.Graph))
}

func (s *Server) handleGraphML(w http.ResponseWriter, r *http.Request) {
	result, err := s.analyze(r, pipeline.Options{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/graphml+xml")
	w.Header().Set("Content-Disposition", `attachment; filename="network.graphml"`)
	if err := graphio.Write(result.Graph, w); err != nil {
		s.logger.Error("write graphml response", "err", err)
	}
}

func (s *Server) analyze(r *http.Request, opts pipeline.Options) (*pipeline.Result, error) {
	opts.Logger = s.logger
	if r.URL.Query().Get("self_mentions") == "true" {
		opts.SelfMentions = true
	}
	return s.runner.Analyze(r.Context(), opts)
}

// graphJSON is the JSON wire form of a graph.
func graphJSON(g *mentiongraph.Graph) map[string]any {
	return map[string]any{
		"nodes": g.Nodes(),
		"edges": g.Edges(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDegreeKind:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeStore:
		status = http.StatusServiceUnavailable
	}
	s.logger.Error("request failed", "err", err)
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
