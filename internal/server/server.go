// Package server exposes the analysis pipeline over HTTP.
//
// The server runs at most one pipeline run at a time, mirroring how the
// pipeline is operated interactively: starting a run while another is in
// flight returns 409 Conflict. Completed runs are kept in memory and their
// manifests and artifacts can be fetched by run id.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phytolab/herbnet/pkg/pipeline"
)

// runState tracks one pipeline run from acceptance to completion.
type runState struct {
	ID       string             `json:"id"`
	Status   string             `json:"status"` // running, done, failed
	Error    string             `json:"error,omitempty"`
	Manifest *pipeline.Manifest `json:"manifest,omitempty"`

	artifacts map[string][]byte
}

// Server wraps a pipeline runner with an HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger

	mu      sync.Mutex
	running bool
	runs    map[string]*runState
	latest  *runState
}

// New creates a server around the given runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		logger: logger,
		runs:   make(map[string]*runState),
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/runs", s.handleStartRun)
	r.Get("/runs/{id}", s.handleGetRun)
	r.Get("/runs/{id}/artifacts", s.handleListArtifacts)
	r.Get("/runs/{id}/artifacts/{name}", s.handleGetArtifact)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStartRun accepts pipeline options and starts a run in the
// background. At most one run is in flight: a second request while one is
// running gets 409.
func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "a run is already in progress")
		return
	}
	s.running = true
	s.mu.Unlock()

	// The request context dies with the response; the run must not.
	go s.execute(context.WithoutCancel(r.Context()), opts)

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// execute runs the pipeline and records the outcome.
func (s *Server) execute(ctx context.Context, opts pipeline.Options) {
	opts.Logger = s.logger
	result, err := s.runner.Execute(ctx, opts)

	state := &runState{Status: "done"}
	switch {
	case err != nil:
		state.Status = "failed"
		state.Error = err.Error()
		s.logger.Error("run failed", "err", err)
	default:
		state.ID = result.Manifest.RunID
		state.Manifest = &result.Manifest
		state.artifacts = result.Artifacts
		s.logger.Info("run finished",
			"id", state.ID,
			"nodes", result.Stats.NodeCount,
			"edges", result.Stats.EdgeCount)
	}

	s.mu.Lock()
	s.running = false
	if state.ID != "" {
		s.runs[state.ID] = state
	}
	s.latest = state
	s.mu.Unlock()
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	state := s.run(chi.URLParam(r, "id"))
	if state == nil {
		writeError(w, http.StatusNotFound, "unknown run")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	state := s.run(chi.URLParam(r, "id"))
	if state == nil {
		writeError(w, http.StatusNotFound, "unknown run")
		return
	}
	names := make([]string, 0, len(state.artifacts))
	for name := range state.artifacts {
		names = append(names, name)
	}
	sort.Strings(names)
	writeJSON(w, http.StatusOK, map[string][]string{"artifacts": names})
}

func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	state := s.run(chi.URLParam(r, "id"))
	if state == nil {
		writeError(w, http.StatusNotFound, "unknown run")
		return
	}
	name := chi.URLParam(r, "name")
	data, ok := state.artifacts[name]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown artifact")
		return
	}
	w.Header().Set("Content-Type", artifactContentType(name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// run looks up a run by id. The id "latest" resolves to the most recently
// finished run.
func (s *Server) run(id string) *runState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "latest" {
		return s.latest
	}
	return s.runs[id]
}

func artifactContentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".svg"):
		return "image/svg+xml"
	case strings.HasSuffix(name, ".png"):
		return "image/png"
	case strings.HasSuffix(name, ".json"):
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
