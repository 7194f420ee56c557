package stream

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"cell-society/internal/core"
	"cell-society/internal/plot"
)

// Server owns a grid, advances it at a fixed rate and serves its state over
// HTTP. Every access to the grid goes through the server's lock.
type Server struct {
	mu     sync.Mutex
	g      *core.Grid
	hub    *Hub
	chart  *plot.Recorder
	pace   *core.FixedStep
	paused bool
	limit  int
}

// NewServer wires hub and a population chart to g. A positive limit stops
// stepping at that generation.
func NewServer(g *core.Grid, sps, limit int) *Server {
	s := &Server{
		g:     g,
		hub:   NewHub(),
		chart: plot.NewRecorder(g),
		pace:  core.NewFixedStep(sps),
		limit: limit,
	}
	g.Observe(s.hub)
	g.Observe(s.chart)
	return s
}

// Hub returns the server's broadcaster.
func (s *Server) Hub() *Hub { return s.hub }

// Run steps the grid until ctx is cancelled or a step fails.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.pace.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.advance(); err != nil {
				return err
			}
		}
	}
}

func (s *Server) advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for n := s.pace.Due(); n > 0; n-- {
		if s.paused || (s.limit > 0 && s.g.Generation() >= s.limit) {
			return nil
		}
		if err := s.g.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Close stops the broadcaster.
func (s *Server) Close() error { return s.hub.Close() }

// Handler routes the server's endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /ws", s.hub)
	mux.HandleFunc("GET /frame", s.handleFrame)
	mux.HandleFunc("GET /parameters", s.handleParameters)
	mux.HandleFunc("GET /plot.png", s.handlePlot)
	mux.HandleFunc("POST /step", s.handleStep)
	mux.HandleFunc("POST /cycle", s.handleCycle)
	mux.HandleFunc("POST /pause", s.handlePause)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// GET /frame
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	f := FrameOf(s.g)
	s.mu.Unlock()
	writeJSON(w, f)
}

// GET /parameters
func (s *Server) handleParameters(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	p := s.g.Parameters()
	s.mu.Unlock()
	writeJSON(w, p)
}

// GET /plot.png
func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	if err := s.chart.Render(w); err != nil {
		http.Error(w, "cannot render plot: "+err.Error(), http.StatusServiceUnavailable)
	}
}

// POST /step?n=1
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	n := 1
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			http.Error(w, "n must be a positive integer", http.StatusBadRequest)
			return
		}
		n = parsed
	}
	s.mu.Lock()
	err := s.g.Run(n)
	f := FrameOf(s.g)
	s.mu.Unlock()
	if err != nil {
		slog.Error("step failed", "generation", f.Generation, "err", err)
		http.Error(w, "step failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, f)
}

// POST /cycle?row=R&col=C
func (s *Server) handleCycle(w http.ResponseWriter, r *http.Request) {
	row, errR := strconv.Atoi(r.URL.Query().Get("row"))
	col, errC := strconv.Atoi(r.URL.Query().Get("col"))
	if errR != nil || errC != nil {
		http.Error(w, "row and col are required integers", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	err := s.g.Cycle(row, col)
	var state int
	if err == nil {
		state, _ = s.g.CurrentState(row, col)
	}
	s.mu.Unlock()
	if errors.Is(err, core.ErrOutOfRange) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]int{"row": row, "col": col, "state": state})
}

// POST /pause toggles stepping.
func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.paused = !s.paused
	paused := s.paused
	s.pace.Reset()
	s.mu.Unlock()
	writeJSON(w, map[string]bool{"paused": paused})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "cannot encode: "+err.Error(), http.StatusInternalServerError)
	}
}
