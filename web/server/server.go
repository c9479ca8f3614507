// Package server exposes a running simulation to a host page over HTTP.
// State crosses the boundary as flat numeric arrays; frames can be pulled
// one at a time or streamed via SSE. All simulation access is serialized by
// a mutex so mutations land strictly between frames.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"gargantua/pkg/simulation"
)

// Server handles web requests for the geodesic simulator
type Server struct {
	port int
	mu   sync.Mutex
	sim  *simulation.Simulation
}

// NewServer creates a server wrapping the given simulation
func NewServer(port int, sim *simulation.Simulation) *Server {
	return &Server{port: port, sim: sim}
}

// StateResponse is one simulation snapshot sent to the client
type StateResponse struct {
	Rays      []float64 `json:"rays"`      // (x, y, live) triples in spawn order
	BlackHole []float64 `json:"blackHole"` // x, y, Schwarzschild radius
	RayCount  int       `json:"rayCount"`
	Frame     int       `json:"frame"`
	Live      int       `json:"live"`
	Disabled  int       `json:"disabled"`
}

// FrameEvent is a single SSE frame pushed by the stream endpoint
type FrameEvent struct {
	State     StateResponse `json:"state"`
	ElapsedMs int64         `json:"elapsedMs"`
}

// Handler builds the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/", http.FileServer(http.Dir("static/")))

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/trails", s.handleTrails)
	mux.HandleFunc("/api/info", s.handleInfo)
	mux.HandleFunc("/api/update", s.handleUpdate)
	mux.HandleFunc("/api/mass", s.handleMass)
	mux.HandleFunc("/api/rays", s.handleRayCount)
	mux.HandleFunc("/api/reset", s.handleReset)
	mux.HandleFunc("/api/stream", s.handleStream)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting simulation server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// snapshot captures the current state under the lock
func (s *Server) snapshot() StateResponse {
	stats := s.sim.Stats()
	return StateResponse{
		Rays:      s.sim.RayPositions(),
		BlackHole: s.sim.BlackHoleSnapshot(),
		RayCount:  s.sim.RayCount(),
		Frame:     stats.Frame,
		Live:      stats.Live,
		Disabled:  stats.Disabled,
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, map[string]string{"status": "ok"})
}

// handleState returns the current snapshot without advancing the simulation
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	state := s.snapshot()
	s.mu.Unlock()

	s.sendJSON(w, state)
}

// handleTrails returns every ray's trail as a flat (x, y) array
func (s *Server) handleTrails(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	trails := s.sim.Trails()
	flat := make([][]float64, len(trails))
	for i, trail := range trails {
		flat[i] = make([]float64, 0, 2*len(trail))
		for _, p := range trail {
			flat[i] = append(flat[i], p.X, p.Y)
		}
	}
	s.mu.Unlock()

	s.sendJSON(w, map[string][][]float64{"trails": flat})
}

// handleInfo returns the human-readable status string
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	info := s.sim.Info()
	s.mu.Unlock()

	s.sendJSON(w, map[string]string{"info": info})
}

// handleUpdate advances exactly one frame and returns the new snapshot
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.sendError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	s.mu.Lock()
	s.sim.Update()
	state := s.snapshot()
	s.mu.Unlock()

	s.sendJSON(w, state)
}

// handleMass sets the black hole mass. Rays keep their frozen energy
// constants; the client resets if it wants a consistent population.
func (s *Server) handleMass(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.sendError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	mass, err := parseFloatParam(r.URL.Query(), "value", -1)
	if err != nil || mass <= 0 {
		s.sendError(w, http.StatusBadRequest, "value must be a positive mass in kg")
		return
	}

	s.mu.Lock()
	s.sim.SetBlackHoleMass(mass)
	state := s.snapshot()
	s.mu.Unlock()

	log.Printf("Black hole mass set to %g kg", mass)
	s.sendJSON(w, state)
}

// handleRayCount resizes the ray population
func (s *Server) handleRayCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.sendError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	count, err := parseIntParam(r.URL.Query(), "count", -1)
	if err != nil || count < 0 {
		s.sendError(w, http.StatusBadRequest, "count must be a non-negative integer")
		return
	}

	s.mu.Lock()
	s.sim.SetRayCount(count)
	state := s.snapshot()
	s.mu.Unlock()

	log.Printf("Ray count set to %d", count)
	s.sendJSON(w, state)
}

// handleReset respawns the initial ray fan
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.sendError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	s.mu.Lock()
	s.sim.Reset()
	state := s.snapshot()
	s.mu.Unlock()

	log.Printf("Simulation reset")
	s.sendJSON(w, state)
}

// handleStream drives the simulation server-side and pushes one SSE frame
// event per step until the client disconnects or the frame limit is hit.
// Query parameters: fps (default 30, max 120) and frames (0 = unlimited).
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	fps, err := parseIntParam(r.URL.Query(), "fps", 30)
	if err != nil || fps <= 0 || fps > 120 {
		s.sendSSEError(w, "fps must be between 1 and 120")
		return
	}
	limit, err := parseIntParam(r.URL.Query(), "frames", 0)
	if err != nil || limit < 0 {
		s.sendSSEError(w, "frames must be a non-negative integer")
		return
	}

	ctx := r.Context()
	start := time.Now()
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for sent := 0; limit == 0 || sent < limit; sent++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		s.sim.Update()
		state := s.snapshot()
		s.mu.Unlock()

		event := FrameEvent{State: state, ElapsedMs: time.Since(start).Milliseconds()}
		if err := s.sendSSEFrame(w, event); err != nil {
			return
		}
	}

	s.sendSSEEvent(w, "complete", "Frame limit reached")
}

// sendJSON writes a JSON response
func (s *Server) sendJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// sendError writes a JSON error response
func (s *Server) sendError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// sendSSEFrame sends a frame event via SSE
func (s *Server) sendSSEFrame(w http.ResponseWriter, event FrameEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "frame", string(data))
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}

// parseIntParam parses an integer parameter from URL query with a default
func parseIntParam(values url.Values, key string, defaultValue int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with a default
func parseFloatParam(values url.Values, key string, defaultValue float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
