package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"token-launch-lab/internal/domain"
	"token-launch-lab/internal/observability"
	"token-launch-lab/internal/scenario"
)

// Server routes scenario requests to the runner and the run registry.
type Server struct {
	logger   *log.Logger
	registry *Registry
	runner   *scenario.Runner
	upgrader websocket.Upgrader
}

// NewServer creates a server with an empty registry.
func NewServer(logger *log.Logger) *Server {
	return &Server{
		logger:   logger,
		registry: NewRegistry(),
		runner:   scenario.NewRunner(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Routes builds the HTTP mux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/api/v1/scenario", s.handleRunScenario)
	mux.HandleFunc("/api/v1/runs/", s.handleGetRun)
	mux.HandleFunc("/ws/scenario", s.handleScenarioWS)
	return mux
}

// RunResponse wraps a finished run with its registry handle.
type RunResponse struct {
	Handle string                   `json:"handle"`
	Result *domain.SimulationResult `json:"result"`
}

// decodeConfig reads a config from the request body. Missing fields keep
// their defaults, so an empty body runs the reference scenario.
func decodeConfig(body *json.Decoder) (domain.ScenarioConfig, error) {
	cfg := scenario.DefaultConfig()
	err := body.Decode(&cfg)
	if errors.Is(err, io.EOF) {
		return cfg, nil
	}
	return cfg, err
}

// handleRunScenario runs one scenario synchronously and stores the result.
func (s *Server) handleRunScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg, err := decodeConfig(json.NewDecoder(r.Body))
	if err != nil {
		http.Error(w, "invalid config: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.runScenario(cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	handle := s.registry.Put(result)
	observability.UpdateRegistrySize(s.registry.Len())
	s.logger.Printf("Scenario run %s complete (handle %s, %d trades)",
		result.RunID[:8], handle, len(result.Trades))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RunResponse{Handle: handle, Result: result})
}

// handleGetRun fetches a stored run by handle.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	handle := strings.TrimPrefix(r.URL.Path, "/api/v1/runs/")
	result, ok := s.registry.Get(handle)
	if !ok {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RunResponse{Handle: handle, Result: result})
}

// WSFrame is one message on the scenario stream. Type is "snapshot" while
// the pool history replays, then a single "result" frame closes the stream.
type WSFrame struct {
	Type      string               `json:"type"`
	TimeIndex int                  `json:"time_index,omitempty"`
	Stable    *domain.PoolSnapshot `json:"stable,omitempty"`
	Upside    *domain.PoolSnapshot `json:"upside,omitempty"`
	Handle    string               `json:"handle,omitempty"`
	RunID     string               `json:"run_id,omitempty"`
}

// handleScenarioWS runs a scenario and replays its per-step pool snapshots
// over the socket. The client sends one JSON config message first; an empty
// object runs the reference scenario.
func (s *Server) handleScenarioWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	cfg := scenario.DefaultConfig()
	if _, msg, err := conn.ReadMessage(); err != nil {
		return
	} else if err := json.Unmarshal(msg, &cfg); err != nil {
		s.writeWSError(conn, "invalid config: "+err.Error())
		return
	}

	result, err := s.runScenario(cfg)
	if err != nil {
		s.writeWSError(conn, err.Error())
		return
	}
	handle := s.registry.Put(result)
	observability.UpdateRegistrySize(s.registry.Len())
	observability.RecordWSStream()

	for i := range result.StablePool.Snapshots {
		frame := WSFrame{
			Type:      "snapshot",
			TimeIndex: result.StablePool.Snapshots[i].TimeIndex,
			Stable:    &result.StablePool.Snapshots[i],
			Upside:    &result.UpsidePool.Snapshots[i],
		}
		if err := conn.WriteJSON(frame); err != nil {
			s.logger.Printf("WebSocket write failed: %v", err)
			return
		}
	}

	if err := conn.WriteJSON(WSFrame{Type: "result", Handle: handle, RunID: result.RunID}); err != nil {
		s.logger.Printf("WebSocket write failed: %v", err)
	}
}

// runScenario executes a run and records its outcome metrics.
func (s *Server) runScenario(cfg domain.ScenarioConfig) (*domain.SimulationResult, error) {
	start := time.Now()
	result, err := s.runner.Run(cfg)
	if err != nil {
		observability.RecordScenarioRun("error", time.Since(start).Seconds(), 0)
		return nil, err
	}
	observability.RecordScenarioRun("ok", time.Since(start).Seconds(), len(result.Trades))
	return result, nil
}

func (s *Server) writeWSError(conn *websocket.Conn, msg string) {
	if err := conn.WriteJSON(map[string]string{"type": "error", "error": msg}); err != nil {
		s.logger.Printf("WebSocket write failed: %v", err)
	}
}
