// Package server exposes scenario runs over HTTP and WebSocket. All
// results live in an in-memory registry; nothing persists across restarts.
package server

import (
	"sync"

	"github.com/google/uuid"

	"token-launch-lab/internal/domain"
)

// Registry keeps finished runs in memory, keyed by an opaque handle.
// The handle is distinct from the result's RunID: two runs with the same
// config hash to the same RunID but still get separate handles.
type Registry struct {
	mu   sync.RWMutex
	runs map[string]*domain.SimulationResult
}

// NewRegistry creates an empty run registry.
func NewRegistry() *Registry {
	return &Registry{runs: make(map[string]*domain.SimulationResult)}
}

// Put stores a finished run and returns its handle.
func (r *Registry) Put(result *domain.SimulationResult) string {
	handle := uuid.NewString()
	r.mu.Lock()
	r.runs[handle] = result
	r.mu.Unlock()
	return handle
}

// Get returns the run stored under handle, if any.
func (r *Registry) Get(handle string) (*domain.SimulationResult, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.runs[handle]
	return result, ok
}

// Len returns the number of stored runs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.runs)
}
