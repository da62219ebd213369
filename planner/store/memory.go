// Package store provides StateStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/timeoff-planner/planner"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu    sync.RWMutex
	state *planner.Store
}

func NewMemory() *Memory {
	return &Memory{}
}

// Load returns a deep copy of the saved state, or nil when empty.
func (m *Memory) Load(_ context.Context) (*planner.Store, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state == nil {
		return nil, nil
	}
	return m.state.Clone(), nil
}

// Save keeps a deep copy so later mutations of the live store don't
// leak into the "persisted" state.
func (m *Memory) Save(_ context.Context, s *planner.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s.Clone()
	return nil
}
