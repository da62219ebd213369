/*
store.go - Persistence interface for planner state

PURPOSE:
  The engine owns the in-memory state; a StateStore keeps it durable.
  The composition root loads once at startup and wires Save as the
  engine's commit hook, so persistence happens after every successful
  mutation and nowhere else.

IMPLEMENTATIONS:
  - store/sqlite:       SQLite-backed (production)
  - planner/store:      In-memory (tests/dev)
*/
package planner

import "context"

// StateStore persists the whole planner store.
type StateStore interface {
	// Load returns the persisted store, or (nil, nil) when nothing has
	// been saved yet.
	Load(ctx context.Context) (*Store, error)

	// Save replaces the persisted store.
	Save(ctx context.Context, s *Store) error
}
