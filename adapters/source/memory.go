// Package source implements the ColumnSource port: in-memory snapshots,
// CSV/XLSX files, and Postgres tables all materialize into the same
// read-only table snapshot the engine consumes.
package source

import (
	"context"
	"sort"
	"sync"

	"tablelens/domain/core"
	"tablelens/domain/table"
)

// MemoryStore keeps registered snapshots keyed by table name. Snapshots
// are replaced wholesale, never mutated, so readers holding one keep a
// consistent view while new data loads.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]*table.Table
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]*table.Table)}
}

// Put registers or replaces a snapshot under its name
func (s *MemoryStore) Put(t *table.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t.Name] = t
}

// Table returns the snapshot registered under name
func (s *MemoryStore) Table(_ context.Context, name string) (*table.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[name]
	if !ok {
		return nil, core.NewNotFoundError("table", name)
	}
	return t, nil
}

// ListTables returns registered table names sorted alphabetically
func (s *MemoryStore) ListTables(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
