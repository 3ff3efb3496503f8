package source

import (
	"context"
	"sort"

	"tablelens/domain/table"
	"tablelens/internal/errors"
	"tablelens/ports"
)

// Multi queries several sources in order. The first source that knows a
// table wins, so in-memory snapshots shadow database tables of the same
// name.
type Multi struct {
	sources []ports.ColumnSource
}

// NewMulti combines sources, earliest first
func NewMulti(sources ...ports.ColumnSource) *Multi {
	return &Multi{sources: sources}
}

// Table returns the named table from the first source that has it
func (m *Multi) Table(ctx context.Context, name string) (*table.Table, error) {
	var lastErr error
	for _, s := range m.sources {
		t, err := s.Table(ctx, name)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.NotFound("table " + name)
}

// ListTables returns the sorted union of all source listings
func (m *Multi) ListTables(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	for _, s := range m.sources {
		names, err := s.ListTables(ctx)
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			seen[n] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
