// Package ports defines the interfaces between the analysis engine and the
// surrounding application.
package ports

import (
	"context"

	"tablelens/domain/table"
)

// ColumnSource supplies read-only table snapshots to the engine. The
// engine never mutates a snapshot; callers needing a consistent view
// across several analyses should hold one snapshot and issue their calls
// against it.
type ColumnSource interface {
	Table(ctx context.Context, name string) (*table.Table, error)
	ListTables(ctx context.Context) ([]string, error)
}
