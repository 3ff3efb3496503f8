package table

import (
	"math"
	"strconv"
	"strings"

	"tablelens/domain/core"
)

// ============================================================================
// TABLE SNAPSHOT — Immutable tabular projection consumed by the engine
// ============================================================================

// ValueKind discriminates cell contents
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindText
)

// Value is a single cell. Cells are immutable once the snapshot is built.
type Value struct {
	Kind   ValueKind `json:"kind"`
	Number float64   `json:"number,omitempty"`
	Text   string    `json:"text,omitempty"`
}

// NullValue returns an explicit null cell
func NullValue() Value {
	return Value{Kind: KindNull}
}

// NumberValue wraps a float64 cell
func NumberValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NullValue()
	}
	return Value{Kind: KindNumber, Number: f}
}

// TextValue wraps a text cell, coercing numeric-looking text to a number
func TextValue(s string) Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return NullValue()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumberValue(f)
	}
	return Value{Kind: KindText, Text: s}
}

// IsNull reports whether the cell carries no value
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// AsNumber returns the numeric value and whether the cell is numeric
func (v Value) AsNumber() (float64, bool) {
	if v.Kind == KindNumber {
		return v.Number, true
	}
	return 0, false
}

// Label returns a stable string form used for categorical analyses
func (v Value) Label() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case KindText:
		return v.Text
	default:
		return ""
	}
}

// Table is an in-memory snapshot of tabular data. The engine never mutates
// it; every analysis call reads from one snapshot and allocates its own
// working matrices.
type Table struct {
	Name    string         `json:"name"`
	Columns []string       `json:"columns"`
	Rows    [][]Value      `json:"rows"`
	ID      core.SnapshotID `json:"id"`
}

// New builds a snapshot from column names and rows
func New(name string, columns []string, rows [][]Value) *Table {
	return &Table{
		Name:    name,
		Columns: columns,
		Rows:    rows,
		ID:      core.SnapshotID(core.NewID()),
	}
}

// ColumnIndex returns the position of a column, or -1 when absent
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the snapshot carries the named column
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// RowCount returns the number of rows in the snapshot
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// MissingFlags control how ambiguous cells are treated during extraction
type MissingFlags struct {
	TreatEmptyAsMissing bool `json:"treat_empty_as_missing"`
	TreatZeroAsMissing  bool `json:"treat_zero_as_missing"`
}

// missing applies the flags to a single cell
func (f MissingFlags) missing(v Value) bool {
	if v.IsNull() {
		return true
	}
	if f.TreatEmptyAsMissing && v.Kind == KindText && strings.TrimSpace(v.Text) == "" {
		return true
	}
	if f.TreatZeroAsMissing && v.Kind == KindNumber && v.Number == 0 {
		return true
	}
	return false
}
