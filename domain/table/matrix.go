package table

import (
	"tablelens/domain/core"
)

// ============================================================================
// EXTRACTION — filtered numeric/categorical projections
// ============================================================================

// NumericMatrix returns an N×P matrix of floats for the requested columns,
// after applying active filters and excluding any row with a missing or
// non-numeric value in a requested column. Column order matches the request.
func (t *Table) NumericMatrix(columns []string, filters []Filter, flags MissingFlags) ([][]float64, error) {
	indices := make([]int, len(columns))
	for i, c := range columns {
		idx := t.ColumnIndex(c)
		if idx < 0 {
			return nil, core.NewNotFoundError("column", c)
		}
		indices[i] = idx
	}

	matrix := make([][]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if !t.MatchRow(row, filters) {
			continue
		}
		out := make([]float64, len(indices))
		complete := true
		for j, idx := range indices {
			if idx >= len(row) || flags.missing(row[idx]) {
				complete = false
				break
			}
			num, ok := row[idx].AsNumber()
			if !ok {
				complete = false
				break
			}
			out[j] = num
		}
		if complete {
			matrix = append(matrix, out)
		}
	}
	return matrix, nil
}

// NumericColumn returns the filtered values of a single column, dropping
// missing and non-numeric cells. Used by analyses that inspect columns
// independently rather than requiring complete rows.
func (t *Table) NumericColumn(column string, filters []Filter, flags MissingFlags) ([]float64, error) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil, core.NewNotFoundError("column", column)
	}
	values := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx >= len(row) || !t.MatchRow(row, filters) || flags.missing(row[idx]) {
			continue
		}
		if num, ok := row[idx].AsNumber(); ok {
			values = append(values, num)
		}
	}
	return values, nil
}

// CategoricalRows returns filtered rows as string labels for the requested
// columns, excluding rows with a missing value in any requested column.
// Numbers are formatted with their shortest exact representation so that the
// same value always maps to the same category label.
func (t *Table) CategoricalRows(columns []string, filters []Filter, flags MissingFlags) ([][]string, error) {
	indices := make([]int, len(columns))
	for i, c := range columns {
		idx := t.ColumnIndex(c)
		if idx < 0 {
			return nil, core.NewNotFoundError("column", c)
		}
		indices[i] = idx
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if !t.MatchRow(row, filters) {
			continue
		}
		out := make([]string, len(indices))
		complete := true
		for j, idx := range indices {
			if idx >= len(row) || flags.missing(row[idx]) {
				complete = false
				break
			}
			out[j] = row[idx].Label()
		}
		if complete {
			rows = append(rows, out)
		}
	}
	return rows, nil
}
