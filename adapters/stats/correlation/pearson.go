// Package correlation computes pairwise Pearson coefficients over a
// complete-row numeric matrix.
package correlation

import (
	"math"

	"github.com/montanaflynn/stats"

	"tablelens/domain/analysis"
	"tablelens/domain/core"
)

// Matrix computes the full symmetric Pearson matrix for the given columns.
// rows is the N×P complete-row projection with column order matching columns.
func Matrix(columns []string, rows [][]float64) (*analysis.CorrelationResult, error) {
	p := len(columns)
	if p < 2 {
		return nil, core.ErrInsufficientVariables
	}
	if len(rows) < 2 {
		return nil, core.ErrInsufficientData
	}

	series := make([][]float64, p)
	for j := 0; j < p; j++ {
		series[j] = make([]float64, len(rows))
		for i, row := range rows {
			series[j][i] = row[j]
		}
	}

	matrix := make([][]float64, p)
	for i := range matrix {
		matrix[i] = make([]float64, p)
		matrix[i][i] = 1.0
	}

	for i := 0; i < p; i++ {
		for j := i + 1; j < p; j++ {
			r, err := stats.Pearson(series[i], series[j])
			if err != nil || math.IsNaN(r) {
				// Zero-variance column: correlation is undefined, report 0.
				r = 0
			}
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	return &analysis.CorrelationResult{Columns: columns, Matrix: matrix}, nil
}
