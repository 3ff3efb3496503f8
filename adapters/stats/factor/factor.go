// Package factor performs principal component / factor analysis by
// eigen-decomposing the sample covariance matrix.
package factor

import (
	"tablelens/domain/analysis"
	"tablelens/domain/core"
	"tablelens/internal/algebra"
)

// Analyze requires >= 2 numeric columns and >= 3 complete rows. Components
// come back ordered by descending eigenvalue with the percent of total
// variance each explains and per-variable loadings (eigenvector components
// keyed to the input column order).
func Analyze(columns []string, rows [][]float64) (*analysis.FactorResult, error) {
	if len(columns) < 2 {
		return nil, core.ErrInsufficientVariables
	}
	if len(rows) < 3 {
		return nil, core.ErrInsufficientData
	}

	X := algebra.Dense(rows)
	cov, err := algebra.Covariance(X)
	if err != nil {
		return nil, core.NewAnalysisFailedError("factor", "", err)
	}

	dec, err := algebra.Eigen(cov)
	if err != nil {
		return nil, core.NewAnalysisFailedError("factor", "", err)
	}

	total := 0.0
	for _, v := range dec.Values {
		if v > 0 {
			total += v
		}
	}

	p := len(columns)
	components := make([]analysis.FactorComponent, 0, p)
	for k, value := range dec.Values {
		loadings := make([]float64, p)
		for row := 0; row < p; row++ {
			loadings[row] = dec.Vectors.At(row, k)
		}
		ratio := 0.0
		if total > 0 && value > 0 {
			ratio = value / total * 100
		}
		components = append(components, analysis.FactorComponent{
			Eigenvalue:        value,
			VarianceExplained: ratio,
			Loadings:          loadings,
		})
	}

	return &analysis.FactorResult{Columns: columns, Components: components}, nil
}
