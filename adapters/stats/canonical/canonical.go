// Package canonical implements two-group canonical correlation analysis on
// top of the algebra kernel: covariance blocks, the generalized
// eigenproblems A = Sxx^-1 Sxy Syy^-1 Syx and B = Syy^-1 Syx Sxx^-1 Sxy,
// and Wilks' Lambda significance for each variate.
package canonical

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"tablelens/domain/analysis"
	"tablelens/domain/core"
	"tablelens/internal/algebra"
)

// MinSampleSize is the row floor below which the analysis refuses to run.
const MinSampleSize = 10

// Analyze runs CCA over a complete-row matrix whose columns are the left
// side followed by the right side. rows is N×(p+q) in that order.
func Analyze(leftColumns, rightColumns []string, rows [][]float64) (*analysis.CanonicalResult, error) {
	p := len(leftColumns)
	q := len(rightColumns)
	if p < 1 || q < 1 {
		return nil, core.ErrInsufficientVariables
	}
	n := len(rows)
	if n < MinSampleSize {
		return nil, core.ErrInsufficientData
	}

	X := mat.NewDense(n, p, nil)
	Y := mat.NewDense(n, q, nil)
	for i, row := range rows {
		for j := 0; j < p; j++ {
			X.Set(i, j, row[j])
		}
		for j := 0; j < q; j++ {
			Y.Set(i, j, row[p+j])
		}
	}

	sxx, err := algebra.Covariance(X)
	if err != nil {
		return nil, core.NewAnalysisFailedError("canonical", "", err)
	}
	syy, err := algebra.Covariance(Y)
	if err != nil {
		return nil, core.NewAnalysisFailedError("canonical", "", err)
	}
	sxy, err := algebra.CrossCovariance(X, Y)
	if err != nil {
		return nil, core.NewAnalysisFailedError("canonical", "", err)
	}
	syx := mat.DenseCopyOf(sxy.T())

	sxxInv, err := algebra.Inverse(sxx)
	if err != nil {
		return nil, core.NewAnalysisFailedError("canonical", leftColumns[0], err)
	}
	syyInv, err := algebra.Inverse(syy)
	if err != nil {
		return nil, core.NewAnalysisFailedError("canonical", rightColumns[0], err)
	}

	// A = Sxx^-1 Sxy Syy^-1 Syx (p×p), B = Syy^-1 Syx Sxx^-1 Sxy (q×q).
	A, err := chainMultiply(sxxInv, sxy, syyInv, syx)
	if err != nil {
		return nil, core.NewAnalysisFailedError("canonical", "", err)
	}
	B, err := chainMultiply(syyInv, syx, sxxInv, sxy)
	if err != nil {
		return nil, core.NewAnalysisFailedError("canonical", "", err)
	}

	decA, err := algebra.Eigen(A)
	if err != nil {
		return nil, core.NewAnalysisFailedError("canonical", "", err)
	}
	decB, err := algebra.Eigen(B)
	if err != nil {
		return nil, core.NewAnalysisFailedError("canonical", "", err)
	}

	k := p
	if q < k {
		k = q
	}

	// Canonical correlations from the k leading eigenvalues, clamped into
	// [0,1] against floating point drift.
	corrs := make([]float64, k)
	for i := 0; i < k; i++ {
		lambda := decA.Values[i]
		if lambda < 0 {
			lambda = 0
		}
		r := math.Sqrt(lambda)
		if r > 1 {
			r = 1
		}
		corrs[i] = r
	}

	sumSq := 0.0
	for _, r := range corrs {
		sumSq += r * r
	}

	variates := make([]analysis.CanonicalVariate, k)
	cumulative := 0.0
	for i := 0; i < k; i++ {
		share := 0.0
		if sumSq > 0 {
			share = corrs[i] * corrs[i] / sumSq * 100
		} else {
			// All correlations zero: distribute evenly so the
			// variance-explained invariant still holds.
			share = 100 / float64(k)
		}
		cumulative += share

		lambda := 1.0
		for j := i; j < k; j++ {
			lambda *= 1 - corrs[j]*corrs[j]
		}
		// Floor Lambda so a perfect correlation yields a large finite
		// statistic instead of an infinite one.
		logLambda := math.Log(math.Max(lambda, 1e-12))
		chi2 := -(float64(n) - 1 - (float64(p)+float64(q)+1)/2) * logLambda
		if chi2 < 0 || math.IsNaN(chi2) {
			chi2 = 0
		}

		df := float64((p - i) * (q - i))
		exact := 1.0
		if df > 0 && chi2 > 0 {
			exact = distuv.ChiSquared{K: df}.Survival(chi2)
		}

		variates[i] = analysis.CanonicalVariate{
			Correlation:        corrs[i],
			VarianceExplained:  share,
			CumulativeVariance: cumulative,
			WilksLambda:        lambda,
			ChiSquare:          chi2,
			PValue:             math.Exp(-chi2 / 2),
			PValueExact:        exact,
			LeftCoefficients:   column(decA.Vectors, i, p),
			RightCoefficients:  column(decB.Vectors, i, q),
		}
	}

	return &analysis.CanonicalResult{
		LeftColumns:  leftColumns,
		RightColumns: rightColumns,
		SampleSize:   n,
		Variates:     variates,
	}, nil
}

func chainMultiply(ms ...*mat.Dense) (*mat.Dense, error) {
	out := ms[0]
	for _, m := range ms[1:] {
		next, err := algebra.Multiply(out, m)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

func column(vectors *mat.Dense, idx, rows int) []float64 {
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = vectors.At(i, idx)
	}
	return out
}
