package algebra

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"tablelens/domain/core"
)

// Numerical thresholds shared across the kernel
const (
	pivotEpsilon = 1e-10 // Gauss-Jordan pivot floor
	eigenEpsilon = 1e-10 // QR iteration off-diagonal convergence
	maxQRSweeps  = 1000
)

// Dense converts an N×P row-major slice into a gonum matrix
func Dense(rows [][]float64) *mat.Dense {
	n := len(rows)
	if n == 0 {
		return &mat.Dense{}
	}
	p := len(rows[0])
	out := mat.NewDense(n, p, nil)
	for i, row := range rows {
		for j, v := range row {
			out.Set(i, j, v)
		}
	}
	return out
}

// ColumnMeans returns the per-column mean of X
func ColumnMeans(X *mat.Dense) []float64 {
	n, p := X.Dims()
	means := make([]float64, p)
	if n == 0 {
		return means
	}
	for j := 0; j < p; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += X.At(i, j)
		}
		means[j] = sum / float64(n)
	}
	return means
}

// Covariance returns the P×P sample covariance of X (Bessel n-1 denominator).
// The result is symmetric with per-column variances on the diagonal.
func Covariance(X *mat.Dense) (*mat.Dense, error) {
	n, p := X.Dims()
	if n < 2 {
		return nil, core.ErrInsufficientData
	}
	means := ColumnMeans(X)
	cov := mat.NewDense(p, p, nil)
	for a := 0; a < p; a++ {
		for b := a; b < p; b++ {
			sum := 0.0
			for i := 0; i < n; i++ {
				sum += (X.At(i, a) - means[a]) * (X.At(i, b) - means[b])
			}
			v := sum / float64(n-1)
			cov.Set(a, b, v)
			cov.Set(b, a, v)
		}
	}
	return cov, nil
}

// CrossCovariance returns the P×Q sample cross-covariance of X and Y,
// which must share their row count.
func CrossCovariance(X, Y *mat.Dense) (*mat.Dense, error) {
	n, p := X.Dims()
	ny, q := Y.Dims()
	if n != ny {
		return nil, core.ErrDimensionMismatch
	}
	if n < 2 {
		return nil, core.ErrInsufficientData
	}
	mx := ColumnMeans(X)
	my := ColumnMeans(Y)
	cov := mat.NewDense(p, q, nil)
	for a := 0; a < p; a++ {
		for b := 0; b < q; b++ {
			sum := 0.0
			for i := 0; i < n; i++ {
				sum += (X.At(i, a) - mx[a]) * (Y.At(i, b) - my[b])
			}
			cov.Set(a, b, sum/float64(n-1))
		}
	}
	return cov, nil
}

// Multiply returns A·B, failing instead of panicking on an inner-dimension
// mismatch so the facade can surface a typed error.
func Multiply(A, B mat.Matrix) (*mat.Dense, error) {
	_, k := A.Dims()
	kb, _ := B.Dims()
	if k != kb {
		return nil, core.ErrDimensionMismatch
	}
	var out mat.Dense
	out.Mul(A, B)
	return &out, nil
}

// Inverse computes A^-1 by Gauss-Jordan elimination with partial pivoting
// on absolute value. A pivot below pivotEpsilon after row interchange
// means the matrix is singular.
func Inverse(A *mat.Dense) (*mat.Dense, error) {
	n, m := A.Dims()
	if n != m {
		return nil, core.ErrDimensionMismatch
	}

	// Augment [A | I] and reduce in place.
	work := make([][]float64, n)
	for i := 0; i < n; i++ {
		work[i] = make([]float64, 2*n)
		for j := 0; j < n; j++ {
			work[i][j] = A.At(i, j)
		}
		work[i][n+i] = 1
	}

	for col := 0; col < n; col++ {
		pivotRow := col
		for r := col + 1; r < n; r++ {
			if math.Abs(work[r][col]) > math.Abs(work[pivotRow][col]) {
				pivotRow = r
			}
		}
		work[col], work[pivotRow] = work[pivotRow], work[col]

		pivot := work[col][col]
		if math.Abs(pivot) < pivotEpsilon {
			return nil, core.ErrSingularMatrix
		}

		inv := 1 / pivot
		for j := 0; j < 2*n; j++ {
			work[col][j] *= inv
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := work[r][col]
			if factor == 0 {
				continue
			}
			for j := 0; j < 2*n; j++ {
				work[r][j] -= factor * work[col][j]
			}
		}
	}

	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, work[i][n+j])
		}
	}
	return out, nil
}

// EigenDecomposition holds eigenvalues sorted descending with the matching
// eigenvector columns.
type EigenDecomposition struct {
	Values  []float64
	Vectors *mat.Dense // column i corresponds to Values[i]
}

// Eigen runs unshifted QR iteration: factor A = QR by Gram-Schmidt, set
// A <- RQ, and repeat until every off-diagonal entry falls below
// eigenEpsilon or maxQRSweeps elapse. Eigenvalues are read off the
// converged diagonal; eigenvectors are the accumulated Q products.
func Eigen(A *mat.Dense) (*EigenDecomposition, error) {
	n, m := A.Dims()
	if n != m {
		return nil, core.ErrDimensionMismatch
	}
	if n == 0 {
		return &EigenDecomposition{Values: nil, Vectors: &mat.Dense{}}, nil
	}

	work := mat.DenseCopyOf(A)
	accum := identity(n)

	for sweep := 0; sweep < maxQRSweeps; sweep++ {
		if offDiagonalBelow(work, eigenEpsilon) {
			break
		}
		Q, R := gramSchmidtQR(work)
		work.Mul(R, Q)
		accum.Mul(accum, Q)
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = work.At(i, i)
	}

	// Order by descending eigenvalue, carrying vector columns along.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})

	sortedValues := make([]float64, n)
	vectors := mat.NewDense(n, n, nil)
	for dst, src := range order {
		sortedValues[dst] = values[src]
		for row := 0; row < n; row++ {
			vectors.Set(row, dst, accum.At(row, src))
		}
	}

	return &EigenDecomposition{Values: sortedValues, Vectors: vectors}, nil
}

// gramSchmidtQR factors A = QR using classical Gram-Schmidt
// orthogonalization. Degenerate columns yield a zero Q column with a zero
// diagonal in R, which is sufficient for the covariance-style inputs the
// engine feeds through here.
func gramSchmidtQR(A *mat.Dense) (*mat.Dense, *mat.Dense) {
	n, _ := A.Dims()
	Q := mat.NewDense(n, n, nil)
	R := mat.NewDense(n, n, nil)

	col := make([]float64, n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			col[i] = A.At(i, j)
		}
		for k := 0; k < j; k++ {
			dot := 0.0
			for i := 0; i < n; i++ {
				dot += Q.At(i, k) * A.At(i, j)
			}
			R.Set(k, j, dot)
			for i := 0; i < n; i++ {
				col[i] -= dot * Q.At(i, k)
			}
		}
		norm := 0.0
		for i := 0; i < n; i++ {
			norm += col[i] * col[i]
		}
		norm = math.Sqrt(norm)
		R.Set(j, j, norm)
		if norm > pivotEpsilon {
			for i := 0; i < n; i++ {
				Q.Set(i, j, col[i]/norm)
			}
		}
	}
	return Q, R
}

func offDiagonalBelow(A *mat.Dense, eps float64) bool {
	n, _ := A.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && math.Abs(A.At(i, j)) >= eps {
				return false
			}
		}
	}
	return true
}

func identity(n int) *mat.Dense {
	I := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		I.Set(i, i, 1)
	}
	return I
}
