package correlation

import (
	"errors"
	"math"
	"testing"

	"tablelens/domain/core"
)

func TestMatrixPerfectCorrelations(t *testing.T) {
	// y = 2x + 1, z = -x
	columns := []string{"x", "y", "z"}
	rows := make([][]float64, 20)
	for i := range rows {
		x := float64(i)
		rows[i] = []float64{x, 2*x + 1, -x}
	}

	result, err := Matrix(columns, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := result.Matrix
	for i := range columns {
		if m[i][i] != 1.0 {
			t.Errorf("diagonal [%d][%d] = %v, want 1", i, i, m[i][i])
		}
		for j := range columns {
			if m[i][j] != m[j][i] {
				t.Errorf("matrix not symmetric at [%d][%d]", i, j)
			}
		}
	}
	if math.Abs(m[0][1]-1) > 1e-9 {
		t.Errorf("r(x,y) = %v, want 1", m[0][1])
	}
	if math.Abs(m[0][2]+1) > 1e-9 {
		t.Errorf("r(x,z) = %v, want -1", m[0][2])
	}
}

func TestMatrixConstantColumn(t *testing.T) {
	columns := []string{"x", "const"}
	rows := [][]float64{{1, 5}, {2, 5}, {3, 5}}

	result, err := Matrix(columns, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Matrix[0][1] != 0 {
		t.Errorf("correlation with constant column = %v, want 0", result.Matrix[0][1])
	}
}

func TestMatrixBounds(t *testing.T) {
	if _, err := Matrix([]string{"x"}, [][]float64{{1}, {2}}); !errors.Is(err, core.ErrInsufficientVariables) {
		t.Errorf("single column should fail, got %v", err)
	}
	if _, err := Matrix([]string{"x", "y"}, [][]float64{{1, 2}}); !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("single row should fail, got %v", err)
	}
}
