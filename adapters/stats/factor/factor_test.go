package factor

import (
	"errors"
	"math"
	"testing"

	"tablelens/domain/core"
)

func TestAnalyzePerfectlyCorrelated(t *testing.T) {
	// y = 2x + 1: all variance lives along one direction
	rows := make([][]float64, 20)
	for i := range rows {
		x := float64(i)
		rows[i] = []float64{x, 2*x + 1}
	}

	result, err := Analyze([]string{"x", "y"}, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(result.Components))
	}

	first := result.Components[0]
	if first.VarianceExplained < 99.9 {
		t.Errorf("first component explains %v%%, want ~100", first.VarianceExplained)
	}
	if len(first.Loadings) != 2 {
		t.Errorf("loadings length = %d, want 2", len(first.Loadings))
	}
	// Direction (1,2)/sqrt(5) up to sign
	ratio := first.Loadings[1] / first.Loadings[0]
	if math.Abs(ratio-2) > 1e-6 {
		t.Errorf("loading ratio = %v, want 2", ratio)
	}

	if result.Components[1].Eigenvalue > first.Eigenvalue {
		t.Error("components not ordered by descending eigenvalue")
	}
}

func TestAnalyzeVarianceSharesSum(t *testing.T) {
	rows := [][]float64{
		{1, 10, 3},
		{2, 8, 1},
		{3, 13, 4},
		{4, 9, 2},
		{5, 15, 6},
		{6, 11, 3},
	}
	result, err := Analyze([]string{"a", "b", "c"}, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total := 0.0
	for _, c := range result.Components {
		if c.VarianceExplained < 0 || c.VarianceExplained > 100 {
			t.Errorf("variance share out of range: %v", c.VarianceExplained)
		}
		total += c.VarianceExplained
	}
	if math.Abs(total-100) > 1e-6 {
		t.Errorf("variance shares sum to %v, want 100", total)
	}
}

func TestAnalyzeBounds(t *testing.T) {
	if _, err := Analyze([]string{"x"}, [][]float64{{1}, {2}, {3}}); !errors.Is(err, core.ErrInsufficientVariables) {
		t.Errorf("single column should fail, got %v", err)
	}
	if _, err := Analyze([]string{"x", "y"}, [][]float64{{1, 2}, {3, 4}}); !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("two rows should fail, got %v", err)
	}
}
