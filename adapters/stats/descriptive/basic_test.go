package descriptive

import (
	"errors"
	"math"
	"testing"

	"tablelens/domain/core"
)

func TestSummarizeKnownSeries(t *testing.T) {
	result, err := Summarize([]string{"v"}, [][]float64{{1, 2, 3, 4, 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Columns) != 1 {
		t.Fatalf("expected 1 column, got %d", len(result.Columns))
	}

	cs := result.Columns[0]
	if cs.Count != 5 {
		t.Errorf("count = %d, want 5", cs.Count)
	}
	if math.Abs(cs.Mean-3) > 1e-9 {
		t.Errorf("mean = %v, want 3", cs.Mean)
	}
	// Sample standard deviation with n-1 denominator
	if math.Abs(cs.StdDev-math.Sqrt(2.5)) > 1e-9 {
		t.Errorf("stddev = %v, want sqrt(2.5)", cs.StdDev)
	}
	if cs.Min != 1 || cs.Max != 5 || cs.Median != 3 {
		t.Errorf("min/median/max = %v/%v/%v, want 1/3/5", cs.Min, cs.Median, cs.Max)
	}
	if cs.Q25 > cs.Median || cs.Median > cs.Q75 {
		t.Errorf("quartiles out of order: q25=%v median=%v q75=%v", cs.Q25, cs.Median, cs.Q75)
	}
}

func TestSummarizeIndependentSeries(t *testing.T) {
	// Per-column missing exclusion produces differing lengths; both summarize.
	result, err := Summarize([]string{"a", "b"}, [][]float64{{1, 2, 3}, {10, 20}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Columns[0].Count != 3 || result.Columns[1].Count != 2 {
		t.Errorf("counts = %d/%d, want 3/2", result.Columns[0].Count, result.Columns[1].Count)
	}
}

func TestSummarizeErrors(t *testing.T) {
	if _, err := Summarize([]string{"a", "b"}, [][]float64{{1}}); !errors.Is(err, core.ErrDimensionMismatch) {
		t.Errorf("column/series mismatch should fail, got %v", err)
	}
	if _, err := Summarize([]string{"a"}, [][]float64{{}}); !errors.Is(err, core.ErrInvalidColumn) {
		t.Errorf("empty series should fail, got %v", err)
	}
}

func TestHistogramEqualWidth(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	result, err := Histogram("v", data, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BinCount != 5 || len(result.Bins) != 5 {
		t.Fatalf("expected 5 bins, got %d", len(result.Bins))
	}

	total := 0
	for i, bin := range result.Bins {
		total += bin.Count
		if bin.Count != 2 {
			t.Errorf("bin %d count = %d, want 2", i, bin.Count)
		}
	}
	if total != len(data) {
		t.Errorf("bin counts sum to %d, want %d", total, len(data))
	}

	// Maximum value lands in the last bin, not past it
	last := result.Bins[len(result.Bins)-1]
	if last.Upper != 9 {
		t.Errorf("last bin upper = %v, want 9", last.Upper)
	}
}

func TestHistogramConstantSeries(t *testing.T) {
	result, err := Histogram("v", []float64{4, 4, 4}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BinCount != 1 || len(result.Bins) != 1 {
		t.Fatalf("constant series should collapse to one bin, got %d", len(result.Bins))
	}
	if result.Bins[0].Count != 3 {
		t.Errorf("bin count = %d, want 3", result.Bins[0].Count)
	}
}

func TestHistogramDefaultBins(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i)
	}
	result, err := Histogram("v", data, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BinCount != 10 {
		t.Errorf("default bin count = %d, want 10", result.BinCount)
	}
}
