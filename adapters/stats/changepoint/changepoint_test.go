package changepoint

import (
	"math"
	"testing"

	"tablelens/domain/analysis"
)

func TestAllDetectors_ConstantSeriesYieldsNothing(t *testing.T) {
	engine := NewEngine()
	constant := make([]float64, 50)
	for i := range constant {
		constant[i] = 7.25
	}

	for _, algo := range engine.List() {
		points, err := engine.Detect(algo, constant, analysis.ChangePointParams{})
		if err != nil {
			t.Fatalf("%s returned error: %v", algo, err)
		}
		if len(points) != 0 {
			t.Errorf("%s flagged %d points on a constant series", algo, len(points))
		}
	}
}

func TestAllDetectors_ConfidenceBounds(t *testing.T) {
	engine := NewEngine()

	// Noisy series with a genuine level shift.
	series := make([]float64, 60)
	for i := range series {
		base := 1.0
		if i >= 30 {
			base = 12.0
		}
		series[i] = base + math.Sin(float64(i)*1.7)
	}

	for _, algo := range engine.List() {
		points, err := engine.Detect(algo, series, analysis.ChangePointParams{})
		if err != nil {
			t.Fatalf("%s returned error: %v", algo, err)
		}
		for _, p := range points {
			if p.Confidence < 0 || p.Confidence > 1 {
				t.Errorf("%s confidence out of [0,1]: %f", algo, p.Confidence)
			}
			if p.Algorithm != algo {
				t.Errorf("point tagged %s, expected %s", p.Algorithm, algo)
			}
			if p.Index < 0 || p.Index >= len(series) {
				t.Errorf("%s index out of range: %d", algo, p.Index)
			}
			if p.Value != series[p.Index] {
				t.Errorf("%s value mismatch at %d", algo, p.Index)
			}
		}
	}
}

func TestMovingAverage_StepSeriesScenario(t *testing.T) {
	detector := NewMovingAverageDetector()
	series := []float64{1, 1, 1, 1, 10, 10, 10, 10}

	points := detector.Detect(series, analysis.ChangePointParams{}.Defaults())

	if len(points) != 1 {
		t.Fatalf("expected exactly one change point, got %d", len(points))
	}
	if got := points[0].Index; got < 3 || got > 5 {
		t.Errorf("change point index %d not near 4", got)
	}
	if points[0].Confidence <= 0.8 {
		t.Errorf("expected confidence > 0.8, got %f", points[0].Confidence)
	}
}

func TestBinarySegmentation_FindsLevelShift(t *testing.T) {
	detector := NewBinarySegmentationDetector()
	series := make([]float64, 40)
	for i := 20; i < 40; i++ {
		series[i] = 100
	}

	points := detector.Detect(series, analysis.ChangePointParams{}.Defaults())

	if len(points) == 0 {
		t.Fatal("expected the level shift to be found")
	}
	found := false
	for _, p := range points {
		if p.Index >= 18 && p.Index <= 22 {
			found = true
			if p.Confidence < 0.9 {
				t.Errorf("clean level shift should score high confidence, got %f", p.Confidence)
			}
		}
	}
	if !found {
		t.Errorf("no split near index 20: %+v", points)
	}
}

func TestEWMA_FlagsSpike(t *testing.T) {
	detector := NewEWMADetector()
	series := make([]float64, 30)
	for i := range series {
		series[i] = 5 + 0.1*math.Sin(float64(i))
	}
	series[20] = 50

	points := detector.Detect(series, analysis.ChangePointParams{}.Defaults())

	found := false
	for _, p := range points {
		if p.Index == 20 {
			found = true
		}
	}
	if !found {
		t.Errorf("spike at index 20 not flagged: %+v", points)
	}
}

func TestCUSUM_ResetsAfterFlag(t *testing.T) {
	detector := NewCUSUMDetector()
	series := make([]float64, 40)
	for i := 20; i < 40; i++ {
		series[i] = 10
	}

	params := analysis.ChangePointParams{ControlLimit: 1.5}.Defaults()
	points := detector.Detect(series, params)

	if len(points) < 2 {
		t.Fatalf("expected repeated flags from accumulator resets, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Index <= points[i-1].Index {
			t.Error("flags must be strictly ordered by index")
		}
	}
}

func TestEngine_UnknownAlgorithm(t *testing.T) {
	engine := NewEngine()
	if _, err := engine.Detect("unknown", []float64{1, 2, 3}, analysis.ChangePointParams{}); err == nil {
		t.Fatal("expected an error for an unknown algorithm")
	}
}
