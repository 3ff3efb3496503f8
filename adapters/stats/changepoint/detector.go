// Package changepoint holds four interchangeable sequential change-point
// detectors behind one strategy interface. Detectors are pure functions of
// the series and parameters; nothing survives between invocations.
package changepoint

import (
	"math"

	"tablelens/domain/analysis"
	"tablelens/domain/core"
)

// Detector is one detection strategy
type Detector interface {
	Name() analysis.ChangePointAlgorithm
	Description() string
	Detect(series []float64, params analysis.ChangePointParams) []analysis.ChangePoint
}

// Engine routes an algorithm identifier to its detector
type Engine struct {
	detectors []Detector
}

// NewEngine registers all four strategies
func NewEngine() *Engine {
	return &Engine{
		detectors: []Detector{
			NewMovingAverageDetector(),
			NewCUSUMDetector(),
			NewEWMADetector(),
			NewBinarySegmentationDetector(),
		},
	}
}

// Detect runs the selected strategy over the ordered series
func (e *Engine) Detect(algo analysis.ChangePointAlgorithm, series []float64, params analysis.ChangePointParams) ([]analysis.ChangePoint, error) {
	for _, d := range e.detectors {
		if d.Name() == algo {
			return d.Detect(series, params.Defaults()), nil
		}
	}
	return nil, core.NewValidationError("algorithm", "unknown change point algorithm: "+string(algo))
}

// List returns the registered algorithm identifiers
func (e *Engine) List() []analysis.ChangePointAlgorithm {
	names := make([]analysis.ChangePointAlgorithm, len(e.detectors))
	for i, d := range e.detectors {
		names[i] = d.Name()
	}
	return names
}

// Shared helpers

// meanStd returns mean and population standard deviation of the series
func meanStd(series []float64) (float64, float64) {
	n := len(series)
	if n == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)
	variance := 0.0
	for _, v := range series {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)
	return mean, math.Sqrt(variance)
}

func windowMean(series []float64, lo, hi int) float64 {
	if lo < 0 {
		lo = 0
	}
	if hi > len(series) {
		hi = len(series)
	}
	if hi <= lo {
		return 0
	}
	sum := 0.0
	for _, v := range series[lo:hi] {
		sum += v
	}
	return sum / float64(hi-lo)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
