package changepoint

import (
	"math"

	"tablelens/domain/analysis"
)

// MovingAverageDetector compares a short forward-looking window against the
// long trailing history at every index and flags the largest gap in each
// run of indices whose gap clears the threshold.
type MovingAverageDetector struct{}

// NewMovingAverageDetector creates the moving-average strategy
func NewMovingAverageDetector() *MovingAverageDetector {
	return &MovingAverageDetector{}
}

// Name returns the algorithm identifier
func (d *MovingAverageDetector) Name() analysis.ChangePointAlgorithm {
	return analysis.AlgoMovingAverage
}

// Description returns a human-readable description
func (d *MovingAverageDetector) Description() string {
	return "Flags indices where the short-window mean departs from the long-window history"
}

// Detect scans the series once. The threshold parameter is expressed in
// global standard-deviation units, so a constant series (sigma = 0) can
// never produce a flag.
func (d *MovingAverageDetector) Detect(series []float64, params analysis.ChangePointParams) []analysis.ChangePoint {
	n := len(series)
	if n < params.ShortWindow+1 {
		return nil
	}

	_, sigma := meanStd(series)
	threshold := params.Threshold * sigma
	if threshold <= 0 {
		return nil
	}

	type candidate struct {
		index int
		dev   float64
	}
	var candidates []candidate
	for i := 1; i < n; i++ {
		long := windowMean(series, i-params.LongWindow, i)
		short := windowMean(series, i, i+params.ShortWindow)
		dev := math.Abs(short - long)
		if dev > threshold {
			candidates = append(candidates, candidate{index: i, dev: dev})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// Collapse runs of nearby candidates to the strongest gap so one shift
	// reports one change point.
	var points []analysis.ChangePoint
	best := candidates[0]
	lastIdx := candidates[0].index
	flush := func(c candidate) {
		points = append(points, analysis.ChangePoint{
			Index:      c.index,
			Value:      series[c.index],
			Confidence: clamp01(c.dev / (2 * threshold)),
			Algorithm:  analysis.AlgoMovingAverage,
		})
	}
	for _, c := range candidates[1:] {
		if c.index-lastIdx > params.ShortWindow {
			flush(best)
			best = c
		} else if c.dev > best.dev {
			best = c
		}
		lastIdx = c.index
	}
	flush(best)
	return points
}
