package changepoint

import (
	"tablelens/domain/analysis"
)

// CUSUMDetector accumulates deviations from the series mean with a slack
// allowance and flags when either one-sided cumulative sum crosses the
// control limit. The accumulator resets after each flagged point.
type CUSUMDetector struct{}

// NewCUSUMDetector creates the CUSUM strategy
func NewCUSUMDetector() *CUSUMDetector {
	return &CUSUMDetector{}
}

// Name returns the algorithm identifier
func (d *CUSUMDetector) Name() analysis.ChangePointAlgorithm {
	return analysis.AlgoCUSUM
}

// Description returns a human-readable description
func (d *CUSUMDetector) Description() string {
	return "Cumulative sum control chart with slack, reset after each detection"
}

// Detect runs the tabular CUSUM recursion. Slack and control limit are in
// standard-deviation units of the whole series.
func (d *CUSUMDetector) Detect(series []float64, params analysis.ChangePointParams) []analysis.ChangePoint {
	if len(series) < 2 {
		return nil
	}
	target, sigma := meanStd(series)
	if sigma == 0 {
		return nil
	}
	slack := params.Slack * sigma
	limit := params.ControlLimit * sigma

	var points []analysis.ChangePoint
	high, low := 0.0, 0.0
	for i, v := range series {
		high = maxf(0, high+v-target-slack)
		low = maxf(0, low+target-v-slack)

		stat := maxf(high, low)
		if stat > limit {
			points = append(points, analysis.ChangePoint{
				Index:      i,
				Value:      v,
				Confidence: clamp01(stat / (2 * limit)),
				Algorithm:  analysis.AlgoCUSUM,
			})
			high, low = 0, 0
		}
	}
	return points
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
