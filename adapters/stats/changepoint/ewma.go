package changepoint

import (
	"math"

	"tablelens/domain/analysis"
)

// EWMADetector keeps an exponentially weighted running mean and flags
// observations deviating beyond k sigma of the smoothed estimate.
type EWMADetector struct{}

// NewEWMADetector creates the EWMA strategy
func NewEWMADetector() *EWMADetector {
	return &EWMADetector{}
}

// Name returns the algorithm identifier
func (d *EWMADetector) Name() analysis.ChangePointAlgorithm {
	return analysis.AlgoEWMA
}

// Description returns a human-readable description
func (d *EWMADetector) Description() string {
	return "Exponentially weighted moving average with a k-sigma control band"
}

// Detect smooths with lambda and compares each observation against the
// previous smoothed value. The control band uses the asymptotic EWMA
// standard deviation sigma*sqrt(lambda/(2-lambda)).
func (d *EWMADetector) Detect(series []float64, params analysis.ChangePointParams) []analysis.ChangePoint {
	if len(series) < 2 {
		return nil
	}
	mean, sigma := meanStd(series)
	if sigma == 0 {
		return nil
	}

	band := params.K * sigma * math.Sqrt(params.Lambda/(2-params.Lambda))
	if band <= 0 {
		return nil
	}

	var points []analysis.ChangePoint
	z := mean
	for i, v := range series {
		dev := math.Abs(v - z)
		if i > 0 && dev > band {
			points = append(points, analysis.ChangePoint{
				Index:      i,
				Value:      v,
				Confidence: clamp01(dev / (2 * band)),
				Algorithm:  analysis.AlgoEWMA,
			})
		}
		z = params.Lambda*v + (1-params.Lambda)*z
	}
	return points
}
