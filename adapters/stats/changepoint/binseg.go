package changepoint

import (
	"sort"

	"tablelens/domain/analysis"
)

// BinarySegmentationDetector recursively splits the series at the point
// giving the largest reduction in within-segment squared error, recursing
// while segments stay long enough and the improvement stays significant.
type BinarySegmentationDetector struct{}

// NewBinarySegmentationDetector creates the binary segmentation strategy
func NewBinarySegmentationDetector() *BinarySegmentationDetector {
	return &BinarySegmentationDetector{}
}

// Name returns the algorithm identifier
func (d *BinarySegmentationDetector) Name() analysis.ChangePointAlgorithm {
	return analysis.AlgoBinarySegmentation
}

// Description returns a human-readable description
func (d *BinarySegmentationDetector) Description() string {
	return "Recursive variance-reduction splitting of the series"
}

// Detect returns the union of all discovered split points ordered by index.
// Confidence is the normalized improvement score of each split.
func (d *BinarySegmentationDetector) Detect(series []float64, params analysis.ChangePointParams) []analysis.ChangePoint {
	var points []analysis.ChangePoint
	d.segment(series, 0, len(series), params, &points)
	sort.Slice(points, func(i, j int) bool { return points[i].Index < points[j].Index })
	return points
}

// segment inspects series[lo:hi) for its best split using prefix sums.
func (d *BinarySegmentationDetector) segment(series []float64, lo, hi int, params analysis.ChangePointParams, out *[]analysis.ChangePoint) {
	length := hi - lo
	if length < 2*params.MinSegment {
		return
	}

	// Prefix sums over the segment for O(1) SSE of any sub-split.
	sum := make([]float64, length+1)
	sumSq := make([]float64, length+1)
	for i := 0; i < length; i++ {
		v := series[lo+i]
		sum[i+1] = sum[i] + v
		sumSq[i+1] = sumSq[i] + v*v
	}
	sse := func(a, b int) float64 { // over local [a,b)
		n := float64(b - a)
		if n <= 0 {
			return 0
		}
		s := sum[b] - sum[a]
		sq := sumSq[b] - sumSq[a]
		return sq - s*s/n
	}

	total := sse(0, length)
	if total <= 0 {
		// Constant segment: nothing to split.
		return
	}

	bestSplit := -1
	bestCombined := total
	for t := params.MinSegment; t <= length-params.MinSegment; t++ {
		combined := sse(0, t) + sse(t, length)
		if combined < bestCombined {
			bestCombined = combined
			bestSplit = t
		}
	}
	if bestSplit < 0 {
		return
	}

	improvement := (total - bestCombined) / total
	if improvement <= params.Significance {
		return
	}

	split := lo + bestSplit
	*out = append(*out, analysis.ChangePoint{
		Index:      split,
		Value:      series[split],
		Confidence: clamp01(improvement),
		Algorithm:  analysis.AlgoBinarySegmentation,
	})

	d.segment(series, lo, split, params, out)
	d.segment(series, split, hi, params, out)
}
