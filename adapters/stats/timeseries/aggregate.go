// Package timeseries aggregates a y column over an ordering x column.
package timeseries

import (
	"sort"

	"tablelens/domain/analysis"
	"tablelens/domain/core"
)

// Aggregate groups rows by x value and emits per-x mean/min/max/count of y,
// ordered by ascending x. rows is the N×2 projection [x, y]; when the caller
// orders by row index, x is the index itself.
func Aggregate(xColumn, yColumn string, rows [][]float64) (*analysis.TimeSeriesResult, error) {
	if len(rows) == 0 {
		return nil, core.ErrInsufficientData
	}

	type bucket struct {
		sum   float64
		min   float64
		max   float64
		count int
	}
	buckets := make(map[float64]*bucket)
	for _, row := range rows {
		x, y := row[0], row[1]
		b, ok := buckets[x]
		if !ok {
			buckets[x] = &bucket{sum: y, min: y, max: y, count: 1}
			continue
		}
		b.sum += y
		b.count++
		if y < b.min {
			b.min = y
		}
		if y > b.max {
			b.max = y
		}
	}

	xs := make([]float64, 0, len(buckets))
	for x := range buckets {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	points := make([]analysis.TimeSeriesPoint, 0, len(xs))
	for _, x := range xs {
		b := buckets[x]
		points = append(points, analysis.TimeSeriesPoint{
			X:     x,
			Mean:  b.sum / float64(b.count),
			Min:   b.min,
			Max:   b.max,
			Count: b.count,
		})
	}

	return &analysis.TimeSeriesResult{
		XColumn: xColumn,
		YColumn: yColumn,
		Points:  points,
	}, nil
}

// Series extracts the ordered y series for change-point detection: rows are
// sorted by ascending x (stable for ties) and the y values returned in that
// order.
func Series(rows [][]float64) []float64 {
	ordered := make([][]float64, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i][0] < ordered[j][0]
	})
	out := make([]float64, len(ordered))
	for i, row := range ordered {
		out[i] = row[1]
	}
	return out
}
