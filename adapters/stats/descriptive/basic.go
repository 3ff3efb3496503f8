// Package descriptive computes per-column summary statistics and
// equal-width histograms over a filtered numeric projection.
package descriptive

import (
	"github.com/montanaflynn/stats"

	"tablelens/domain/analysis"
	"tablelens/domain/core"
)

// Summarize computes descriptive statistics for each column series.
// Every series must be non-empty; series are independent, so differing
// lengths (from per-column missing exclusion) are allowed.
func Summarize(columns []string, series [][]float64) (*analysis.BasicStatsResult, error) {
	if len(columns) != len(series) {
		return nil, core.ErrDimensionMismatch
	}

	out := make([]analysis.ColumnStats, 0, len(columns))
	for i, col := range columns {
		data := series[i]
		if len(data) == 0 {
			return nil, core.NewInvalidColumnError(col, "no numeric values after filtering")
		}

		mean, _ := stats.Mean(data)
		stdDev, _ := stats.StandardDeviationSample(data)
		minVal, _ := stats.Min(data)
		maxVal, _ := stats.Max(data)
		median, _ := stats.Median(data)
		q25, _ := stats.Percentile(data, 25)
		q75, _ := stats.Percentile(data, 75)

		out = append(out, analysis.ColumnStats{
			Column: col,
			Count:  len(data),
			Mean:   mean,
			StdDev: stdDev,
			Min:    minVal,
			Max:    maxVal,
			Median: median,
			Q25:    q25,
			Q75:    q75,
		})
	}
	return &analysis.BasicStatsResult{Columns: out}, nil
}

// Histogram bins a single series into binCount equal-width bins spanning
// [min, max]. The top edge is inclusive so the maximum lands in the last
// bin. A constant series collapses into one bin holding every value.
func Histogram(column string, data []float64, binCount int) (*analysis.HistogramResult, error) {
	if len(data) == 0 {
		return nil, core.NewInvalidColumnError(column, "no numeric values after filtering")
	}
	if binCount <= 0 {
		binCount = 10
	}

	minVal, _ := stats.Min(data)
	maxVal, _ := stats.Max(data)

	if minVal == maxVal {
		return &analysis.HistogramResult{
			Column:   column,
			BinCount: 1,
			Bins: []analysis.HistogramBin{
				{Lower: minVal, Upper: maxVal, Count: len(data)},
			},
		}, nil
	}

	width := (maxVal - minVal) / float64(binCount)
	bins := make([]analysis.HistogramBin, binCount)
	for i := range bins {
		bins[i].Lower = minVal + float64(i)*width
		bins[i].Upper = minVal + float64(i+1)*width
	}

	for _, v := range data {
		idx := int((v - minVal) / width)
		if idx >= binCount {
			idx = binCount - 1
		}
		bins[idx].Count++
	}

	return &analysis.HistogramResult{
		Column:   column,
		BinCount: binCount,
		Bins:     bins,
	}, nil
}
