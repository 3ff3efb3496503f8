// Package mutualinfo estimates pairwise mutual information over
// discretized variables and ranks every column pair by MI.
package mutualinfo

import (
	"math"
	"sort"

	"tablelens/domain/analysis"
	"tablelens/domain/core"
)

// Analyze computes H(X), H(Y), H(X,Y), MI and normalized MI for all C(k,2)
// pairs among the selected columns, ranked by MI descending. rows is the
// N×k complete-row projection in column order.
func Analyze(columns []string, rows [][]float64, params analysis.MutualInfoParams) (*analysis.MutualInfoResult, error) {
	k := len(columns)
	if k < 2 {
		return nil, core.ErrInsufficientVariables
	}
	if len(rows) == 0 {
		return nil, core.ErrInsufficientData
	}
	params = params.Defaults()

	// Discretize each column once; pairs share the same binning.
	binned := make([][]int, k)
	for j := 0; j < k; j++ {
		col := make([]float64, len(rows))
		for i, row := range rows {
			col[i] = row[j]
		}
		binned[j] = Discretize(col, params.Bins)
	}

	entropies := make([]float64, k)
	for j := range binned {
		entropies[j] = Entropy(binned[j])
	}

	pairs := make([]analysis.MutualInfoPair, 0, k*(k-1)/2)
	for a := 0; a < k; a++ {
		for b := a + 1; b < k; b++ {
			joint := JointEntropy(binned[a], binned[b])
			mi := math.Max(0, entropies[a]+entropies[b]-joint)

			norm := 0.0
			if max := math.Max(entropies[a], entropies[b]); max > 0 {
				norm = math.Min(1, mi/max)
			}

			pairs = append(pairs, analysis.MutualInfoPair{
				ColumnX:      columns[a],
				ColumnY:      columns[b],
				EntropyX:     entropies[a],
				EntropyY:     entropies[b],
				JointEntropy: joint,
				MI:           mi,
				NormalizedMI: norm,
				Strength:     classify(mi),
			})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].MI > pairs[j].MI })

	return &analysis.MutualInfoResult{Columns: columns, Pairs: pairs}, nil
}

// Discretize converts continuous values to quantile bins
func Discretize(data []float64, numBins int) []int {
	if len(data) == 0 {
		return []int{}
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	bins := make([]int, len(data))
	for i, val := range data {
		bin := 0
		for b := 1; b < numBins; b++ {
			threshold := sorted[(len(sorted)*b)/numBins]
			if val >= threshold {
				bin = b
			} else {
				break
			}
		}
		bins[i] = bin
	}
	return bins
}

// Entropy calculates Shannon entropy of a discrete variable
func Entropy(bins []int) float64 {
	if len(bins) == 0 {
		return 0
	}
	counts := make(map[int]int)
	for _, bin := range bins {
		counts[bin]++
	}

	entropy := 0.0
	n := float64(len(bins))
	for _, count := range counts {
		if count > 0 {
			p := float64(count) / n
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}

// JointEntropy calculates H(X,Y) over paired bin assignments
func JointEntropy(xBins, yBins []int) float64 {
	if len(xBins) != len(yBins) || len(xBins) == 0 {
		return 0
	}
	type cell struct{ x, y int }
	jointCounts := make(map[cell]int)
	for i := range xBins {
		jointCounts[cell{xBins[i], yBins[i]}]++
	}

	entropy := 0.0
	n := float64(len(xBins))
	for _, count := range jointCounts {
		if count > 0 {
			p := float64(count) / n
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}

// MI thresholds for strength classification
func classify(mi float64) analysis.MutualInfoStrength {
	switch {
	case mi < 0.05:
		return analysis.StrengthIndependent
	case mi < 0.2:
		return analysis.StrengthWeak
	case mi < 0.5:
		return analysis.StrengthModerate
	default:
		return analysis.StrengthStrong
	}
}
