// Package apriori mines association rules from categorical rows with
// level-wise frequent-itemset search and a minimum-support prune.
package apriori

import (
	"math"
	"sort"
	"strings"

	"tablelens/domain/analysis"
	"tablelens/domain/core"
)

// Mine treats every row as a transaction of column=value items, finds
// frequent itemsets level-wise, and derives all non-trivial
// antecedent/consequent splits clearing the confidence threshold.
// An empty rule set is a valid outcome, not an error.
func Mine(columns []string, rows [][]string, params analysis.AprioriParams) (*analysis.AssociationRuleResult, error) {
	if len(columns) < 2 {
		return nil, core.ErrInsufficientVariables
	}
	if len(rows) == 0 {
		return nil, core.ErrInsufficientData
	}
	params = params.Defaults()
	n := float64(len(rows))

	transactions := make([]map[string]bool, len(rows))
	for i, row := range rows {
		tx := make(map[string]bool, len(columns))
		for j, v := range row {
			tx[columns[j]+"="+v] = true
		}
		transactions[i] = tx
	}

	// Level 1: frequent single items.
	counts := make(map[string]int)
	for _, tx := range transactions {
		for item := range tx {
			counts[item]++
		}
	}
	supports := make(map[string]float64) // canonical itemset key -> support
	var level [][]string
	for item, c := range counts {
		support := float64(c) / n
		if support >= params.MinSupport {
			supports[item] = support
			level = append(level, []string{item})
		}
	}
	sort.Slice(level, func(i, j int) bool { return level[i][0] < level[j][0] })

	var frequent [][]string
	frequent = append(frequent, level...)

	// Level-wise expansion up to the column count (one item per column
	// means no transaction can hold more items than columns).
	for size := 2; size <= len(columns) && len(level) > 1; size++ {
		candidates := generateCandidates(level)
		var next [][]string
		for _, cand := range candidates {
			c := 0
			for _, tx := range transactions {
				if containsAll(tx, cand) {
					c++
				}
			}
			support := float64(c) / n
			if support >= params.MinSupport {
				supports[key(cand)] = support
				next = append(next, cand)
			}
		}
		frequent = append(frequent, next...)
		level = next
	}

	var rules []analysis.AssociationRule
	for _, itemset := range frequent {
		if len(itemset) < 2 {
			continue
		}
		itemSupport := supports[key(itemset)]

		// Every non-empty proper subset as antecedent.
		for mask := 1; mask < (1<<len(itemset))-1; mask++ {
			var antecedent, consequent []string
			for i, item := range itemset {
				if mask&(1<<i) != 0 {
					antecedent = append(antecedent, item)
				} else {
					consequent = append(consequent, item)
				}
			}

			antSupport := supports[key(antecedent)]
			conSupport := supports[key(consequent)]
			if antSupport <= 0 || conSupport <= 0 {
				continue
			}

			confidence := itemSupport / antSupport
			if confidence < params.MinConfidence {
				continue
			}

			conviction := math.Inf(1)
			if confidence < 1 {
				conviction = (1 - conSupport) / (1 - confidence)
			}

			rules = append(rules, analysis.AssociationRule{
				Antecedent: antecedent,
				Consequent: consequent,
				Support:    itemSupport,
				Confidence: confidence,
				Lift:       confidence / conSupport,
				Conviction: conviction,
			})
		}
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Confidence != rules[j].Confidence {
			return rules[i].Confidence > rules[j].Confidence
		}
		return rules[i].Lift > rules[j].Lift
	})

	return &analysis.AssociationRuleResult{
		Columns:       columns,
		MinSupport:    params.MinSupport,
		MinConfidence: params.MinConfidence,
		Transactions:  len(rows),
		Rules:         rules,
	}, nil
}

// generateCandidates joins sorted itemsets sharing all but their last item
func generateCandidates(level [][]string) [][]string {
	var out [][]string
	seen := make(map[string]bool)
	for i := 0; i < len(level); i++ {
		for j := i + 1; j < len(level); j++ {
			a, b := level[i], level[j]
			if !samePrefix(a, b) {
				continue
			}
			cand := make([]string, len(a), len(a)+1)
			copy(cand, a)
			cand = append(cand, b[len(b)-1])
			sort.Strings(cand)
			k := key(cand)
			if !seen[k] {
				seen[k] = true
				out = append(out, cand)
			}
		}
	}
	return out
}

func samePrefix(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a)-1; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return a[len(a)-1] != b[len(b)-1]
}

func containsAll(tx map[string]bool, items []string) bool {
	for _, item := range items {
		if !tx[item] {
			return false
		}
	}
	return true
}

func key(items []string) string {
	sorted := make([]string, len(items))
	copy(sorted, items)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}
