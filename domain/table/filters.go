package table

import (
	"strings"
)

// ============================================================================
// FILTERS — Conjunctive row predicates applied before extraction
// ============================================================================

// Operator enumerates the supported filter comparisons
type Operator string

const (
	OpEquals     Operator = "equals"
	OpNotEquals  Operator = "not_equals"
	OpGreater    Operator = "greater"
	OpLess       Operator = "less"
	OpGreaterEq  Operator = "gte"
	OpLessEq     Operator = "lte"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "starts_with"
	OpEndsWith   Operator = "ends_with"
	OpIn         Operator = "in"
	OpNotIn      Operator = "not_in"
	OpIsNull     Operator = "is_null"
	OpIsNotNull  Operator = "is_not_null"
)

// Filter is one pre-compiled predicate. Inactive filters are ignored.
// Active filters are AND-combined by MatchRow.
type Filter struct {
	Column   string   `json:"column"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value,omitempty"`
	Values   []string `json:"values,omitempty"`
	Active   bool     `json:"active"`
}

// MatchRow reports whether a row passes every active filter.
// Filters naming columns the snapshot lacks reject the row.
func (t *Table) MatchRow(row []Value, filters []Filter) bool {
	for _, f := range filters {
		if !f.Active {
			continue
		}
		idx := t.ColumnIndex(f.Column)
		if idx < 0 || idx >= len(row) {
			return false
		}
		if !f.match(row[idx]) {
			return false
		}
	}
	return true
}

func (f Filter) match(v Value) bool {
	switch f.Operator {
	case OpIsNull:
		return v.IsNull()
	case OpIsNotNull:
		return !v.IsNull()
	}

	if v.IsNull() {
		return false
	}

	switch f.Operator {
	case OpEquals:
		return compareValues(v, f.Value) == 0
	case OpNotEquals:
		return compareValues(v, f.Value) != 0
	case OpGreater:
		return compareValues(v, f.Value) > 0
	case OpLess:
		return compareValues(v, f.Value) < 0
	case OpGreaterEq:
		return compareValues(v, f.Value) >= 0
	case OpLessEq:
		return compareValues(v, f.Value) <= 0
	case OpContains:
		return strings.Contains(strings.ToLower(v.Label()), strings.ToLower(f.Value))
	case OpStartsWith:
		return strings.HasPrefix(strings.ToLower(v.Label()), strings.ToLower(f.Value))
	case OpEndsWith:
		return strings.HasSuffix(strings.ToLower(v.Label()), strings.ToLower(f.Value))
	case OpIn:
		return containsFold(f.Values, v.Label())
	case OpNotIn:
		return !containsFold(f.Values, v.Label())
	default:
		return false
	}
}

// compareValues compares a cell against a filter operand.
// Numeric comparison when both sides parse as numbers, otherwise
// case-insensitive lexicographic comparison.
func compareValues(v Value, operand string) int {
	if num, ok := v.AsNumber(); ok {
		if target := TextValue(operand); target.Kind == KindNumber {
			switch {
			case num < target.Number:
				return -1
			case num > target.Number:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(strings.ToLower(v.Label()), strings.ToLower(operand))
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
