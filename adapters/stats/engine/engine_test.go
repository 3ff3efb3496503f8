package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablelens/adapters/source"
	"tablelens/domain/analysis"
	"tablelens/domain/table"
	apperrors "tablelens/internal/errors"
	"tablelens/internal/testkit"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	store := source.NewMemoryStore()
	store.Put(testkit.DemoTable("demo", 120))
	return New(store)
}

func TestRunBasicStats(t *testing.T) {
	e := newTestEngine(t)
	result, err := e.Run(context.Background(), analysis.Request{
		Type:    analysis.TypeBasicStats,
		Table:   "demo",
		Columns: []string{"x", "y"},
	})
	require.NoError(t, err)
	require.NoError(t, result.Validate())

	assert.Equal(t, analysis.TypeBasicStats, result.Type)
	assert.Equal(t, "demo", result.Table)
	assert.NotEmpty(t, result.ID)
	require.Len(t, result.BasicStats.Columns, 2)
	assert.Equal(t, 120, result.BasicStats.Columns[0].Count)
}

func TestRunHistogram(t *testing.T) {
	e := newTestEngine(t)
	result, err := e.Run(context.Background(), analysis.Request{
		Type:     analysis.TypeHistogram,
		Table:    "demo",
		Columns:  []string{"x"},
		BinCount: 6,
	})
	require.NoError(t, err)
	require.NoError(t, result.Validate())
	assert.Equal(t, 6, result.Histogram.BinCount)

	total := 0
	for _, bin := range result.Histogram.Bins {
		total += bin.Count
	}
	assert.Equal(t, 120, total)
}

func TestRunCorrelation(t *testing.T) {
	e := newTestEngine(t)
	result, err := e.Run(context.Background(), analysis.Request{
		Type:    analysis.TypeCorrelation,
		Table:   "demo",
		Columns: []string{"x", "y"},
	})
	require.NoError(t, err)
	require.NoError(t, result.Validate())
	// y = 2x + 1 in the demo table
	assert.InDelta(t, 1.0, result.Correlation.Matrix[0][1], 1e-9)
}

func TestRunTimeSeriesOrdering(t *testing.T) {
	e := newTestEngine(t)
	result, err := e.Run(context.Background(), analysis.Request{
		Type:    analysis.TypeTimeSeries,
		Table:   "demo",
		Columns: []string{"load"},
		XColumn: "x",
	})
	require.NoError(t, err)
	require.NoError(t, result.Validate())
	assert.Equal(t, "x", result.TimeSeries.XColumn)
	assert.Equal(t, "load", result.TimeSeries.YColumn)
	assert.Len(t, result.TimeSeries.Points, 120)

	// Row-index ordering when no x column is given
	indexed, err := e.Run(context.Background(), analysis.Request{
		Type:    analysis.TypeTimeSeries,
		Table:   "demo",
		Columns: []string{"load"},
	})
	require.NoError(t, err)
	assert.Equal(t, "index", indexed.TimeSeries.XColumn)
}

func TestRunChangePoints(t *testing.T) {
	e := newTestEngine(t)
	result, err := e.Run(context.Background(), analysis.Request{
		Type:    analysis.TypeChangePoints,
		Table:   "demo",
		Columns: []string{"load"},
		XColumn: "x",
	})
	require.NoError(t, err)
	require.NoError(t, result.Validate())

	cp := result.ChangePoints
	// Unset algorithm falls back to moving average
	assert.Equal(t, analysis.AlgoMovingAverage, cp.Algorithm)
	// The demo table shifts load from ~50 to ~120 at the midpoint
	require.NotEmpty(t, cp.Points)
	found := false
	for _, p := range cp.Points {
		if p.Index >= 55 && p.Index <= 65 {
			found = true
		}
	}
	assert.True(t, found, "expected a change point near index 60, got %+v", cp.Points)
}

func TestRunCanonical(t *testing.T) {
	e := newTestEngine(t)
	result, err := e.Run(context.Background(), analysis.Request{
		Type:         analysis.TypeCanonical,
		Table:        "demo",
		LeftColumns:  []string{"a", "b"},
		RightColumns: []string{"c", "d"},
	})
	require.NoError(t, err)
	require.NoError(t, result.Validate())

	// c = a+b and d = a-b: both canonical correlations are ~1
	require.Len(t, result.Canonical.Variates, 2)
	assert.Greater(t, result.Canonical.Variates[0].Correlation, 0.99)
}

func TestRunMutualInfo(t *testing.T) {
	e := newTestEngine(t)
	result, err := e.Run(context.Background(), analysis.Request{
		Type:    analysis.TypeMutualInfo,
		Table:   "demo",
		Columns: []string{"x", "y", "d"},
	})
	require.NoError(t, err)
	require.NoError(t, result.Validate())
	// C(3,2) pairs, ranked by MI descending
	require.Len(t, result.MutualInfo.Pairs, 3)
	top := result.MutualInfo.Pairs[0]
	assert.ElementsMatch(t, []string{"x", "y"}, []string{top.ColumnX, top.ColumnY})
}

func TestRunAssociationRules(t *testing.T) {
	e := newTestEngine(t)
	result, err := e.Run(context.Background(), analysis.Request{
		Type:    analysis.TypeAssociationRules,
		Table:   "demo",
		Columns: []string{"region", "tier"},
	})
	require.NoError(t, err)
	require.NoError(t, result.Validate())
	assert.Equal(t, 120, result.AssociationRules.Transactions)

	// region=north always implies tier=gold in the demo table
	found := false
	for _, rule := range result.AssociationRules.Rules {
		if len(rule.Antecedent) == 1 && rule.Antecedent[0] == "region=north" &&
			len(rule.Consequent) == 1 && rule.Consequent[0] == "tier=gold" {
			found = true
			assert.InDelta(t, 1.0, rule.Confidence, 1e-9)
		}
	}
	assert.True(t, found, "expected rule region=north -> tier=gold")
}

func TestRunValidationFailures(t *testing.T) {
	e := newTestEngine(t)
	cases := []struct {
		name string
		req  analysis.Request
		code string
	}{
		{
			"unknown_type",
			analysis.Request{Type: "sorcery", Table: "demo", Columns: []string{"x"}},
			apperrors.CodeValidationError,
		},
		{
			"missing_table",
			analysis.Request{Type: analysis.TypeBasicStats, Columns: []string{"x"}},
			apperrors.CodeValidationError,
		},
		{
			"correlation_one_column",
			analysis.Request{Type: analysis.TypeCorrelation, Table: "demo", Columns: []string{"x"}},
			apperrors.CodeValidationError,
		},
		{
			"canonical_overlap",
			analysis.Request{
				Type:         analysis.TypeCanonical,
				Table:        "demo",
				LeftColumns:  []string{"a", "b"},
				RightColumns: []string{"b", "c"},
			},
			apperrors.CodeValidationError,
		},
		{
			"unknown_table",
			analysis.Request{Type: analysis.TypeBasicStats, Table: "ghost", Columns: []string{"x"}},
			apperrors.CodeNotFound,
		},
		{
			"unknown_column",
			analysis.Request{Type: analysis.TypeBasicStats, Table: "demo", Columns: []string{"ghost"}},
			apperrors.CodeNotFound,
		},
		{
			"categorical_as_numeric",
			analysis.Request{Type: analysis.TypeHistogram, Table: "demo", Columns: []string{"region"}},
			apperrors.CodeInvalidColumn,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Run(context.Background(), tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.code, apperrors.GetCode(err))
		})
	}
}

func TestRunFilteredProjection(t *testing.T) {
	e := newTestEngine(t)
	result, err := e.Run(context.Background(), analysis.Request{
		Type:    analysis.TypeBasicStats,
		Table:   "demo",
		Columns: []string{"x"},
		Filters: []table.Filter{
			{Column: "x", Operator: table.OpLess, Value: "10", Active: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, result.BasicStats.Columns[0].Count)
}
