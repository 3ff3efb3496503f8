package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablelens/adapters/source"
	"tablelens/adapters/stats/engine"
	"tablelens/domain/analysis"
	"tablelens/internal/testkit"
)

func newRunner(t *testing.T, maxConcurrent int64) *BatchRunner {
	t.Helper()
	store := source.NewMemoryStore()
	store.Put(testkit.DemoTable("demo", 60))
	return NewBatchRunner(engine.New(store), maxConcurrent)
}

func TestBatchPreservesOrder(t *testing.T) {
	runner := newRunner(t, 4)
	requests := []analysis.Request{
		{Type: analysis.TypeBasicStats, Table: "demo", Columns: []string{"x"}},
		{Type: analysis.TypeHistogram, Table: "demo", Columns: []string{"y"}},
		{Type: analysis.TypeCorrelation, Table: "demo", Columns: []string{"x", "y"}},
	}

	items := runner.Run(context.Background(), requests)
	require.Len(t, items, 3)

	for i, item := range items {
		assert.Equal(t, requests[i].Type, item.Request.Type, "item %d out of order", i)
		require.NotNil(t, item.Result, "item %d should succeed", i)
		assert.Empty(t, item.Err)
		assert.Equal(t, requests[i].Type, item.Result.Type)
	}
}

func TestBatchIsolatesFailures(t *testing.T) {
	runner := newRunner(t, 2)
	requests := []analysis.Request{
		{Type: analysis.TypeBasicStats, Table: "demo", Columns: []string{"x"}},
		{Type: analysis.TypeBasicStats, Table: "ghost", Columns: []string{"x"}},
		{Type: analysis.TypeBasicStats, Table: "demo", Columns: []string{"y"}},
	}

	items := runner.Run(context.Background(), requests)
	require.Len(t, items, 3)

	assert.NotNil(t, items[0].Result)
	assert.Nil(t, items[1].Result)
	assert.NotEmpty(t, items[1].Err)
	assert.NotNil(t, items[2].Result)
}

func TestBatchCancelledContext(t *testing.T) {
	runner := newRunner(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := runner.Run(ctx, []analysis.Request{
		{Type: analysis.TypeBasicStats, Table: "demo", Columns: []string{"x"}},
	})
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Result)
	assert.NotEmpty(t, items[0].Err)
}

func TestBatchConcurrencyFloor(t *testing.T) {
	// A non-positive cap still runs sequentially instead of deadlocking
	runner := newRunner(t, 0)
	items := runner.Run(context.Background(), []analysis.Request{
		{Type: analysis.TypeBasicStats, Table: "demo", Columns: []string{"x"}},
		{Type: analysis.TypeBasicStats, Table: "demo", Columns: []string{"y"}},
	})
	require.Len(t, items, 2)
	assert.NotNil(t, items[0].Result)
	assert.NotNil(t, items[1].Result)
}
