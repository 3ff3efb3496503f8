// Package engine is the dispatch facade: it validates an analysis request,
// pulls the filtered projection through the ColumnSource port, routes to
// the matching analysis module, and returns exactly one of a typed result
// or a typed failure. The engine holds no state between calls.
package engine

import (
	"context"
	"log"

	"tablelens/adapters/stats/apriori"
	"tablelens/adapters/stats/canonical"
	"tablelens/adapters/stats/changepoint"
	"tablelens/adapters/stats/correlation"
	"tablelens/adapters/stats/descriptive"
	"tablelens/adapters/stats/factor"
	"tablelens/adapters/stats/mutualinfo"
	"tablelens/adapters/stats/timeseries"
	"tablelens/domain/analysis"
	"tablelens/domain/table"
	"tablelens/ports"
)

// Engine routes analysis requests to the computation modules
type Engine struct {
	source       ports.ColumnSource
	changePoints *changepoint.Engine
}

// New creates an engine bound to a column source
func New(source ports.ColumnSource) *Engine {
	return &Engine{
		source:       source,
		changePoints: changepoint.NewEngine(),
	}
}

// ChangePointAlgorithms returns the registered detector identifiers
func (e *Engine) ChangePointAlgorithms() []analysis.ChangePointAlgorithm {
	return e.changePoints.List()
}

// Run executes one analysis synchronously to completion. Each call
// allocates its own matrices and accumulators; concurrent calls share
// nothing but the read-only snapshot.
func (e *Engine) Run(ctx context.Context, req analysis.Request) (*analysis.Result, error) {
	if err := validate(req); err != nil {
		return nil, asAppError(err)
	}

	snapshot, err := e.source.Table(ctx, req.Table)
	if err != nil {
		return nil, asAppError(err)
	}

	log.Printf("[Engine] %s on table %s (%d columns)", req.Type, req.Table, len(req.Columns))

	result := analysis.NewResult(req.Type, req.Table)
	switch req.Type {
	case analysis.TypeBasicStats:
		result.BasicStats, err = e.runBasicStats(snapshot, req)
	case analysis.TypeHistogram:
		result.Histogram, err = e.runHistogram(snapshot, req)
	case analysis.TypeCorrelation:
		result.Correlation, err = e.runCorrelation(snapshot, req)
	case analysis.TypeTimeSeries:
		result.TimeSeries, err = e.runTimeSeries(snapshot, req)
	case analysis.TypeChangePoints:
		result.ChangePoints, err = e.runChangePoints(snapshot, req)
	case analysis.TypeFactor:
		result.Factor, err = e.runFactor(snapshot, req)
	case analysis.TypeCanonical:
		result.Canonical, err = e.runCanonical(snapshot, req)
	case analysis.TypeMutualInfo:
		result.MutualInfo, err = e.runMutualInfo(snapshot, req)
	case analysis.TypeAssociationRules:
		result.AssociationRules, err = e.runAssociationRules(snapshot, req)
	}
	if err != nil {
		return nil, asAppError(err)
	}
	return result, nil
}

func (e *Engine) runBasicStats(t *table.Table, req analysis.Request) (*analysis.BasicStatsResult, error) {
	series := make([][]float64, len(req.Columns))
	for i, col := range req.Columns {
		data, err := t.NumericColumn(col, req.Filters, req.Flags)
		if err != nil {
			return nil, err
		}
		series[i] = data
	}
	return descriptive.Summarize(req.Columns, series)
}

func (e *Engine) runHistogram(t *table.Table, req analysis.Request) (*analysis.HistogramResult, error) {
	col := req.Columns[0]
	data, err := t.NumericColumn(col, req.Filters, req.Flags)
	if err != nil {
		return nil, err
	}
	return descriptive.Histogram(col, data, req.BinCount)
}

func (e *Engine) runCorrelation(t *table.Table, req analysis.Request) (*analysis.CorrelationResult, error) {
	rows, err := t.NumericMatrix(req.Columns, req.Filters, req.Flags)
	if err != nil {
		return nil, err
	}
	return correlation.Matrix(req.Columns, rows)
}

func (e *Engine) runTimeSeries(t *table.Table, req analysis.Request) (*analysis.TimeSeriesResult, error) {
	yColumn := req.Columns[0]
	rows, xName, err := orderedPairs(t, req, yColumn)
	if err != nil {
		return nil, err
	}
	return timeseries.Aggregate(xName, yColumn, rows)
}

func (e *Engine) runChangePoints(t *table.Table, req analysis.Request) (*analysis.ChangePointResult, error) {
	yColumn := req.Columns[0]
	rows, _, err := orderedPairs(t, req, yColumn)
	if err != nil {
		return nil, err
	}
	series := timeseries.Series(rows)

	algo := req.ChangePoint.Algorithm
	if algo == "" {
		algo = analysis.AlgoMovingAverage
	}
	points, err := e.changePoints.Detect(algo, series, req.ChangePoint)
	if err != nil {
		return nil, err
	}
	return &analysis.ChangePointResult{
		Column:    yColumn,
		XColumn:   req.XColumn,
		Algorithm: algo,
		Points:    points,
	}, nil
}

func (e *Engine) runFactor(t *table.Table, req analysis.Request) (*analysis.FactorResult, error) {
	rows, err := t.NumericMatrix(req.Columns, req.Filters, req.Flags)
	if err != nil {
		return nil, err
	}
	return factor.Analyze(req.Columns, rows)
}

func (e *Engine) runCanonical(t *table.Table, req analysis.Request) (*analysis.CanonicalResult, error) {
	// Each side's columns must coerce to numeric with enough non-null
	// values before the joint complete-row matrix is built.
	for _, col := range append(append([]string{}, req.LeftColumns...), req.RightColumns...) {
		data, err := t.NumericColumn(col, req.Filters, req.Flags)
		if err != nil {
			return nil, err
		}
		if len(data) < canonical.MinSampleSize {
			return nil, errInvalidColumn(col)
		}
	}

	all := append(append([]string{}, req.LeftColumns...), req.RightColumns...)
	rows, err := t.NumericMatrix(all, req.Filters, req.Flags)
	if err != nil {
		return nil, err
	}
	return canonical.Analyze(req.LeftColumns, req.RightColumns, rows)
}

func (e *Engine) runMutualInfo(t *table.Table, req analysis.Request) (*analysis.MutualInfoResult, error) {
	rows, err := t.NumericMatrix(req.Columns, req.Filters, req.Flags)
	if err != nil {
		return nil, err
	}
	return mutualinfo.Analyze(req.Columns, rows, req.MutualInfo)
}

func (e *Engine) runAssociationRules(t *table.Table, req analysis.Request) (*analysis.AssociationRuleResult, error) {
	rows, err := t.CategoricalRows(req.Columns, req.Filters, req.Flags)
	if err != nil {
		return nil, err
	}
	return apriori.Mine(req.Columns, rows, req.Apriori)
}

// orderedPairs builds the [x, y] projection used by the ordered-series
// analyses. An empty XColumn orders by row index.
func orderedPairs(t *table.Table, req analysis.Request, yColumn string) ([][]float64, string, error) {
	if req.XColumn != "" {
		rows, err := t.NumericMatrix([]string{req.XColumn, yColumn}, req.Filters, req.Flags)
		if err != nil {
			return nil, "", err
		}
		return rows, req.XColumn, nil
	}

	data, err := t.NumericColumn(yColumn, req.Filters, req.Flags)
	if err != nil {
		return nil, "", err
	}
	rows := make([][]float64, len(data))
	for i, v := range data {
		rows[i] = []float64{float64(i), v}
	}
	return rows, "index", nil
}
