package analysis

import "tablelens/domain/table"

// ============================================================================
// PARAMETERS — per-call configuration injected by the caller
// ============================================================================

// ChangePointParams tunes the detection strategies. Zero values fall back
// to the defaults below.
type ChangePointParams struct {
	Algorithm ChangePointAlgorithm `json:"algorithm"`

	// Moving average
	ShortWindow int     `json:"short_window,omitempty"`
	LongWindow  int     `json:"long_window,omitempty"`
	Threshold   float64 `json:"threshold,omitempty"` // in global std-dev units

	// CUSUM
	Slack        float64 `json:"slack,omitempty"`         // in std-dev units
	ControlLimit float64 `json:"control_limit,omitempty"` // in std-dev units

	// EWMA
	Lambda float64 `json:"lambda,omitempty"` // smoothing constant in (0,1]
	K      float64 `json:"k,omitempty"`      // band width in sigma units

	// Binary segmentation
	MinSegment   int     `json:"min_segment,omitempty"`
	Significance float64 `json:"significance,omitempty"` // minimum improvement ratio
}

// Defaults fills unset change-point parameters
func (p ChangePointParams) Defaults() ChangePointParams {
	if p.ShortWindow <= 0 {
		p.ShortWindow = 3
	}
	if p.LongWindow <= 0 {
		p.LongWindow = 8
	}
	if p.Threshold <= 0 {
		p.Threshold = 1.0
	}
	if p.Slack <= 0 {
		p.Slack = 0.5
	}
	if p.ControlLimit <= 0 {
		p.ControlLimit = 4.0
	}
	if p.Lambda <= 0 || p.Lambda > 1 {
		p.Lambda = 0.2
	}
	if p.K <= 0 {
		p.K = 3.0
	}
	if p.MinSegment <= 0 {
		p.MinSegment = 5
	}
	if p.Significance <= 0 {
		p.Significance = 0.1
	}
	return p
}

// AprioriParams tunes association rule mining
type AprioriParams struct {
	MinSupport    float64 `json:"min_support,omitempty"`
	MinConfidence float64 `json:"min_confidence,omitempty"`
}

// Defaults fills unset Apriori parameters
func (p AprioriParams) Defaults() AprioriParams {
	if p.MinSupport <= 0 {
		p.MinSupport = 0.1
	}
	if p.MinConfidence <= 0 {
		p.MinConfidence = 0.5
	}
	return p
}

// MutualInfoParams tunes pairwise MI estimation
type MutualInfoParams struct {
	Bins int `json:"bins,omitempty"` // discretization bins, default 10
}

// Defaults fills unset MI parameters
func (p MutualInfoParams) Defaults() MutualInfoParams {
	if p.Bins <= 0 {
		p.Bins = 10
	}
	return p
}

// Request is the single input to the dispatch facade. All configuration is
// explicit per call; the engine holds nothing between invocations.
type Request struct {
	Type    Type     `json:"type"`
	Table   string   `json:"table"`
	Columns []string `json:"columns"`

	// Canonical correlation sides (override Columns when set)
	LeftColumns  []string `json:"left_columns,omitempty"`
	RightColumns []string `json:"right_columns,omitempty"`

	// Ordering column for time series / change points; empty = row index
	XColumn string `json:"x_column,omitempty"`

	// Histogram
	BinCount int `json:"bin_count,omitempty"` // default 10

	Filters []table.Filter     `json:"filters,omitempty"`
	Flags   table.MissingFlags `json:"flags,omitempty"`

	ChangePoint ChangePointParams `json:"change_point,omitempty"`
	Apriori     AprioriParams     `json:"apriori,omitempty"`
	MutualInfo  MutualInfoParams  `json:"mutual_info,omitempty"`
}
