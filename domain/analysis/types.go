package analysis

import (
	"fmt"

	"tablelens/domain/core"
)

// ============================================================================
// ANALYSIS TYPES — Closed result union, one variant per analysis
// ============================================================================

// Type identifies an analysis performed by the engine
type Type string

const (
	TypeBasicStats       Type = "basic_stats"
	TypeCorrelation      Type = "correlation"
	TypeHistogram        Type = "histogram"
	TypeTimeSeries       Type = "time_series"
	TypeChangePoints     Type = "change_points"
	TypeFactor           Type = "factor"
	TypeCanonical        Type = "canonical_correlation"
	TypeMutualInfo       Type = "mutual_information"
	TypeAssociationRules Type = "association_rules"
)

// ColumnBounds defines the [min,max] column counts a type accepts.
// Max <= 0 means unbounded.
type ColumnBounds struct {
	Min int
	Max int
}

// Bounds returns the column-count bounds for each analysis type
func (t Type) Bounds() (ColumnBounds, bool) {
	switch t {
	case TypeBasicStats, TypeHistogram, TypeTimeSeries, TypeChangePoints:
		return ColumnBounds{Min: 1, Max: 0}, true
	case TypeCorrelation, TypeFactor, TypeMutualInfo, TypeAssociationRules:
		return ColumnBounds{Min: 2, Max: 0}, true
	case TypeCanonical:
		// Two sides of >= 1 each; the facade additionally checks both sides.
		return ColumnBounds{Min: 2, Max: 0}, true
	default:
		return ColumnBounds{}, false
	}
}

// ChangePointAlgorithm selects a change-point detection strategy
type ChangePointAlgorithm string

const (
	AlgoMovingAverage      ChangePointAlgorithm = "moving_average"
	AlgoCUSUM              ChangePointAlgorithm = "cusum"
	AlgoEWMA               ChangePointAlgorithm = "ewma"
	AlgoBinarySegmentation ChangePointAlgorithm = "binary_segmentation"
)

// ============================================================================
// RESULT VARIANTS
// ============================================================================

// ColumnStats holds descriptive statistics for one column
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// BasicStatsResult carries per-column descriptive statistics
type BasicStatsResult struct {
	Columns []ColumnStats `json:"columns"`
}

// CorrelationResult is the pairwise Pearson matrix
type CorrelationResult struct {
	Columns []string    `json:"columns"`
	Matrix  [][]float64 `json:"matrix"` // Matrix[i][j] = r(Columns[i], Columns[j])
}

// HistogramBin is one equal-width bin
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// HistogramResult holds equal-width binning for one column
type HistogramResult struct {
	Column   string         `json:"column"`
	BinCount int            `json:"bin_count"`
	Bins     []HistogramBin `json:"bins"`
}

// TimeSeriesPoint is one aggregated x position
type TimeSeriesPoint struct {
	X     float64 `json:"x"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// TimeSeriesResult holds per-x aggregates of one y column
type TimeSeriesResult struct {
	XColumn string            `json:"x_column"`
	YColumn string            `json:"y_column"`
	Points  []TimeSeriesPoint `json:"points"`
}

// ChangePoint is a detected shift in an ordered series.
// Confidence is in [0,1] and monotone in deviation magnitude for a
// given algorithm.
type ChangePoint struct {
	Index      int                  `json:"index"`
	Value      float64              `json:"value"`
	Confidence float64              `json:"confidence"`
	Algorithm  ChangePointAlgorithm `json:"algorithm"`
}

// ChangePointResult is the output of one detection run
type ChangePointResult struct {
	Column    string               `json:"column"`
	XColumn   string               `json:"x_column,omitempty"`
	Algorithm ChangePointAlgorithm `json:"algorithm"`
	Points    []ChangePoint        `json:"points"`
}

// FactorComponent is one ranked principal component
type FactorComponent struct {
	Eigenvalue        float64   `json:"eigenvalue"`
	VarianceExplained float64   `json:"variance_explained"` // percent of total variance
	Loadings          []float64 `json:"loadings"`           // keyed to FactorResult.Columns
}

// FactorResult holds the PCA / factor decomposition
type FactorResult struct {
	Columns    []string          `json:"columns"`
	Components []FactorComponent `json:"components"`
}

// CanonicalVariate is one canonical correlation pair
type CanonicalVariate struct {
	Correlation        float64   `json:"correlation"`         // in [0,1]
	VarianceExplained  float64   `json:"variance_explained"`  // percent, sums to 100
	CumulativeVariance float64   `json:"cumulative_variance"` // non-decreasing, ends ~100
	WilksLambda        float64   `json:"wilks_lambda"`
	ChiSquare          float64   `json:"chi_square"`
	PValue             float64   `json:"p_value"`       // exp(-chi2/2) approximation
	PValueExact        float64   `json:"p_value_exact"` // chi-square survival function
	LeftCoefficients   []float64 `json:"left_coefficients"`  // keyed to LeftColumns
	RightCoefficients  []float64 `json:"right_coefficients"` // keyed to RightColumns
}

// CanonicalResult holds the full canonical correlation analysis
type CanonicalResult struct {
	LeftColumns  []string           `json:"left_columns"`
	RightColumns []string           `json:"right_columns"`
	SampleSize   int                `json:"sample_size"`
	Variates     []CanonicalVariate `json:"variates"` // sorted by correlation descending
}

// MutualInfoStrength classifies a pair by MI magnitude
type MutualInfoStrength string

const (
	StrengthStrong      MutualInfoStrength = "strong"
	StrengthModerate    MutualInfoStrength = "moderate"
	StrengthWeak        MutualInfoStrength = "weak"
	StrengthIndependent MutualInfoStrength = "independent"
)

// MutualInfoPair holds entropy and MI for one column pair
type MutualInfoPair struct {
	ColumnX      string             `json:"column_x"`
	ColumnY      string             `json:"column_y"`
	EntropyX     float64            `json:"entropy_x"`
	EntropyY     float64            `json:"entropy_y"`
	JointEntropy float64            `json:"joint_entropy"`
	MI           float64            `json:"mi"`
	NormalizedMI float64            `json:"normalized_mi"` // in [0,1]
	Strength     MutualInfoStrength `json:"strength"`
}

// MutualInfoResult holds all C(k,2) pairs ranked by MI descending
type MutualInfoResult struct {
	Columns []string         `json:"columns"`
	Pairs   []MutualInfoPair `json:"pairs"`
}

// AssociationRule is one antecedent -> consequent rule.
// Conviction is +Inf when confidence is exactly 1; it serializes as the
// string "inf" through ConvictionLabel for JSON consumers.
type AssociationRule struct {
	Antecedent []string `json:"antecedent"`
	Consequent []string `json:"consequent"`
	Support    float64  `json:"support"`
	Confidence float64  `json:"confidence"`
	Lift       float64  `json:"lift"`
	Conviction float64  `json:"-"`
}

// ConvictionLabel renders conviction, including the infinite case
func (r AssociationRule) ConvictionLabel() string {
	if r.Confidence >= 1 {
		return "inf"
	}
	return fmt.Sprintf("%.4f", r.Conviction)
}

// AssociationRuleResult holds mined rules. An empty Rules slice is a valid,
// non-error outcome when nothing clears the support threshold.
type AssociationRuleResult struct {
	Columns       []string          `json:"columns"`
	MinSupport    float64           `json:"min_support"`
	MinConfidence float64           `json:"min_confidence"`
	Transactions  int               `json:"transactions"`
	Rules         []AssociationRule `json:"rules"`
}

// ============================================================================
// RESULT UNION
// ============================================================================

// Result is the closed tagged union returned by the dispatch facade.
// Exactly one payload pointer is non-nil, matching Type. Instances are
// produced fresh per call and never mutated after return.
type Result struct {
	ID        core.AnalysisID `json:"id"`
	Type      Type            `json:"type"`
	Table     string          `json:"table"`
	CreatedAt core.Timestamp  `json:"created_at"`

	BasicStats       *BasicStatsResult      `json:"basic_stats,omitempty"`
	Correlation      *CorrelationResult     `json:"correlation,omitempty"`
	Histogram        *HistogramResult       `json:"histogram,omitempty"`
	TimeSeries       *TimeSeriesResult      `json:"time_series,omitempty"`
	ChangePoints     *ChangePointResult     `json:"change_points,omitempty"`
	Factor           *FactorResult          `json:"factor,omitempty"`
	Canonical        *CanonicalResult       `json:"canonical,omitempty"`
	MutualInfo       *MutualInfoResult      `json:"mutual_info,omitempty"`
	AssociationRules *AssociationRuleResult `json:"association_rules,omitempty"`
}

// NewResult creates the envelope for one analysis invocation
func NewResult(t Type, tableName string) *Result {
	return &Result{
		ID:        core.AnalysisID(core.NewID()),
		Type:      t,
		Table:     tableName,
		CreatedAt: core.Now(),
	}
}

// Validate checks that exactly one payload matches Type
func (r *Result) Validate() error {
	payloads := map[Type]bool{
		TypeBasicStats:       r.BasicStats != nil,
		TypeCorrelation:      r.Correlation != nil,
		TypeHistogram:        r.Histogram != nil,
		TypeTimeSeries:       r.TimeSeries != nil,
		TypeChangePoints:     r.ChangePoints != nil,
		TypeFactor:           r.Factor != nil,
		TypeCanonical:        r.Canonical != nil,
		TypeMutualInfo:       r.MutualInfo != nil,
		TypeAssociationRules: r.AssociationRules != nil,
	}
	for t, set := range payloads {
		if t == r.Type && !set {
			return fmt.Errorf("result type %s has no payload", t)
		}
		if t != r.Type && set {
			return fmt.Errorf("result type %s carries stray %s payload", r.Type, t)
		}
	}
	return nil
}
