package models

// Valuation grades assigned by the analysis model.
const (
	ValuationGradeLow  = "Low"
	ValuationGradeFair = "Fair"
	ValuationGradeHigh = "High"
)

// Momentum grades assigned by the analysis model.
const (
	MomentumGradeStrong  = "Strong"
	MomentumGradeNeutral = "Neutral"
	MomentumGradeWeak    = "Weak"
)

// Recommendation values assigned by the analysis model.
const (
	RecommendationStrongBuy  = "Strong Buy"
	RecommendationBuy        = "Buy"
	RecommendationHold       = "Hold"
	RecommendationSell       = "Sell"
	RecommendationStrongSell = "Strong Sell"
)

// Source is a web citation attached to an analysis result.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// AnalysisResult holds the full three-factor assessment for a single ticker
// as returned by the model, plus the citations attached after the call.
type AnalysisResult struct {
	Ticker      string `json:"ticker" validate:"required"`
	CompanyName string `json:"company_name" validate:"required"`

	// Valuation
	CurrentPrice    float64 `json:"current_price"`
	ForwardPE       float64 `json:"forward_pe"`
	ForwardPE2Y     float64 `json:"forward_pe_2y"`
	SectorMedianPE  float64 `json:"sector_median_pe"`
	ValuationGrade  string  `json:"valuation_grade" validate:"required,oneof=Low Fair High"`
	ValueAssessment string  `json:"value_assessment"`

	// Quality
	ROE               float64 `json:"roe"`
	ROIC              float64 `json:"roic"`
	DebtToEquity      float64 `json:"debt_to_equity"`
	DCFIntrinsicValue float64 `json:"dcf_intrinsic_value"`
	DCFMarginOfSafety float64 `json:"dcf_margin_of_safety"`
	QualityScore      int     `json:"quality_score" validate:"min=0,max=100"`
	QualityAssessment string  `json:"quality_assessment"`

	// Momentum
	UpwardRevisions90D   int    `json:"upward_revisions_90d"`
	DownwardRevisions90D int    `json:"downward_revisions_90d"`
	MomentumGrade        string `json:"momentum_grade" validate:"required,oneof=Strong Neutral Weak"`
	MomentumAssessment   string `json:"momentum_assessment"`

	// Synthesis
	DeepAnalysis   string   `json:"deep_analysis"`
	Recommendation string   `json:"recommendation" validate:"required,oneof='Strong Buy' Buy Hold Sell 'Strong Sell'"`
	RiskFactors    []string `json:"risk_factors"`

	Sources []Source `json:"sources,omitempty"`
}

// DCFAvailable reports whether the discounted cash flow figures are usable.
// A zero intrinsic value is the sentinel for "model declined to estimate",
// in which case the margin of safety carries no meaning either.
func (r *AnalysisResult) DCFAvailable() bool {
	return r.DCFIntrinsicValue != 0
}
