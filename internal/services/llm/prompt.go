package llm

import (
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// systemInstruction frames the three-factor methodology the model applies to
// every ticker in a batch. Both providers share it so results are comparable
// regardless of backend.
const systemInstruction = `You are a senior equity research analyst. For each stock ticker you are given, produce a complete three-factor assessment grounded in current public data.

Factor 1 - Valuation: Find the current price, forward P/E, two-year forward P/E and the sector median forward P/E. Grade the valuation "Low", "Fair" or "High" relative to the sector median and the company's growth, and write a short value assessment.

Factor 2 - Quality: Report return on equity, return on invested capital and debt-to-equity. Run a discounted cash flow estimate of intrinsic value per share and the implied margin of safety versus the current price. If free cash flow is negative or erratic, or the business model makes a DCF unreliable (pre-profit companies, financials), set dcf_intrinsic_value and dcf_margin_of_safety both to 0 instead of guessing. Score overall quality from 0 to 100 and write a short quality assessment.

Factor 3 - Momentum: Count upward and downward analyst estimate revisions over the last 90 days. Grade momentum "Strong", "Neutral" or "Weak" and write a short momentum assessment.

Synthesis: Write a deep analysis paragraph combining all three factors, assign a recommendation from "Strong Buy", "Buy", "Hold", "Sell", "Strong Sell", and list the main risk factors.

Rules:
- Return one result object per ticker you can identify as a real, currently listed company.
- Skip tickers you cannot resolve. Never invent a company to fill a slot.
- All numeric fields are plain numbers. Never use strings like "N/A" in numeric fields.
- Respond with JSON only, matching the requested schema exactly.`

// buildUserPrompt renders the batch request for a set of tickers.
func buildUserPrompt(tickers []string) string {
	return fmt.Sprintf("Analyze the following stock tickers: %s", strings.Join(tickers, ", "))
}

// analysisResultSchema describes a single result object. Field names must
// stay in sync with the JSON tags on models.AnalysisResult.
func analysisResultSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"ticker":       {Type: genai.TypeString, Description: "Uppercase ticker symbol as given"},
			"company_name": {Type: genai.TypeString},

			"current_price":    {Type: genai.TypeNumber},
			"forward_pe":       {Type: genai.TypeNumber},
			"forward_pe_2y":    {Type: genai.TypeNumber},
			"sector_median_pe": {Type: genai.TypeNumber},
			"valuation_grade": {
				Type: genai.TypeString,
				Enum: []string{"Low", "Fair", "High"},
			},
			"value_assessment": {Type: genai.TypeString},

			"roe":            {Type: genai.TypeNumber},
			"roic":           {Type: genai.TypeNumber},
			"debt_to_equity": {Type: genai.TypeNumber},
			"dcf_intrinsic_value": {
				Type:        genai.TypeNumber,
				Description: "Estimated intrinsic value per share, or 0 when a DCF is not meaningful",
			},
			"dcf_margin_of_safety": {
				Type:        genai.TypeNumber,
				Description: "Percent upside to intrinsic value, or 0 when dcf_intrinsic_value is 0",
			},
			"quality_score":      {Type: genai.TypeInteger, Description: "0 to 100"},
			"quality_assessment": {Type: genai.TypeString},

			"upward_revisions_90d":   {Type: genai.TypeInteger},
			"downward_revisions_90d": {Type: genai.TypeInteger},
			"momentum_grade": {
				Type: genai.TypeString,
				Enum: []string{"Strong", "Neutral", "Weak"},
			},
			"momentum_assessment": {Type: genai.TypeString},

			"deep_analysis": {Type: genai.TypeString},
			"recommendation": {
				Type: genai.TypeString,
				Enum: []string{"Strong Buy", "Buy", "Hold", "Sell", "Strong Sell"},
			},
			"risk_factors": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{
			"ticker", "company_name", "current_price",
			"forward_pe", "forward_pe_2y", "sector_median_pe",
			"valuation_grade", "value_assessment",
			"roe", "roic", "debt_to_equity",
			"dcf_intrinsic_value", "dcf_margin_of_safety",
			"quality_score", "quality_assessment",
			"upward_revisions_90d", "downward_revisions_90d",
			"momentum_grade", "momentum_assessment",
			"deep_analysis", "recommendation", "risk_factors",
		},
	}
}

// batchResponseSchema wraps the result schema in the envelope both
// providers return.
func batchResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"results": {
				Type:  genai.TypeArray,
				Items: analysisResultSchema(),
			},
		},
		Required: []string{"results"},
	}
}
