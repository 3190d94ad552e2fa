package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/arbor"
)

func validResultJSON(ticker string) string {
	return fmt.Sprintf(`{
		"ticker": "%s",
		"company_name": "Test Corp",
		"current_price": 150.25,
		"forward_pe": 24.1,
		"forward_pe_2y": 21.3,
		"sector_median_pe": 22.0,
		"valuation_grade": "Fair",
		"value_assessment": "Trading near sector median",
		"roe": 28.5,
		"roic": 19.2,
		"debt_to_equity": 1.4,
		"dcf_intrinsic_value": 165.00,
		"dcf_margin_of_safety": 9.8,
		"quality_score": 82,
		"quality_assessment": "High returns on capital",
		"upward_revisions_90d": 12,
		"downward_revisions_90d": 3,
		"momentum_grade": "Strong",
		"momentum_assessment": "Estimates trending up",
		"deep_analysis": "Solid compounder at a fair price.",
		"recommendation": "Buy",
		"risk_factors": ["Multiple compression", "FX exposure"]
	}`, ticker)
}

func TestParseResponse(t *testing.T) {
	logger := arbor.NewLogger()

	t.Run("Valid batch", func(t *testing.T) {
		response := fmt.Sprintf(`{"results": [%s, %s]}`, validResultJSON("AAPL"), validResultJSON("NVDA"))

		envelope, err := parseResponse(response, logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(envelope.Results) != 2 {
			t.Fatalf("got %d results, want 2", len(envelope.Results))
		}
		if envelope.Results[0].Ticker != "AAPL" || envelope.Results[1].Ticker != "NVDA" {
			t.Errorf("unexpected tickers: %s, %s", envelope.Results[0].Ticker, envelope.Results[1].Ticker)
		}
	})

	t.Run("Fenced JSON", func(t *testing.T) {
		response := "```json\n" + fmt.Sprintf(`{"results": [%s]}`, validResultJSON("MSFT")) + "\n```"

		envelope, err := parseResponse(response, logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(envelope.Results) != 1 {
			t.Fatalf("got %d results, want 1", len(envelope.Results))
		}
	})

	t.Run("Empty text", func(t *testing.T) {
		_, err := parseResponse("   ", logger)
		if !errors.Is(err, ErrEmptyResponse) {
			t.Errorf("got %v, want ErrEmptyResponse", err)
		}
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		_, err := parseResponse(`{"results": [{"ticker": `, logger)
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("got %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("One invalid entry fails the whole batch", func(t *testing.T) {
		badResult := `{"ticker": "BAD", "company_name": "Bad Corp", "valuation_grade": "Medium", "momentum_grade": "Strong", "recommendation": "Buy"}`
		response := fmt.Sprintf(`{"results": [%s, %s]}`, badResult, validResultJSON("TSLA"))

		_, err := parseResponse(response, logger)
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("got %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("Missing results array is malformed", func(t *testing.T) {
		_, err := parseResponse(`{"sources": []}`, logger)
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("got %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("Null results array is malformed", func(t *testing.T) {
		_, err := parseResponse(`{"results": null}`, logger)
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("got %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("Empty results array", func(t *testing.T) {
		_, err := parseResponse(`{"results": []}`, logger)
		if !errors.Is(err, ErrNoResults) {
			t.Errorf("got %v, want ErrNoResults", err)
		}
	})

	t.Run("Lowercase ticker normalized", func(t *testing.T) {
		response := fmt.Sprintf(`{"results": [%s]}`, validResultJSON("aapl"))

		envelope, err := parseResponse(response, logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if envelope.Results[0].Ticker != "AAPL" {
			t.Errorf("ticker = %s, want AAPL", envelope.Results[0].Ticker)
		}
	})
}

func TestParseResponse_DCFSentinel(t *testing.T) {
	logger := arbor.NewLogger()

	// Zero intrinsic value must zero the margin of safety even when the
	// model filled one in.
	response := `{"results": [{
		"ticker": "RIVN",
		"company_name": "Rivian Automotive",
		"current_price": 12.10,
		"forward_pe": 0,
		"forward_pe_2y": 0,
		"sector_median_pe": 6.5,
		"valuation_grade": "High",
		"value_assessment": "Pre-profit",
		"roe": -40.2,
		"roic": -25.1,
		"debt_to_equity": 0.6,
		"dcf_intrinsic_value": 0,
		"dcf_margin_of_safety": 35.0,
		"quality_score": 30,
		"quality_assessment": "Cash burn remains high",
		"upward_revisions_90d": 1,
		"downward_revisions_90d": 8,
		"momentum_grade": "Weak",
		"momentum_assessment": "Estimates falling",
		"deep_analysis": "Speculative until cash flow turns.",
		"recommendation": "Sell",
		"risk_factors": ["Dilution"]
	}]}`

	envelope, err := parseResponse(response, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(envelope.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(envelope.Results))
	}

	result := envelope.Results[0]
	if result.DCFAvailable() {
		t.Error("expected DCF to be unavailable")
	}
	if result.DCFMarginOfSafety != 0 {
		t.Errorf("margin of safety = %v, want 0", result.DCFMarginOfSafety)
	}
}

func TestAttachSources(t *testing.T) {
	t.Run("Cap applied in original order", func(t *testing.T) {
		results := []models.AnalysisResult{{Ticker: "AAPL"}, {Ticker: "NVDA"}}
		sources := make([]models.Source, 0, 10)
		for i := 0; i < 10; i++ {
			sources = append(sources, models.Source{
				Title: fmt.Sprintf("Source %d", i),
				URI:   fmt.Sprintf("https://example.com/%d", i),
			})
		}

		attachSources(results, sources, 5)

		for _, result := range results {
			if len(result.Sources) != 5 {
				t.Fatalf("ticker %s has %d sources, want 5", result.Ticker, len(result.Sources))
			}
			for i, src := range result.Sources {
				want := fmt.Sprintf("https://example.com/%d", i)
				if src.URI != want {
					t.Errorf("source[%d].URI = %s, want %s", i, src.URI, want)
				}
			}
		}
	})

	t.Run("Missing URI filtered, missing title defaulted", func(t *testing.T) {
		results := []models.AnalysisResult{{Ticker: "MSFT"}}
		sources := []models.Source{
			{Title: "No link"},
			{URI: "https://example.com/untitled"},
			{Title: "Named", URI: "https://example.com/named"},
		}

		attachSources(results, sources, 5)

		got := results[0].Sources
		if len(got) != 2 {
			t.Fatalf("got %d sources, want 2", len(got))
		}
		if got[0].Title != "https://example.com/untitled" {
			t.Errorf("defaulted title = %s, want URI", got[0].Title)
		}
		if got[1].Title != "Named" {
			t.Errorf("title = %s, want Named", got[1].Title)
		}
	})

	t.Run("No usable sources leaves results untouched", func(t *testing.T) {
		results := []models.AnalysisResult{{Ticker: "GOOG"}}
		attachSources(results, []models.Source{{Title: "orphan"}}, 5)

		if results[0].Sources != nil {
			t.Errorf("expected nil sources, got %v", results[0].Sources)
		}
	})
}
