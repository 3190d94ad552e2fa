package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/arbor"
)

var validate = validator.New()

// responseEnvelope is the wire shape both providers return. Sources is only
// populated by backends that embed citations in the JSON body; Gemini
// delivers them through grounding metadata instead.
type responseEnvelope struct {
	Results []models.AnalysisResult `json:"results"`
	Sources []models.Source         `json:"sources,omitempty"`
}

// parseResponse decodes and validates a model response. Validation is all
// or nothing: a single schema-violating entry fails the whole batch, so
// partial or malformed records never reach the caller.
func parseResponse(text string, logger arbor.ILogger) (*responseEnvelope, error) {
	text = stripCodeFences(text)
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	var envelope responseEnvelope
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		logger.Warn().
			Err(err).
			Int("response_length", len(text)).
			Msg("Failed to decode analysis response")
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	// A nil slice means the results key was absent or null, which breaks the
	// response contract outright. A present-but-empty array is well-formed,
	// the model just produced nothing.
	if envelope.Results == nil {
		logger.Warn().Msg("Analysis response is missing the results array")
		return nil, fmt.Errorf("%w: missing results array", ErrMalformedResponse)
	}
	if len(envelope.Results) == 0 {
		return nil, ErrNoResults
	}

	for i := range envelope.Results {
		result := &envelope.Results[i]
		if err := validate.Struct(result); err != nil {
			logger.Warn().
				Str("ticker", result.Ticker).
				Err(err).
				Msg("Analysis result failed validation")
			return nil, fmt.Errorf("%w: result %q failed validation: %v", ErrMalformedResponse, result.Ticker, err)
		}
		// A declined DCF must zero both figures. Repair a stray margin so
		// the UI sentinel stays consistent.
		if result.DCFIntrinsicValue == 0 {
			result.DCFMarginOfSafety = 0
		}
		result.Ticker = strings.ToUpper(result.Ticker)
	}

	return &envelope, nil
}

// stripCodeFences removes a surrounding markdown code fence if present.
// Some models wrap JSON output in fences despite instructions not to.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// attachSources applies the batch citation policy: keep original order, drop
// entries without a URI, default a missing title to the URI, cap at max and
// attach the same list to every result.
func attachSources(results []models.AnalysisResult, sources []models.Source, max int) {
	kept := make([]models.Source, 0, max)
	for _, src := range sources {
		if src.URI == "" {
			continue
		}
		if src.Title == "" {
			src.Title = src.URI
		}
		kept = append(kept, src)
		if len(kept) >= max {
			break
		}
	}

	if len(kept) == 0 {
		return
	}
	for i := range results {
		results[i].Sources = kept
	}
}
