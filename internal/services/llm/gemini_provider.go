package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/aestimo/internal/common"
	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// GeminiProvider performs grounded stock analysis through the Gemini API.
// It combines GoogleSearch grounding with a structured output schema and
// reads citations from the response grounding metadata.
type GeminiProvider struct {
	config  *common.Config
	logger  arbor.ILogger
	client  *genai.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// NewGeminiProvider creates a Gemini-backed analysis provider.
func NewGeminiProvider(config *common.Config, logger arbor.ILogger) (*GeminiProvider, error) {
	if config.Gemini.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set AESTIMO_GEMINI_API_KEY, GEMINI_API_KEY, or gemini.api_key in config)")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	timeout := common.ParseDurationOr(config.Gemini.Timeout, 5*time.Minute)
	interval := common.ParseDurationOr(config.Gemini.RateLimit, 4*time.Second)

	logger.Info().
		Str("model", config.Gemini.Model).
		Dur("timeout", timeout).
		Dur("rate_limit", interval).
		Msg("Gemini analysis provider initialized")

	return &GeminiProvider{
		config:  config,
		logger:  logger,
		client:  client,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		timeout: timeout,
	}, nil
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return string(common.LLMProviderGemini)
}

// Analyze runs a single grounded model call for the ticker batch. There is
// no retry; a failed call surfaces to the caller as-is.
func (p *GeminiProvider) Analyze(ctx context.Context, tickers []string) ([]models.AnalysisResult, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("tickers cannot be empty")
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(p.config.Gemini.Temperature),
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   batchResponseSchema(),
	}

	startTime := time.Now()
	p.logger.Info().
		Strs("tickers", tickers).
		Str("model", p.config.Gemini.Model).
		Msg("Starting Gemini analysis")

	resp, err := p.client.Models.GenerateContent(
		callCtx,
		p.config.Gemini.Model,
		[]*genai.Content{
			genai.NewContentFromText(buildUserPrompt(tickers), genai.RoleUser),
		},
		genConfig,
	)
	if err != nil {
		p.logger.Error().
			Err(err).
			Strs("tickers", tickers).
			Msg("Gemini analysis call failed")
		return nil, fmt.Errorf("Gemini analysis call failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrEmptyResponse
	}

	envelope, err := parseResponse(resp.Text(), p.logger)
	if err != nil {
		return nil, err
	}

	attachSources(envelope.Results, extractGroundingSources(resp), p.config.Analysis.MaxSources)

	p.logger.Info().
		Int("result_count", len(envelope.Results)).
		Dur("duration", time.Since(startTime)).
		Msg("Gemini analysis completed")

	return envelope.Results, nil
}

// extractGroundingSources pulls web citations from the first candidate's
// grounding metadata, preserving the order the API returned them in.
func extractGroundingSources(resp *genai.GenerateContentResponse) []models.Source {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}

	gm := resp.Candidates[0].GroundingMetadata
	if gm.GroundingChunks == nil {
		return nil
	}

	sources := make([]models.Source, 0, len(gm.GroundingChunks))
	for _, chunk := range gm.GroundingChunks {
		if chunk.Web != nil {
			sources = append(sources, models.Source{
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			})
		}
	}
	return sources
}
