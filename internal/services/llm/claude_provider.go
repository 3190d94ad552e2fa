package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/aestimo/internal/common"
	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

// claudeSourcesAddendum extends the shared instruction for backends without
// grounding metadata: citations ride inside the JSON body instead.
const claudeSourcesAddendum = `

In addition to "results", include a top-level "sources" array listing up to 5 of the most important web sources you relied on, each as {"title": string, "uri": string}. Return {"results": [...], "sources": [...]} and nothing else.`

// ClaudeProvider performs stock analysis through the Anthropic API.
type ClaudeProvider struct {
	config  *common.Config
	logger  arbor.ILogger
	client  anthropic.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// NewClaudeProvider creates a Claude-backed analysis provider.
func NewClaudeProvider(config *common.Config, logger arbor.ILogger) (*ClaudeProvider, error) {
	if config.Claude.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required (set AESTIMO_CLAUDE_API_KEY, ANTHROPIC_API_KEY, or claude.api_key in config)")
	}

	client := anthropic.NewClient(
		option.WithAPIKey(config.Claude.APIKey),
	)

	timeout := common.ParseDurationOr(config.Claude.Timeout, 5*time.Minute)
	interval := common.ParseDurationOr(config.Claude.RateLimit, time.Second)

	logger.Info().
		Str("model", config.Claude.Model).
		Dur("timeout", timeout).
		Dur("rate_limit", interval).
		Msg("Claude analysis provider initialized")

	return &ClaudeProvider{
		config:  config,
		logger:  logger,
		client:  client,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		timeout: timeout,
	}, nil
}

// Name returns the provider identifier.
func (p *ClaudeProvider) Name() string {
	return string(common.LLMProviderClaude)
}

// Analyze runs a single model call for the ticker batch. There is no retry.
func (p *ClaudeProvider) Analyze(ctx context.Context, tickers []string) ([]models.AnalysisResult, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("tickers cannot be empty")
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.config.Claude.Model),
		MaxTokens: int64(p.config.Claude.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildUserPrompt(tickers))),
		},
		System: []anthropic.TextBlockParam{
			{Text: systemInstruction + claudeSourcesAddendum},
		},
	}
	if p.config.Claude.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(p.config.Claude.Temperature))
	}

	startTime := time.Now()
	p.logger.Info().
		Strs("tickers", tickers).
		Str("model", p.config.Claude.Model).
		Msg("Starting Claude analysis")

	resp, err := p.client.Messages.New(callCtx, params)
	if err != nil {
		p.logger.Error().
			Err(err).
			Strs("tickers", tickers).
			Msg("Claude analysis call failed")
		return nil, fmt.Errorf("Claude analysis call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, ErrEmptyResponse
	}

	envelope, err := parseResponse(text.String(), p.logger)
	if err != nil {
		return nil, err
	}

	attachSources(envelope.Results, envelope.Sources, p.config.Analysis.MaxSources)

	p.logger.Info().
		Int("result_count", len(envelope.Results)).
		Dur("duration", time.Since(startTime)).
		Msg("Claude analysis completed")

	return envelope.Results, nil
}
