package interfaces

import (
	"context"

	"github.com/ternarybob/aestimo/internal/models"
)

// AnalysisProvider performs a grounded AI analysis for a batch of tickers.
// Implementations make exactly one model call per Analyze invocation; there
// is no internal retry. Results carry citations when the backend supplies
// grounding metadata.
type AnalysisProvider interface {
	// Analyze evaluates the given tickers and returns one result per company
	// the model could assess. Tickers the model cannot resolve are simply
	// absent from the slice; an empty slice with a nil error is possible.
	Analyze(ctx context.Context, tickers []string) ([]models.AnalysisResult, error)

	// Name returns the provider identifier, e.g. "gemini" or "claude".
	Name() string
}

// AnalysisService owns the analysis lifecycle: accepting requests, tracking
// progress and exposing the current state to handlers.
type AnalysisService interface {
	// Submit starts an analysis for the raw ticker input. It returns false
	// when a run is already in flight or the input parses to no tickers.
	Submit(raw string) bool

	// DismissError clears an error outcome and returns the state to idle.
	// It has no effect in any other state.
	DismissError()

	// Snapshot returns a copy of the current state.
	Snapshot() models.AnalysisState

	// Close cancels any in-flight run and releases resources.
	Close()
}

// ProgressSink receives state snapshots as the orchestrator moves through
// its lifecycle. Implementations must not block.
type ProgressSink interface {
	PublishState(state models.AnalysisState)
}
