package analysis

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ternarybob/aestimo/internal/common"
	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/aestimo/internal/services/llm"
	"github.com/ternarybob/arbor"
)

// ErrMsgNoValidData is shown when a run resolves without any usable result,
// whether the model returned nothing, garbage, or an empty batch.
const ErrMsgNoValidData = "No valid data found for the provided tickers"

// Orchestrator owns the analysis lifecycle. State moves through
// idle -> loading -> (result | error) -> idle, with a synthetic progress
// estimator ticking while the provider call is outstanding. A single run is
// allowed at a time.
type Orchestrator struct {
	config   *common.Config
	logger   arbor.ILogger
	provider interfaces.AnalysisProvider
	sink     interfaces.ProgressSink

	tickInterval    time.Duration
	rampDuration    time.Duration
	completionDelay time.Duration

	mu    sync.Mutex
	state models.AnalysisState

	rootCtx    context.Context
	rootCancel context.CancelFunc
	wg         sync.WaitGroup
}

// NewOrchestrator creates an orchestrator in the idle state. The sink is
// optional; pass nil when no push channel is wired.
func NewOrchestrator(config *common.Config, provider interfaces.AnalysisProvider, sink interfaces.ProgressSink, logger arbor.ILogger) *Orchestrator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		config:          config,
		logger:          logger,
		provider:        provider,
		sink:            sink,
		tickInterval:    common.ParseDurationOr(config.Analysis.TickInterval, 100*time.Millisecond),
		rampDuration:    common.ParseDurationOr(config.Analysis.RampDuration, 10*time.Second),
		completionDelay: common.ParseDurationOr(config.Analysis.CompletionDelay, 500*time.Millisecond),
		state:           models.AnalysisState{Step: models.StepIdle},
		rootCtx:         ctx,
		rootCancel:      cancel,
	}
}

// Submit starts an analysis for the raw ticker input. Blank input and input
// that parses to no tickers are ignored. A submission while a run is in
// flight is rejected.
func (o *Orchestrator) Submit(raw string) bool {
	tickers := common.ParseSymbols(raw)
	if len(tickers) == 0 {
		o.logger.Debug().Str("input", raw).Msg("Ignoring submission with no tickers")
		return false
	}

	o.mu.Lock()
	if o.state.Loading {
		o.mu.Unlock()
		o.logger.Warn().Strs("tickers", tickers).Msg("Rejecting submission while analysis is in flight")
		return false
	}
	o.state = models.AnalysisState{
		Loading:  true,
		Progress: 0,
		Step:     models.StepProcessing,
	}
	snapshot := o.state
	o.mu.Unlock()

	o.publish(snapshot)
	o.logger.Info().Strs("tickers", tickers).Str("provider", o.provider.Name()).Msg("Analysis started")

	o.wg.Add(1)
	go o.run(o.rootCtx, tickers)
	return true
}

// DismissError clears an error outcome, returning to idle. No effect in any
// other state.
func (o *Orchestrator) DismissError() {
	o.mu.Lock()
	if o.state.Loading || o.state.Error == "" {
		o.mu.Unlock()
		return
	}
	o.state = models.AnalysisState{Step: models.StepIdle}
	snapshot := o.state
	o.mu.Unlock()

	o.publish(snapshot)
	o.logger.Debug().Msg("Error dismissed")
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() models.AnalysisState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Close cancels any in-flight run and waits for it to finish.
func (o *Orchestrator) Close() {
	o.rootCancel()
	o.wg.Wait()
}

// run performs one analysis: estimator up, one provider call, estimator
// down, then resolution. The estimator is always stopped before the state
// resolves, regardless of outcome.
func (o *Orchestrator) run(ctx context.Context, tickers []string) {
	defer o.wg.Done()

	estCtx, stopEstimator := context.WithCancel(ctx)
	var estWG sync.WaitGroup
	estWG.Add(1)
	go func() {
		defer estWG.Done()
		o.runEstimator(estCtx)
	}()

	startTime := time.Now()
	results, err := o.provider.Analyze(ctx, tickers)

	stopEstimator()
	estWG.Wait()

	if ctx.Err() != nil {
		return
	}

	if err != nil || len(results) == 0 {
		o.resolveError(tickers, err, time.Since(startTime))
		return
	}

	// Snap to 100 and hold briefly so the bar visibly completes before the
	// results replace it.
	o.setProgress(100)
	select {
	case <-ctx.Done():
		return
	case <-time.After(o.completionDelay):
	}

	// Completed progress stays in the terminal record so late pollers see a
	// finished bar alongside the results rather than a reset one.
	o.mu.Lock()
	o.state = models.AnalysisState{
		Progress: 100,
		Step:     models.StepIdle,
		Results:  results,
	}
	snapshot := o.state
	o.mu.Unlock()

	o.publish(snapshot)
	o.logger.Info().
		Int("result_count", len(results)).
		Dur("duration", time.Since(startTime)).
		Msg("Analysis completed")
}

// resolveError maps a failed run onto the error state. Empty, malformed and
// zero-result responses all share one user-facing message; transport errors
// surface their own message.
func (o *Orchestrator) resolveError(tickers []string, err error, duration time.Duration) {
	message := ErrMsgNoValidData
	if err != nil && !errors.Is(err, llm.ErrEmptyResponse) && !errors.Is(err, llm.ErrMalformedResponse) && !errors.Is(err, llm.ErrNoResults) {
		message = err.Error()
	}

	o.mu.Lock()
	o.state = models.AnalysisState{
		Step:  models.StepIdle,
		Error: message,
	}
	snapshot := o.state
	o.mu.Unlock()

	o.publish(snapshot)
	o.logger.Error().
		Err(err).
		Strs("tickers", tickers).
		Dur("duration", duration).
		Msg("Analysis failed")
}

// runEstimator ramps displayed progress linearly toward the ceiling over
// the ramp duration. Progress only ever increases; the actual request
// outcome is what moves it past the ceiling.
func (o *Orchestrator) runEstimator(ctx context.Context) {
	start := time.Now()
	ticker := time.NewTicker(o.tickInterval)
	defer ticker.Stop()

	ceiling := o.config.Analysis.ProgressCeiling
	ramp := o.rampDuration

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			target := ceiling
			if elapsed := time.Since(start); elapsed < ramp {
				target = int(float64(ceiling) * float64(elapsed) / float64(ramp))
			}
			o.setProgress(target)
		}
	}
}

// setProgress raises progress to target if the run is still loading and the
// target is an increase. Lower targets are ignored to keep the bar monotone.
func (o *Orchestrator) setProgress(target int) {
	o.mu.Lock()
	if !o.state.Loading || target <= o.state.Progress {
		o.mu.Unlock()
		return
	}
	o.state.Progress = target
	snapshot := o.state
	o.mu.Unlock()

	o.publish(snapshot)
}

func (o *Orchestrator) publish(state models.AnalysisState) {
	if o.sink != nil {
		o.sink.PublishState(state)
	}
}
