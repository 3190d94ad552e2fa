package app

import (
	"fmt"

	"github.com/ternarybob/aestimo/internal/common"
	"github.com/ternarybob/aestimo/internal/handlers"
	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/services/analysis"
	"github.com/ternarybob/aestimo/internal/services/llm"
	"github.com/ternarybob/arbor"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Services
	Provider     interfaces.AnalysisProvider
	Orchestrator interfaces.AnalysisService

	// Handlers
	APIHandler      *handlers.APIHandler
	AnalysisHandler *handlers.AnalysisHandler
	PageHandler     *handlers.PageHandler
	WSHandler       *handlers.WebSocketHandler
}

// New creates the application container, wiring services and handlers.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: config,
		Logger: logger,
	}

	provider, err := llm.NewProvider(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize analysis provider: %w", err)
	}
	a.Provider = provider

	a.WSHandler = handlers.NewWebSocketHandler(logger)

	orchestrator := analysis.NewOrchestrator(config, provider, a.WSHandler, logger)
	a.Orchestrator = orchestrator
	a.WSHandler.SetStateSource(orchestrator.Snapshot)

	a.APIHandler = handlers.NewAPIHandler()
	a.AnalysisHandler = handlers.NewAnalysisHandler(orchestrator, logger)
	a.PageHandler = handlers.NewPageHandler(logger)

	logger.Info().
		Str("provider", provider.Name()).
		Msg("Application initialized")

	return a, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Orchestrator != nil {
		a.Orchestrator.Close()
	}
	a.Logger.Info().Msg("Application closed")
	return nil
}
