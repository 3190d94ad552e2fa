package llm

import (
	"fmt"

	"github.com/ternarybob/aestimo/internal/common"
	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/arbor"
)

// NewProvider creates the analysis provider selected by configuration.
func NewProvider(config *common.Config, logger arbor.ILogger) (interfaces.AnalysisProvider, error) {
	switch config.LLM.DefaultProvider {
	case common.LLMProviderClaude:
		return NewClaudeProvider(config, logger)
	case common.LLMProviderGemini, "":
		return NewGeminiProvider(config, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", config.LLM.DefaultProvider)
	}
}
