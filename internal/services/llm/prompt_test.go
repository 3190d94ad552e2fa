package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestBuildUserPrompt(t *testing.T) {
	prompt := buildUserPrompt([]string{"AAPL", "NVDA", "TSLA"})
	assert.Equal(t, "Analyze the following stock tickers: AAPL, NVDA, TSLA", prompt)
}

func TestBatchResponseSchema(t *testing.T) {
	schema := batchResponseSchema()

	require.Equal(t, genai.TypeObject, schema.Type)
	require.Contains(t, schema.Properties, "results")
	assert.Equal(t, []string{"results"}, schema.Required)

	results := schema.Properties["results"]
	require.Equal(t, genai.TypeArray, results.Type)
	require.NotNil(t, results.Items)

	item := results.Items
	assert.Equal(t, genai.TypeObject, item.Type)

	// Every required field must exist in the properties map, and the JSON
	// field names must match the model struct tags.
	for _, field := range item.Required {
		assert.Contains(t, item.Properties, field)
	}

	assert.ElementsMatch(t, []string{"Low", "Fair", "High"}, item.Properties["valuation_grade"].Enum)
	assert.ElementsMatch(t, []string{"Strong", "Neutral", "Weak"}, item.Properties["momentum_grade"].Enum)
	assert.ElementsMatch(t,
		[]string{"Strong Buy", "Buy", "Hold", "Sell", "Strong Sell"},
		item.Properties["recommendation"].Enum)
}
