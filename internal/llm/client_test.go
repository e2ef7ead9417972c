package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	for _, p := range []Provider{ProviderGemini, ProviderOpenAI, ProviderAnthropic} {
		t.Run(string(p), func(t *testing.T) {
			_, err := NewClient(context.Background(), DefaultConfigFor(p), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "API key is required")
		})
	}
}

func TestNewClient_SelectsProvider(t *testing.T) {
	c, err := NewClient(context.Background(), DefaultOpenAIConfig(), "sk-test")
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)
	assert.Equal(t, "gpt-4o-mini", c.GetModel(TierLite))
	assert.NoError(t, c.Close())

	c, err = NewClient(context.Background(), DefaultAnthropicConfig(), "sk-ant-test")
	require.NoError(t, err)
	assert.IsType(t, &AnthropicClient{}, c)
	assert.Equal(t, "claude-sonnet-4-20250514", c.GetModel(TierStandard))
	assert.NoError(t, c.Close())
}

func TestOpenAIClient_NoModelForTier(t *testing.T) {
	c, err := NewOpenAIClient(&Config{Provider: ProviderOpenAI, Models: map[ModelTier]string{}}, "sk-test")
	require.NoError(t, err)

	_, err = c.GenerateJSON(context.Background(), "prompt", TierLite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no model configured")
}

func TestMapOpenAIError(t *testing.T) {
	var rl *ErrRateLimit
	assert.True(t, errors.As(mapOpenAIError(&openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}), &rl))

	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(mapOpenAIError(&openai.APIError{HTTPStatusCode: http.StatusBadGateway}), &unavail))
	assert.True(t, errors.As(mapOpenAIError(errors.New("connection reset")), &unavail))

	err := mapOpenAIError(&openai.APIError{HTTPStatusCode: http.StatusBadRequest, Message: "bad"})
	assert.False(t, errors.As(err, &unavail))
	assert.False(t, errors.As(err, &rl))
}

func TestMapGeminiError(t *testing.T) {
	var rl *ErrRateLimit
	assert.True(t, errors.As(mapGeminiError(&googleapi.Error{Code: http.StatusTooManyRequests}), &rl))

	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(mapGeminiError(&googleapi.Error{Code: http.StatusServiceUnavailable}), &unavail))

	err := mapGeminiError(&googleapi.Error{Code: http.StatusForbidden, Message: "denied"})
	assert.Contains(t, err.Error(), "failed to generate content")
	assert.False(t, errors.As(err, &unavail))
}
