package ai

import (
	"BackgroundRemover/internal/config"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewFromConfig(t *testing.T) {
	logger := zap.NewNop().Sugar()
	cfg := config.Defaults()

	cfg.ModelProvider = config.ProviderStub
	c, err := NewFromConfig(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &StubClient{}, c)

	cfg.ModelProvider = config.ProviderGeminiREST
	cfg.Gemini.APIKey = "k"
	c, err = NewFromConfig(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &GeminiRESTClient{}, c)

	cfg.ModelProvider = config.ProviderOpenAI
	cfg.OpenAI.APIKey = "sk"
	c, err = NewFromConfig(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	cfg.ModelProvider = "nope"
	_, err = NewFromConfig(context.Background(), cfg, logger)
	require.Error(t, err)
}
