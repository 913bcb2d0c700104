package ai

import (
	"BackgroundRemover/internal/config"
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// NewFromConfig выбирает реализацию клиента по cfg.ModelProvider.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (Client, error) {
	var (
		client Client
		err    error
	)
	switch cfg.ModelProvider {
	case config.ProviderGemini:
		client, err = NewGeminiClient(ctx, cfg.Gemini, logger)
	case config.ProviderGeminiREST:
		client, err = NewGeminiRESTClient(cfg.Gemini, logger)
	case config.ProviderOpenAI:
		oClient := openai.NewClient(option.WithAPIKey(cfg.OpenAI.APIKey))
		client = NewOpenAIClient(&oClient, cfg.OpenAI, logger)
	case config.ProviderStub:
		client = NewStubClient()
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.ModelProvider)
	}
	if err != nil {
		return nil, err
	}
	logger.Infow("Model client selected", "provider", cfg.ModelProvider)
	return client, nil
}
