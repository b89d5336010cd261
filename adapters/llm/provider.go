package llm

import (
	"context"
	"fmt"

	"github.com/dlms/chatbot/config"
	"github.com/dlms/chatbot/domain"
)

// New builds the generation backend selected by cfg.LLMProvider. It returns
// domain.ErrMissingCredentials when the provider's credential is absent.
func New(ctx context.Context, cfg config.Config) (domain.Llm, error) {
	switch cfg.LLMProvider {
	case config.ProviderHuggingFace:
		client, err := NewHuggingFaceClient(cfg.HFToken, cfg.LLMBaseURL, cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg.GeminiKey, cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}
