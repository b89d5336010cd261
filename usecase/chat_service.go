package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dlms/chatbot/domain"
	"github.com/dlms/chatbot/utils/log"
)

const (
	MaxReplyTokens   = 500
	ReplyTemperature = 0.7
)

type ChatService struct {
	llm      domain.Llm
	contexts domain.ContextProvider
}

// NewChatService wires the orchestrator. A nil llm means no credential was
// configured; Reply then fails fast with domain.ErrMissingCredentials.
func NewChatService(gen domain.Llm, contexts domain.ContextProvider) *ChatService {
	return &ChatService{llm: gen, contexts: contexts}
}

// Reply answers a single message. Each call is independent: no history is
// kept or sent.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	if s.llm == nil {
		return "", domain.ErrMissingCredentials
	}

	contextBlock := s.contexts.GetContext(ctx)

	if HasStructureMarkers(message) {
		log.WithCtx(ctx).Debug("Message contains template markers, embedding literally")
	}

	prompt, err := ComposePrompt(PromptFields{Context: contextBlock, Message: message})
	if err != nil {
		log.WithCtx(ctx).Error("Error composing prompt", zap.Error(err))
		return "", fmt.Errorf("composing prompt: %w", domain.ErrGenerationFailed)
	}

	log.WithCtx(ctx).Info("Sending request to generation service", zap.Int("prompt_bytes", len(prompt)))

	reply, err := s.llm.Generate(ctx, []domain.ChatMessage{
		{Role: domain.UserRole, Content: prompt},
	}, domain.GenerateOptions{
		MaxTokens:   MaxReplyTokens,
		Temperature: ReplyTemperature,
	})
	if err != nil {
		log.WithCtx(ctx).Error("Error during chat processing", zap.Error(err))
		return "", domain.ErrGenerationFailed
	}

	return reply, nil
}
