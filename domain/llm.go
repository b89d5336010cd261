package domain

import "context"

// Llm abstracts any chat/LLM provider.
type Llm interface {
	// Generate sends messages as a single, history-free exchange and returns
	// the model's reply text.
	Generate(ctx context.Context, messages []ChatMessage, opts GenerateOptions) (string, error)
}

type GenerateOptions struct {
	MaxTokens   int
	Temperature float64
}

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	UserRole      Role = "user"
	AssistantRole Role = "assistant"
	SystemRole    Role = "system"
)
