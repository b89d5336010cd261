package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/dlms/chatbot/domain"
)

const (
	HuggingFaceDefaultModel = "Qwen/Qwen2.5-Coder-32B-Instruct"
)

// ErrEmptyCompletion is returned when the provider answers without a usable choice.
var ErrEmptyCompletion = errors.New("completion has no content")

// HuggingFaceClient talks to the Hugging Face inference router through its
// OpenAI-compatible chat completions endpoint.
type HuggingFaceClient struct {
	client openai.Client
	model  string
}

func NewHuggingFaceClient(token, baseURL, model string, opts ...option.RequestOption) (*HuggingFaceClient, error) {
	if token == "" {
		return nil, domain.ErrMissingCredentials
	}
	if model == "" {
		model = HuggingFaceDefaultModel
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(token),
		option.WithBaseURL(baseURL),
		// Failures surface straight to the caller; there is no retry policy.
		option.WithMaxRetries(0),
	}
	reqOpts = append(reqOpts, opts...)

	return &HuggingFaceClient{
		client: openai.NewClient(reqOpts...),
		model:  model,
	}, nil
}

var _ domain.Llm = (*HuggingFaceClient)(nil)

func (h *HuggingFaceClient) Generate(ctx context.Context, messages []domain.ChatMessage, opts domain.GenerateOptions) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(h.model),
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
	}
	for _, msg := range messages {
		switch msg.Role {
		case domain.SystemRole:
			params.Messages = append(params.Messages, openai.SystemMessage(msg.Content))
		case domain.AssistantRole:
			params.Messages = append(params.Messages, openai.AssistantMessage(msg.Content))
		case domain.UserRole:
			params.Messages = append(params.Messages, openai.UserMessage(msg.Content))
		default:
			return "", fmt.Errorf("unsupported role: %s", msg.Role)
		}
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}
	params.Temperature = openai.Float(opts.Temperature)

	resp, err := h.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}
