package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlms/chatbot/config"
	"github.com/dlms/chatbot/domain"
)

func TestNew_SelectsProvider(t *testing.T) {
	gen, err := New(context.Background(), config.Config{
		LLMProvider: config.ProviderHuggingFace,
		HFToken:     "hf_test",
		LLMBaseURL:  config.DefaultLLMBaseURL,
	})
	require.NoError(t, err)
	hf, ok := gen.(*HuggingFaceClient)
	require.True(t, ok, "expected *HuggingFaceClient, got %T", gen)
	assert.Equal(t, HuggingFaceDefaultModel, hf.model)
}

func TestNew_MissingCredentialReturnsNilInterface(t *testing.T) {
	for _, provider := range []string{config.ProviderHuggingFace, config.ProviderGemini} {
		t.Run(provider, func(t *testing.T) {
			gen, err := New(context.Background(), config.Config{LLMProvider: provider})
			assert.ErrorIs(t, err, domain.ErrMissingCredentials)
			assert.True(t, gen == nil, "expected untyped nil, got %#v", gen)
		})
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.Config{LLMProvider: "mystery"})
	assert.ErrorContains(t, err, "unknown llm provider")
}
