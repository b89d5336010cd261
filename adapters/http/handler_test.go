package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dlms/chatbot/adapters/catalog"
	"github.com/dlms/chatbot/domain"
	"github.com/dlms/chatbot/usecase"
)

// MockChat is a mock implementation of ChatReplier
type MockChat struct {
	mock.Mock
}

func (m *MockChat) Reply(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

// MockLlm is a mock implementation of domain.Llm
type MockLlm struct {
	mock.Mock
}

func (m *MockLlm) Generate(ctx context.Context, messages []domain.ChatMessage, opts domain.GenerateOptions) (string, error) {
	args := m.Called(ctx, messages, opts)
	return args.String(0), args.Error(1)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	e := NewServer(NewChatHandler(new(MockChat)), nil)

	rec := do(t, e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"status": "active", "service": "DLMS Chatbot"}, decode(t, rec))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestChat_Success(t *testing.T) {
	chat := new(MockChat)
	chat.On("Reply", mock.Anything, "What courses are there?").Return("There are two courses.", nil)
	e := NewServer(NewChatHandler(chat), nil)

	rec := do(t, e, http.MethodPost, "/api/chat", `{"message":"What courses are there?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"response": "There are two courses."}, decode(t, rec))
	chat.AssertExpectations(t)
}

func TestChat_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		detail string
	}{
		{"missing credentials", domain.ErrMissingCredentials, DetailConfigError},
		{"generation failure", domain.ErrGenerationFailed, DetailInternalError},
		{"anything else", errors.New("upstream said: secret-token-123"), DetailInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := new(MockChat)
			chat.On("Reply", mock.Anything, "hi").Return("", tt.err)
			e := NewServer(NewChatHandler(chat), nil)

			rec := do(t, e, http.MethodPost, "/api/chat", `{"message":"hi"}`)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, map[string]string{"detail": tt.detail}, decode(t, rec))
			assert.NotContains(t, rec.Body.String(), "secret-token-123")
		})
	}
}

func TestChat_InvalidBody(t *testing.T) {
	for _, body := range []string{`{`, `{}`, `{"message":42}`, `[]`, `{"message":null}`} {
		t.Run(body, func(t *testing.T) {
			chat := new(MockChat)
			e := NewServer(NewChatHandler(chat), nil)

			rec := do(t, e, http.MethodPost, "/api/chat", body)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, map[string]string{"detail": DetailInvalidBody}, decode(t, rec))
			chat.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything)
		})
	}
}

func TestChat_EmptyMessageIsAccepted(t *testing.T) {
	chat := new(MockChat)
	chat.On("Reply", mock.Anything, "").Return("How can I help?", nil)
	e := NewServer(NewChatHandler(chat), nil)

	rec := do(t, e, http.MethodPost, "/api/chat", `{"message":""}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChat_EndToEndWithUnreachableCatalog(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	catalogURL := dead.URL + "/api/courses"
	dead.Close()

	llm := new(MockLlm)
	var prompt string
	llm.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			prompt = args.Get(1).([]domain.ChatMessage)[0].Content
		}).
		Return("Hello. How may I assist you with your courses today?", nil)

	contexts := usecase.NewCourseContext(catalog.NewClient(catalogURL, time.Second), 0)
	e := NewServer(NewChatHandler(usecase.NewChatService(llm, contexts)), nil)

	rec := do(t, e, http.MethodPost, "/api/chat", `{"message":"Hello"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello. How may I assist you with your courses today?", decode(t, rec)["response"])
	assert.Contains(t, prompt, usecase.FallbackContext)
	assert.Contains(t, prompt, "USER MESSAGE:\nHello\n")
}

func TestChat_EndToEndMissingCredentialMakesNoCalls(t *testing.T) {
	var hits atomic.Int32
	catalogSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer catalogSrv.Close()

	contexts := usecase.NewCourseContext(catalog.NewClient(catalogSrv.URL+"/api/courses", time.Second), 0)
	e := NewServer(NewChatHandler(usecase.NewChatService(nil, contexts)), nil)

	rec := do(t, e, http.MethodPost, "/api/chat", `{"message":"Hello"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]string{"detail": DetailConfigError}, decode(t, rec))
	assert.Zero(t, hits.Load())
}

func TestCORSPreflight(t *testing.T) {
	e := NewServer(NewChatHandler(new(MockChat)), []string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
