package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dlms/chatbot/domain"
)

// MockLlm is a mock implementation of domain.Llm
type MockLlm struct {
	mock.Mock
}

func (m *MockLlm) Generate(ctx context.Context, messages []domain.ChatMessage, opts domain.GenerateOptions) (string, error) {
	args := m.Called(ctx, messages, opts)
	return args.String(0), args.Error(1)
}

// MockCatalog is a mock implementation of domain.CourseCatalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListCourses(ctx context.Context) ([]domain.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Course), args.Error(1)
}

func strPtr(s string) *string { return &s }
