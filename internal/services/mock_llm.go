package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/endless-dnd/pkg/chat"
)

// MockLLMService is a mock implementation of LLMService for testing.
type MockLLMService struct {
	InitModelFunc func(ctx context.Context, modelName string) error
	ChatFunc      func(ctx context.Context, messages []chat.ChatMessage) (string, error)

	// Track calls for testing
	InitModelCalls []string
	ChatCalls      [][]chat.ChatMessage

	mu sync.Mutex // protects all fields above
}

// Ensure MockLLMService implements LLMService interface
var _ LLMService = (*MockLLMService)(nil)

// NewMockLLMService creates a new mock LLM service.
func NewMockLLMService() *MockLLMService {
	return &MockLLMService{
		InitModelCalls: make([]string, 0),
		ChatCalls:      make([][]chat.ChatMessage, 0),
	}
}

func (m *MockLLMService) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InitModelCalls = append(m.InitModelCalls, modelName)

	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

func (m *MockLLMService) Chat(ctx context.Context, messages []chat.ChatMessage) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ChatCalls = append(m.ChatCalls, messages)

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages)
	}
	return "The DM considers your action.", nil
}

// LastChatCall returns the messages from the most recent Chat call,
// or nil if Chat was never called.
func (m *MockLLMService) LastChatCall() []chat.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.ChatCalls) == 0 {
		return nil
	}
	return m.ChatCalls[len(m.ChatCalls)-1]
}
