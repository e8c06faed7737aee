package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/endless-dnd/pkg/chat"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	openRouterSite    = "http://localhost:5173"
	openRouterTitle   = "Endless D&D"

	msgNoResponse = "(no response)"

	DefaultOpenRouterTemperature = 0.8
	DefaultOpenRouterMaxTokens   = 500
)

// OpenRouterService implements LLMService for OpenRouter.
type OpenRouterService struct {
	apiKey     string
	modelName  string
	httpClient *http.Client
	logger     *slog.Logger
}

// OpenRouterChatRequest represents the request structure for OpenRouter chat completions
type OpenRouterChatRequest struct {
	Model       string             `json:"model"`
	Messages    []chat.ChatMessage `json:"messages"`
	Temperature float64            `json:"temperature,omitempty"`
	MaxTokens   int                `json:"max_tokens,omitempty"`
	Stream      bool               `json:"stream"`
}

// OpenRouterChatChoice represents a single choice in the OpenRouter response
type OpenRouterChatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

// OpenRouterChatResponse represents the response structure for OpenRouter chat completions
type OpenRouterChatResponse struct {
	ID      string                 `json:"id"`
	Object  string                 `json:"object"`
	Created int64                  `json:"created"`
	Model   string                 `json:"model"`
	Choices []OpenRouterChatChoice `json:"choices"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// NewOpenRouterService creates a new OpenRouter service.
func NewOpenRouterService(apiKey string, modelName string, logger *slog.Logger) *OpenRouterService {
	return &OpenRouterService{
		apiKey:    apiKey,
		modelName: modelName,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// InitModel initializes the model (OpenRouter doesn't require explicit model initialization)
func (o *OpenRouterService) InitModel(ctx context.Context, modelName string) error {
	if o.apiKey == "" {
		return ErrNoAPIKey
	}
	return nil
}

func (o *OpenRouterService) Chat(ctx context.Context, messages []chat.ChatMessage) (string, error) {
	if o.apiKey == "" {
		return "", ErrNoAPIKey
	}

	orReq := OpenRouterChatRequest{
		Model:       o.modelName,
		Messages:    messages,
		Temperature: DefaultOpenRouterTemperature,
		MaxTokens:   DefaultOpenRouterMaxTokens,
		Stream:      false,
	}

	reqBody, err := json.Marshal(orReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openRouterBaseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("HTTP-Referer", openRouterSite)
	req.Header.Set("X-Title", openRouterTitle)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var orResp OpenRouterChatResponse
	if err := json.Unmarshal(body, &orResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if orResp.Error != nil {
		return "", fmt.Errorf("API error: %s", orResp.Error.Message)
	}

	if len(orResp.Choices) == 0 || orResp.Choices[0].Message.Content == "" {
		return msgNoResponse, nil
	}

	return orResp.Choices[0].Message.Content, nil
}
