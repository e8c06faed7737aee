package services

import (
	"context"
	"errors"

	"github.com/jwebster45206/endless-dnd/pkg/chat"
)

// ErrNoAPIKey is returned when a provider is constructed without
// credentials. Callers surface a fixed in-game message for it.
var ErrNoAPIKey = errors.New("no API key configured")

// LLMService defines the interface for the Dungeon Master backend.
type LLMService interface {
	// InitModel initializes the LLM model on startup
	InitModel(ctx context.Context, modelName string) error

	// Chat generates the DM narration for the given messages.
	// The returned text may contain narrative tags.
	Chat(ctx context.Context, messages []chat.ChatMessage) (string, error)
}
