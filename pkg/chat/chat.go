package chat

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	ChatRoleUser   = "user"      // the player
	ChatRoleAgent  = "assistant" // the Dungeon Master
	ChatRoleSystem = "system"    // engine-injected instructions and results
)

// ChatMessage represents a single chat message in the conversation.
// This shape matches what LLM chat APIs expect.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatRequest is a player message sent to the session chat endpoint.
type ChatRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	Message   string    `json:"message"`

	// LookAround requests the privileged one-sentence surroundings
	// description instead of a free-text action.
	LookAround bool `json:"look_around,omitempty"`
}

func (cr *ChatRequest) Validate() error {
	if !cr.LookAround && cr.Message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	return nil
}

// Notification is a transient popup surfaced alongside narrative:
// damage taken, a resolved roll, or time passing.
type Notification struct {
	Type  string `json:"type"` // "damage", "roll", "time"
	Value int    `json:"value"`
	Label string `json:"label"`
}

// ChatResponse is the engine's reply to one player turn.
type ChatResponse struct {
	SessionID     uuid.UUID      `json:"session_id,omitempty"`
	Message       string         `json:"message,omitempty"`
	Notifications []Notification `json:"notifications,omitempty"`

	// PendingSkill is set when the DM commanded a roll; the player
	// must resolve it before sending more narrative.
	PendingSkill string `json:"pending_skill,omitempty"`

	GameTime string `json:"game_time,omitempty"`
	GameDate string `json:"game_date,omitempty"`

	Error string `json:"error,omitempty"`
}
