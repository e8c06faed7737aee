package prompts

import (
	"fmt"

	"github.com/jwebster45206/endless-dnd/pkg/chat"
	"github.com/jwebster45206/endless-dnd/pkg/session"
)

// DefaultHistoryLimit is the number of trailing chat messages sent to
// the LLM with each request, the current message included.
const DefaultHistoryLimit = 10

// Builder constructs the message array for one DM request using a
// fluent interface. It reads the session but never mutates it.
type Builder struct {
	sess         *session.Session
	userMessage  string
	userRole     string
	lookAround   bool
	historyLimit int
	messages     []chat.ChatMessage
}

// New creates a prompt builder with default settings.
func New() *Builder {
	return &Builder{
		historyLimit: DefaultHistoryLimit,
		messages:     make([]chat.ChatMessage, 0),
	}
}

// WithSession sets the session (character, clock, token, history).
func (b *Builder) WithSession(s *session.Session) *Builder {
	b.sess = s
	return b
}

// WithUserMessage sets the current message and its role.
func (b *Builder) WithUserMessage(message string, role string) *Builder {
	b.userMessage = message
	b.userRole = role
	return b
}

// WithLookAround appends the token-gated look-around instruction in
// place of a player message.
func (b *Builder) WithLookAround() *Builder {
	b.lookAround = true
	return b
}

// WithHistoryLimit sets the chat history window size.
func (b *Builder) WithHistoryLimit(limit int) *Builder {
	b.historyLimit = limit
	return b
}

// Build constructs and returns the final message array for LLM consumption.
func (b *Builder) Build() ([]chat.ChatMessage, error) {
	if b.sess == nil {
		return nil, fmt.Errorf("session is required")
	}
	if b.sess.Character == nil {
		return nil, fmt.Errorf("session has no character")
	}

	// Reset messages
	b.messages = make([]chat.ChatMessage, 0)

	// 1. System prompt with token, character, and game time
	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: BuildSystemPrompt(b.sess.Token, b.sess.Character, b.sess.Clock.Format()),
	})

	// 2. Windowed chat history. The current message counts against the
	// window, so stored history gets one slot fewer when a message is
	// going to follow.
	window := b.historyLimit
	if b.lookAround || b.userMessage != "" {
		window--
	}
	if window > 0 {
		b.messages = append(b.messages, b.sess.RecentHistory(window)...)
	}

	// 3. Current message
	b.addCurrentMessage()

	return b.messages, nil
}

// addCurrentMessage appends the player message or the look-around
// instruction, whichever this turn carries.
func (b *Builder) addCurrentMessage() {
	if b.lookAround {
		b.messages = append(b.messages, chat.ChatMessage{
			Role:    chat.ChatRoleUser,
			Content: b.sess.Token.Tag(LookAroundInstruction),
		})
		return
	}
	if b.userMessage == "" {
		return
	}
	b.messages = append(b.messages, chat.ChatMessage{
		Role:    b.userRole,
		Content: b.userMessage,
	})
}

// BuildMessages is a convenience function for the common case.
func BuildMessages(s *session.Session, message string, role string) ([]chat.ChatMessage, error) {
	return New().
		WithSession(s).
		WithUserMessage(message, role).
		Build()
}
