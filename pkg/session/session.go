// Package session holds the game session aggregate and its request
// state machine. All rule state for one playthrough lives here: the
// character sheet, the world clock, the map position, the conversation
// history, and the at-most-one pending skill check.
package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/endless-dnd/pkg/character"
	"github.com/jwebster45206/endless-dnd/pkg/chat"
	"github.com/jwebster45206/endless-dnd/pkg/narrative"
	"github.com/jwebster45206/endless-dnd/pkg/worldclock"
)

// Phase is the explicit request state of a session. Actions invalid for
// the current phase are rejected with ErrBusy rather than relying on
// the UI to disable controls.
type Phase string

const (
	// PhaseIdle accepts player actions, look-around, and travel.
	PhaseIdle Phase = "idle"

	// PhaseAwaitingNarrative means a DM response is outstanding.
	PhaseAwaitingNarrative Phase = "awaiting_narrative"

	// PhaseAwaitingCheck means the DM commanded a roll and the session
	// is blocked until it is resolved.
	PhaseAwaitingCheck Phase = "awaiting_check"
)

var (
	// ErrBusy is returned for any action invalid in the current phase.
	ErrBusy = errors.New("session is busy")

	// ErrNoPendingCheck is returned when a roll arrives with no check
	// outstanding.
	ErrNoPendingCheck = errors.New("no pending check to resolve")
)

// Token authenticates privileged system instructions embedded in the
// conversation, mitigating prompt injection from player text. It is
// generated once per session and passed explicitly; never ambient
// global state.
type Token string

// Tag prefixes a privileged instruction with the token so the DM can
// verify it.
func (t Token) Tag(instruction string) string {
	return fmt.Sprintf("%s %s", string(t), instruction)
}

const tokenLength = 8
const tokenCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewToken generates a session token.
func NewToken() Token {
	buf := make([]byte, tokenLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failure is unrecoverable
		panic(fmt.Sprintf("failed to generate session token: %v", err))
	}
	for i, b := range buf {
		buf[i] = tokenCharset[int(b)%len(tokenCharset)]
	}
	return Token(buf)
}

// Session is the complete state of one playthrough.
type Session struct {
	ID           uuid.UUID           `json:"id"`
	Token        Token               `json:"token,omitempty"`
	Character    *character.Sheet    `json:"character"`
	Clock        worldclock.Clock    `json:"clock"`
	Position     worldclock.Position `json:"position"`
	Phase        Phase               `json:"phase"`
	PendingCheck *narrative.SkillRef `json:"pending_check,omitempty"`
	ChatHistory  []chat.ChatMessage  `json:"chat_history,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// New creates a session for a finalized character at the campaign
// start: Daggerford, 08:00 on 1 Hammer 1492.
func New(sheet *character.Sheet) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:          uuid.New(),
		Token:       NewToken(),
		Character:   sheet,
		Clock:       worldclock.NewClock(),
		Position:    worldclock.StartPosition,
		Phase:       PhaseIdle,
		ChatHistory: make([]chat.ChatMessage, 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Sanitized returns a copy safe to return to clients: the token never
// leaves the server.
func (s *Session) Sanitized() *Session {
	out := *s
	out.Token = ""
	return &out
}

// BeginNarrative transitions Idle -> AwaitingNarrative. Any other
// phase is rejected with ErrBusy.
func (s *Session) BeginNarrative() error {
	if s.Phase != PhaseIdle {
		return ErrBusy
	}
	s.Phase = PhaseAwaitingNarrative
	return nil
}

// BeginCheckResolution transitions AwaitingCheck -> AwaitingNarrative
// for the continuation narrative. The pending check stays set until
// that narrative arrives, making resolution a two-phase commit.
func (s *Session) BeginCheckResolution() error {
	switch {
	case s.Phase == PhaseAwaitingCheck && s.PendingCheck != nil:
		s.Phase = PhaseAwaitingNarrative
		return nil
	case s.PendingCheck == nil:
		return ErrNoPendingCheck
	default:
		return ErrBusy
	}
}

// AbortNarrative restores the phase after a failed DM call, leaving
// all rule state untouched so the player may retry the same action.
func (s *Session) AbortNarrative() {
	if s.PendingCheck != nil {
		s.Phase = PhaseAwaitingCheck
	} else {
		s.Phase = PhaseIdle
	}
}

// CompleteNarrative applies the parsed events of an arrived narrative:
// damage clamps the character's HP, a time tag advances the clock, and
// a check tag arms the pending check. A check resolution that was in
// flight is committed (pending cleared) before the new events apply.
// Returns notifications for the UI.
func (s *Session) CompleteNarrative(ev narrative.Events) []chat.Notification {
	if s.Phase != PhaseAwaitingNarrative {
		return nil
	}

	// Continuation narrative commits the in-flight resolution.
	s.PendingCheck = nil

	var notes []chat.Notification

	if ev.HasDamage {
		s.Character.ApplyDamage(ev.Damage)
		notes = append(notes, chat.Notification{Type: "damage", Value: ev.Damage, Label: "HP LOST"})
	}

	if ev.TimeAdvance > 0 {
		s.Clock.Advance(ev.TimeAdvance)
		notes = append(notes, chat.Notification{Type: "time", Value: ev.TimeAdvance, Label: "MINUTES PASSED"})
	}

	if ev.Check != nil {
		ref := *ev.Check
		s.PendingCheck = &ref
	}

	if s.PendingCheck != nil {
		s.Phase = PhaseAwaitingCheck
	} else {
		s.Phase = PhaseIdle
	}
	return notes
}

// Travel commits a travel plan: the destination becomes the player
// position, the named location (if any) becomes the character's
// current location, and the clock advances by the plan's whole hours.
// Only allowed while idle.
func (s *Session) Travel(plan worldclock.Plan, locationName string) error {
	if s.Phase != PhaseIdle {
		return ErrBusy
	}

	s.Position = plan.Destination
	s.Clock.AdvanceHours(plan.Hours)
	if locationName != "" {
		s.Character.CurrentLocation = locationName
	}
	return nil
}

// AppendMessage records a conversation turn.
func (s *Session) AppendMessage(role, content string) {
	s.ChatHistory = append(s.ChatHistory, chat.ChatMessage{Role: role, Content: content})
}

// RecentHistory returns the most recent limit messages.
func (s *Session) RecentHistory(limit int) []chat.ChatMessage {
	if limit <= 0 || len(s.ChatHistory) <= limit {
		return s.ChatHistory
	}
	return s.ChatHistory[len(s.ChatHistory)-limit:]
}
