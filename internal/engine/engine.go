// Package engine drives player turns: prompt assembly, DM calls,
// narrative tag handling, and session persistence.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jwebster45206/endless-dnd/internal/dice"
	"github.com/jwebster45206/endless-dnd/internal/services"
	"github.com/jwebster45206/endless-dnd/internal/storage"
	"github.com/jwebster45206/endless-dnd/pkg/character"
	"github.com/jwebster45206/endless-dnd/pkg/chat"
	"github.com/jwebster45206/endless-dnd/pkg/check"
	"github.com/jwebster45206/endless-dnd/pkg/narrative"
	"github.com/jwebster45206/endless-dnd/pkg/prompts"
	"github.com/jwebster45206/endless-dnd/pkg/session"
	"github.com/jwebster45206/endless-dnd/pkg/worldclock"
)

const llmTimeout = 30 * time.Second

// In-game messages for DM failures.
const (
	msgNoAPIKey      = "SYSTEM ERROR: No API key configured."
	msgDMUnreachable = "Error contacting DM."
)

// checkNotation is the die rolled for every skill check.
const checkNotation = "1d20"

// Engine processes player turns against a session.
type Engine struct {
	storage  storage.Storage
	llm      services.LLMService
	roller   dice.Roller
	notifier Notifier
	logger   *slog.Logger
}

// New creates an engine.
func New(store storage.Storage, llm services.LLMService, roller dice.Roller, logger *slog.Logger) *Engine {
	return &Engine{
		storage:  store,
		llm:      llm,
		roller:   roller,
		notifier: NewLogNotifier(logger),
		logger:   logger,
	}
}

// WithNotifier replaces the default log notifier.
func (e *Engine) WithNotifier(n Notifier) *Engine {
	e.notifier = n
	return e
}

// NewSession validates and finalizes a character draft, then creates
// and persists a session seeded with the opening narration.
func (e *Engine) NewSession(ctx context.Context, draft character.Draft) (*session.Session, error) {
	sheet, err := character.Finalize(&draft)
	if err != nil {
		return nil, err
	}

	s := session.New(sheet)
	s.AppendMessage(chat.ChatRoleAgent, prompts.OpeningNarration)

	if err := e.storage.SaveSession(ctx, s.ID, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	e.logger.Info("Session created", "session_id", s.ID, "character", sheet.Name)
	return s, nil
}

// ProcessChat handles one player turn: free text or a look-around
// request. The narrative's tags are applied to the session before it
// is persisted.
func (e *Engine) ProcessChat(ctx context.Context, s *session.Session, message string, lookAround bool) (*chat.ChatResponse, error) {
	if err := s.BeginNarrative(); err != nil {
		return nil, err
	}

	builder := prompts.New().WithSession(s)
	if lookAround {
		builder = builder.WithLookAround()
	} else {
		builder = builder.WithUserMessage(message, chat.ChatRoleUser)
	}

	messages, err := builder.Build()
	if err != nil {
		s.AbortNarrative()
		return nil, fmt.Errorf("failed to build chat messages: %w", err)
	}

	clean, ev, chatErr := e.callDM(ctx, messages)
	if chatErr != nil {
		s.AbortNarrative()
		return e.dmFailureResponse(ctx, s, chatErr), nil
	}

	// The look-around instruction is transmitted but never stored.
	if !lookAround {
		s.AppendMessage(chat.ChatRoleUser, message)
	}
	s.AppendMessage(chat.ChatRoleAgent, clean)

	notes := s.CompleteNarrative(ev)
	for _, n := range notes {
		e.notifier.Notify(n)
	}

	if err := e.storage.SaveSession(ctx, s.ID, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return e.response(s, clean, notes), nil
}

// ResolveCheck rolls the pending skill check, reports the result to the
// DM, and processes the continuation narrative.
func (e *Engine) ResolveCheck(ctx context.Context, s *session.Session) (*chat.ChatResponse, *check.Result, error) {
	if err := s.BeginCheckResolution(); err != nil {
		return nil, nil, err
	}
	pending := *s.PendingCheck

	roll, err := dice.RollNotation(e.roller, checkNotation)
	if err != nil {
		s.AbortNarrative()
		return nil, nil, fmt.Errorf("failed to roll check: %w", err)
	}

	result, err := check.Resolve(s.Character, pending, roll.Total)
	if err != nil {
		s.AbortNarrative()
		return nil, nil, fmt.Errorf("failed to resolve check: %w", err)
	}

	rollNote := chat.Notification{
		Type:  "roll",
		Value: result.Total,
		Label: strings.ToUpper(pending.Name) + " CHECK",
	}
	e.notifier.Notify(rollNote)

	// The token-gated result is transmitted to the DM but never stored.
	resultMsg := prompts.RollResultMessage(s.Token, result.Total, pending.Name)
	messages, err := prompts.New().
		WithSession(s).
		WithUserMessage(resultMsg, chat.ChatRoleSystem).
		Build()
	if err != nil {
		s.AbortNarrative()
		return nil, nil, fmt.Errorf("failed to build chat messages: %w", err)
	}

	clean, ev, chatErr := e.callDM(ctx, messages)
	if chatErr != nil {
		s.AbortNarrative()
		return e.dmFailureResponse(ctx, s, chatErr), &result, nil
	}

	s.AppendMessage(chat.ChatRoleAgent, clean)

	notes := s.CompleteNarrative(ev)
	for _, n := range notes {
		e.notifier.Notify(n)
	}

	if err := e.storage.SaveSession(ctx, s.ID, s); err != nil {
		return nil, nil, fmt.Errorf("failed to save session: %w", err)
	}

	resp := e.response(s, clean, append([]chat.Notification{rollNote}, notes...))
	return resp, &result, nil
}

// Travel estimates a plan to the destination and, unless dryRun, commits
// it: position, location name, and clock advance.
func (e *Engine) Travel(ctx context.Context, s *session.Session, dest worldclock.Position, locationName string, dryRun bool) (worldclock.Plan, error) {
	plan := worldclock.EstimateTravel(s.Position, dest)
	if dryRun {
		return plan, nil
	}

	if err := s.Travel(plan, locationName); err != nil {
		return worldclock.Plan{}, err
	}

	if err := e.storage.SaveSession(ctx, s.ID, s); err != nil {
		return worldclock.Plan{}, fmt.Errorf("failed to save session: %w", err)
	}

	e.logger.Info("Travel committed",
		"session_id", s.ID,
		"miles", plan.Miles,
		"hours", plan.Hours,
		"location", locationName)
	return plan, nil
}

// callDM sends the messages to the LLM and parses the narrative tags
// out of the reply.
func (e *Engine) callDM(ctx context.Context, messages []chat.ChatMessage) (string, narrative.Events, error) {
	chatCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	raw, err := e.llm.Chat(chatCtx, messages)
	if err != nil {
		return "", narrative.Events{}, err
	}

	ev, clean := narrative.Parse(strings.TrimRight(raw, "\n"))
	return clean, ev, nil
}

// dmFailureResponse persists the restored session and surfaces the DM
// failure as an in-game error message. Rule state is untouched, so the
// player can retry the same action.
func (e *Engine) dmFailureResponse(ctx context.Context, s *session.Session, chatErr error) *chat.ChatResponse {
	e.logger.Error("DM call failed", "session_id", s.ID, "error", chatErr)

	if err := e.storage.SaveSession(ctx, s.ID, s); err != nil {
		e.logger.Error("Failed to save session after DM failure", "session_id", s.ID, "error", err)
	}

	msg := msgDMUnreachable
	if errors.Is(chatErr, services.ErrNoAPIKey) {
		msg = msgNoAPIKey
	}

	resp := e.response(s, "", nil)
	resp.Error = msg
	return resp
}

func (e *Engine) response(s *session.Session, message string, notes []chat.Notification) *chat.ChatResponse {
	gt := s.Clock.Format()
	resp := &chat.ChatResponse{
		SessionID:     s.ID,
		Message:       message,
		Notifications: notes,
		GameTime:      gt.Time,
		GameDate:      gt.Date,
	}
	if s.PendingCheck != nil {
		resp.PendingSkill = s.PendingCheck.Name
	}
	return resp
}
