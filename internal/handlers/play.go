package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jwebster45206/endless-dnd/pkg/chat"
	"github.com/jwebster45206/endless-dnd/pkg/check"
	"github.com/jwebster45206/endless-dnd/pkg/session"
	"github.com/jwebster45206/endless-dnd/pkg/worldclock"
)

// RollResponse is the reply to a resolved skill check: the roll math
// plus the DM's continuation narrative.
type RollResponse struct {
	Roll *check.Result `json:"roll"`
	chat.ChatResponse
}

// TravelRequest plots a course to a map position. Confirm commits it;
// otherwise the response is an estimate only.
type TravelRequest struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Location string  `json:"location,omitempty"`
	Confirm  bool    `json:"confirm,omitempty"`
}

type TravelResponse struct {
	Miles     int    `json:"miles"`
	Hours     int    `json:"hours"`
	Duration  string `json:"duration"`
	Committed bool   `json:"committed"`
	GameTime  string `json:"game_time,omitempty"`
	GameDate  string `json:"game_date,omitempty"`
}

func (h *SessionHandler) handleChat(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	var req chat.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.engine.ProcessChat(r.Context(), s, req.Message, req.LookAround)
	if err != nil {
		h.writePhaseError(w, err, "Failed to process chat")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

func (h *SessionHandler) handleRoll(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	resp, result, err := h.engine.ResolveCheck(r.Context(), s)
	if err != nil {
		h.writePhaseError(w, err, "Failed to resolve check")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, RollResponse{
		Roll:         result,
		ChatResponse: *resp,
	})
}

func (h *SessionHandler) handleTravel(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	var req TravelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	dest := worldclock.Position{X: req.X, Y: req.Y}
	plan, err := h.engine.Travel(r.Context(), s, dest, req.Location, !req.Confirm)
	if err != nil {
		h.writePhaseError(w, err, "Failed to travel")
		return
	}

	resp := TravelResponse{
		Miles:     plan.Miles,
		Hours:     plan.Hours,
		Duration:  plan.Duration,
		Committed: req.Confirm,
	}
	if req.Confirm {
		gt := s.Clock.Format()
		resp.GameTime = gt.Time
		resp.GameDate = gt.Date
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

// writePhaseError maps session state machine errors to HTTP statuses.
func (h *SessionHandler) writePhaseError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, session.ErrBusy):
		writeError(w, h.logger, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrNoPendingCheck):
		writeError(w, h.logger, http.StatusConflict, err.Error())
	default:
		h.logger.Error(fallback, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, fallback)
	}
}
