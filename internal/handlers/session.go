package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/endless-dnd/internal/engine"
	"github.com/jwebster45206/endless-dnd/internal/storage"
	"github.com/jwebster45206/endless-dnd/pkg/character"
	"github.com/jwebster45206/endless-dnd/pkg/rules"
	"github.com/jwebster45206/endless-dnd/pkg/session"
)

// CreateSessionRequest is the character creation payload.
type CreateSessionRequest struct {
	Name       string         `json:"name"`
	Gender     string         `json:"gender"`
	Race       string         `json:"race"`
	Class      string         `json:"class"`
	Backstory  string         `json:"backstory"`
	Attributes map[string]int `json:"attributes"` // base scores, point-buy validated
	Skills     []string       `json:"skills"`
}

type SessionHandler struct {
	engine  *engine.Engine
	storage storage.Storage
	logger  *slog.Logger

	// locks serializes mutating requests per session so the busy check
	// holds across the load-process-save round trip, not just within
	// one request's copy.
	locks sync.Map // uuid.UUID -> *sync.Mutex
}

func NewSessionHandler(engine *engine.Engine, storage storage.Storage, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		engine:  engine,
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP routes session requests.
// Routes:
// POST   /v1/sessions               - Create session from character creation payload
// GET    /v1/sessions/{id}          - Read session (sanitized)
// DELETE /v1/sessions/{id}          - Delete session
// POST   /v1/sessions/{id}/chat     - Player message or look-around
// POST   /v1/sessions/{id}/roll     - Resolve pending skill check
// POST   /v1/sessions/{id}/travel   - Estimate or commit travel
// GET    /v1/sessions/{id}/sheet    - Character sheet export download
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions"), "/")

	if path == "" {
		if r.Method != http.MethodPost {
			w.Header().Set("Content-Type", "application/json")
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		h.handleCreate(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	id, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", parts[0], "error", err)
		w.Header().Set("Content-Type", "application/json")
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	if r.Method != http.MethodGet {
		unlock := h.lockSession(id)
		defer unlock()
	}

	s, err := h.storage.LoadSession(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load session", "id", id, "error", err)
		w.Header().Set("Content-Type", "application/json")
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if s == nil {
		w.Header().Set("Content-Type", "application/json")
		writeError(w, h.logger, http.StatusNotFound, "Session not found")
		return
	}

	if len(parts) == 1 {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, h.logger, http.StatusOK, s.Sanitized())
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
		}
		return
	}

	switch parts[1] {
	case "chat":
		w.Header().Set("Content-Type", "application/json")
		h.handleChat(w, r, s)
	case "roll":
		w.Header().Set("Content-Type", "application/json")
		h.handleRoll(w, r, s)
	case "travel":
		w.Header().Set("Content-Type", "application/json")
		h.handleTravel(w, r, s)
	case "sheet":
		h.handleSheet(w, r, s)
	default:
		w.Header().Set("Content-Type", "application/json")
		writeError(w, h.logger, http.StatusNotFound, "Unknown session operation: "+parts[1])
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	// Case-variant race and class names are accepted; validation runs
	// on the canonical form.
	race := req.Race
	if canonical, ok := rules.NormalizeRace(req.Race); ok {
		race = canonical
	}
	class := req.Class
	if canonical, ok := rules.NormalizeClass(req.Class); ok {
		class = canonical
	}

	draft := character.Draft{
		Name:      req.Name,
		Gender:    req.Gender,
		Race:      race,
		Class:     class,
		Backstory: req.Backstory,
		Base:      req.Attributes,
		Skills:    req.Skills,
	}

	s, err := h.engine.NewSession(r.Context(), draft)
	if err != nil {
		h.logger.Warn("Failed to create session", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, s.Sanitized())
}

// lockSession acquires the per-session mutex and returns its unlock.
func (h *SessionHandler) lockSession(id uuid.UUID) func() {
	v, _ := h.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteSession(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete session", "id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	h.locks.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleSheet serves the character sheet as a JSON file download.
func (h *SessionHandler) handleSheet(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if r.Method != http.MethodGet {
		w.Header().Set("Content-Type", "application/json")
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	data, err := character.ExportJSON(s.Character)
	if err != nil {
		h.logger.Error("Failed to export character sheet", "id", s.ID, "error", err)
		w.Header().Set("Content-Type", "application/json")
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to export character sheet")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", character.ExportFilename(s.Character)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("Failed to write character sheet", "id", s.ID, "error", err)
	}
}
