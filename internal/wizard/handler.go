package wizard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/appointment-assistant/internal/appointments"
	"github.com/wolfman30/appointment-assistant/internal/identity"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

// Handler serves wizard sessions over HTTP.
type Handler struct {
	wizard        *Wizard
	defaultUserID string
	logger        *logging.Logger
}

// NewHandler creates a wizard handler.
func NewHandler(wizard *Wizard, defaultUserID string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{wizard: wizard, defaultUserID: defaultUserID, logger: logger}
}

// Routes mounts the wizard endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/sessions", h.StartSession)
	r.Get("/sessions/{sessionID}", h.GetSession)
	r.Post("/sessions/{sessionID}/utterances", h.ApplyUtterance)
	r.Post("/sessions/{sessionID}/confirm", h.ConfirmSession)
	return r
}

// UtteranceRequest carries one typed or transcribed command.
type UtteranceRequest struct {
	Text string `json:"text"`
}

// OutcomeResponse wraps an Outcome with an optional booking error.
type OutcomeResponse struct {
	Outcome
	Error string `json:"error,omitempty"`
}

// StartSession handles POST /api/wizard/sessions
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDOr(r.Context(), h.defaultUserID)
	session := h.wizard.Start(r.Context(), userID)
	writeJSON(w, http.StatusCreated, OutcomeResponse{Outcome: Outcome{Session: session, Message: session.Step.Prompt()}})
}

// GetSession handles GET /api/wizard/sessions/{sessionID}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.wizard.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// ApplyUtterance handles POST /api/wizard/sessions/{sessionID}/utterances
func (h *Handler) ApplyUtterance(w http.ResponseWriter, r *http.Request) {
	var req UtteranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	outcome, err := h.wizard.Apply(r.Context(), chi.URLParam(r, "sessionID"), req.Text)
	if err != nil {
		h.respondOutcomeError(w, outcome, err)
		return
	}
	writeJSON(w, http.StatusOK, OutcomeResponse{Outcome: outcome})
}

// ConfirmSession handles POST /api/wizard/sessions/{sessionID}/confirm
func (h *Handler) ConfirmSession(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.wizard.Confirm(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondOutcomeError(w, outcome, err)
		return
	}
	writeJSON(w, http.StatusCreated, OutcomeResponse{Outcome: outcome})
}

// respondOutcomeError keeps the session in the body when a booking failed
// after the utterance was applied.
func (h *Handler) respondOutcomeError(w http.ResponseWriter, outcome Outcome, err error) {
	if outcome.Session.ID == "" {
		h.respondError(w, err)
		return
	}
	writeJSON(w, statusFor(err), OutcomeResponse{Outcome: outcome, Error: outcome.Session.Error})
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("wizard request failed", "error", err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrIncomplete), errors.Is(err, appointments.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrCompleted), errors.Is(err, appointments.ErrSlotTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
