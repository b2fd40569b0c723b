package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/appointment-assistant/internal/identity"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

// Handler serves the lifecycle manager over HTTP.
type Handler struct {
	manager *Manager
	logger  *logging.Logger
}

// NewHandler creates an appointments handler.
func NewHandler(manager *Manager, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{manager: manager, logger: logger}
}

// Routes mounts the appointment endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListAppointments)
	r.Post("/", h.BookAppointment)
	r.Get("/upcoming", h.ListUpcoming)
	r.Get("/state", h.GetState)
	r.Get("/{appointmentID}", h.GetAppointment)
	r.Patch("/{appointmentID}", h.UpdateAppointment)
	r.Post("/{appointmentID}/cancel", h.CancelAppointment)
	return r
}

// ListAppointmentsResponse wraps a filtered list.
type ListAppointmentsResponse struct {
	Appointments []View `json:"appointments"`
	Count        int    `json:"count"`
}

// ListAppointments handles GET /api/appointments?period=&status=&q=
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	period, err := ParsePeriod(query.Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q := Query{Period: period, Search: query.Get("q")}
	if raw := query.Get("status"); raw != "" && raw != "all" {
		status, err := ParseStatus(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		q.Status = status
	}

	list, err := h.manager.List(r.Context(), q)
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list appointments")
		return
	}
	views := NewViews(list, h.manager.Today())
	writeJSON(w, http.StatusOK, ListAppointmentsResponse{Appointments: views, Count: len(views)})
}

// ListUpcoming handles GET /api/appointments/upcoming?limit=
func (h *Handler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	limit := 3
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	list, err := h.manager.Upcoming(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list upcoming appointments", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list appointments")
		return
	}
	views := NewViews(list, h.manager.Today())
	writeJSON(w, http.StatusOK, ListAppointmentsResponse{Appointments: views, Count: len(views)})
}

// GetState handles GET /api/appointments/state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.manager.State())
}

// GetAppointment handles GET /api/appointments/{appointmentID}
func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	appt, ok := h.manager.Get(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}
	writeJSON(w, http.StatusOK, NewView(appt, h.manager.Today()))
}

// BookAppointment handles POST /api/appointments
func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if userID, ok := identity.UserIDFromContext(r.Context()); ok {
		req.UserID = userID
	}

	appt, err := h.manager.Book(r.Context(), req)
	if err != nil {
		h.respondError(w, "book", err)
		return
	}
	writeJSON(w, http.StatusCreated, NewView(appt, h.manager.Today()))
}

// UpdateAppointment handles PATCH /api/appointments/{appointmentID}
func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Empty() {
		writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	appt, err := h.manager.Update(r.Context(), id, req)
	if err != nil {
		h.respondError(w, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, NewView(appt, h.manager.Today()))
}

// CancelAppointment handles POST /api/appointments/{appointmentID}/cancel
func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	if err := h.manager.Cancel(r.Context(), id); err != nil {
		h.respondError(w, "cancel", err)
		return
	}
	appt, ok := h.manager.Get(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}
	writeJSON(w, http.StatusOK, NewView(appt, h.manager.Today()))
}

// ListProviders handles GET /api/providers
func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.manager.Providers(r.Context())
	if err != nil {
		h.logger.Error("failed to list providers", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list providers")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"providers": providers})
}

// ListServices handles GET /api/services
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.manager.Services(r.Context())
	if err != nil {
		h.logger.Error("failed to list services", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list services")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

// SlotsResponse lists open buckets for a provider/date.
type SlotsResponse struct {
	ProviderID string   `json:"providerId"`
	Date       string   `json:"date"`
	Slots      []string `json:"slots"`
}

// ListSlots handles GET /api/providers/{providerID}/slots?date=
func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "providerID")
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.manager.Today()
	}
	slots, err := h.manager.AvailableSlots(r.Context(), providerID, date)
	if err != nil {
		h.respondError(w, "available slots", err)
		return
	}
	writeJSON(w, http.StatusOK, SlotsResponse{ProviderID: providerID, Date: date, Slots: slots})
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "appointment not found")
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidTransition):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrSlotTaken):
		writeError(w, http.StatusConflict, "slot already booked")
	default:
		h.logger.Error("appointment operation failed", "operation", op, "error", err)
		writeError(w, http.StatusInternalServerError, "operation failed")
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
