package notify

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/appointment-assistant/internal/identity"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

// Handler serves the notification inbox.
type Handler struct {
	store         *Store
	defaultUserID string
	logger        *logging.Logger
}

// NewHandler creates a notifications handler. Requests without an acting
// user fall back to defaultUserID.
func NewHandler(store *Store, defaultUserID string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, defaultUserID: defaultUserID, logger: logger}
}

// Routes mounts the notification endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListNotifications)
	r.Post("/read-all", h.MarkAllAsRead)
	r.Post("/{notificationID}/read", h.MarkAsRead)
	return r
}

// ListNotifications handles GET /api/notifications
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDOr(r.Context(), h.defaultUserID)
	inbox, err := h.store.Fetch(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to fetch notifications", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	writeJSON(w, http.StatusOK, inbox)
}

// MarkAsRead handles POST /api/notifications/{notificationID}/read
func (h *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDOr(r.Context(), h.defaultUserID)
	id := chi.URLParam(r, "notificationID")
	if err := h.store.MarkAsRead(r.Context(), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "notification not found")
			return
		}
		h.logger.Error("failed to mark notification as read", "notification_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to mark notification as read")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unreadCount": h.store.UnreadCount(userID)})
}

// MarkAllAsRead handles POST /api/notifications/read-all
func (h *Handler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDOr(r.Context(), h.defaultUserID)
	if err := h.store.MarkAllAsRead(r.Context(), userID); err != nil {
		h.logger.Error("failed to mark all notifications as read", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to mark all notifications as read")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unreadCount": 0})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
