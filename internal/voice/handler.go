package voice

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/websocket"

	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

const maxCommandBytes = 4 << 10

// Handler exposes the interpreter over HTTP and WebSocket.
type Handler struct {
	interpreter *Interpreter
	logger      *logging.Logger
}

// CommandRequest is a single utterance.
type CommandRequest struct {
	Type string `json:"type,omitempty"` // "command" (default) or "ping"
	Text string `json:"text"`
}

// CommandResponse is the wire form of a Result.
type CommandResponse struct {
	Type       string            `json:"type,omitempty"`
	Intent     Intent            `json:"intent,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Message    string            `json:"message,omitempty"`
	Navigate   string            `json:"navigate,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// NewCommandResponse converts a Result to its wire form.
func NewCommandResponse(result Result) CommandResponse {
	return CommandResponse{
		Type:       "result",
		Intent:     result.Command.Intent(),
		Parameters: result.Command.Parameters(),
		Message:    result.Message,
		Navigate:   result.Navigate,
	}
}

// NewHandler creates a voice handler.
func NewHandler(interpreter *Interpreter, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{interpreter: interpreter, logger: logger}
}

// Routes mounts the voice endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/commands", h.HandleCommand)
	r.Get("/ws", h.HandleWebSocket)
	return r
}

// HandleCommand handles POST /api/voice/commands
func (h *Handler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	var req CommandRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCommandBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, CommandResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, CommandResponse{Error: "text is required"})
		return
	}
	writeJSON(w, http.StatusOK, NewCommandResponse(h.interpreter.Interpret(r.Context(), req.Text)))
}

// HandleWebSocket streams commands: each JSON frame {text} yields one result frame.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	conn.MaxPayloadBytes = maxCommandBytes
	// Hijacked connections inherit the server's write deadline.
	_ = conn.SetDeadline(time.Time{})
	h.logger.Info("voice: connection opened", "remote", r.RemoteAddr)

	for {
		var req CommandRequest
		if err := websocket.JSON.Receive(conn, &req); err != nil {
			h.logger.Debug("voice: connection closed", "error", err)
			return
		}

		if req.Type == "ping" {
			_ = websocket.JSON.Send(conn, CommandResponse{Type: "pong"})
			continue
		}
		if strings.TrimSpace(req.Text) == "" {
			_ = websocket.JSON.Send(conn, CommandResponse{Type: "error", Error: "text is required"})
			continue
		}

		resp := NewCommandResponse(h.interpreter.Interpret(r.Context(), req.Text))
		if err := websocket.JSON.Send(conn, resp); err != nil {
			h.logger.Warn("voice: send failed", "error", err)
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
