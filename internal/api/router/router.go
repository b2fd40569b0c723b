package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/appointment-assistant/internal/appointments"
	httpmiddleware "github.com/wolfman30/appointment-assistant/internal/http/middleware"
	"github.com/wolfman30/appointment-assistant/internal/notify"
	"github.com/wolfman30/appointment-assistant/internal/voice"
	"github.com/wolfman30/appointment-assistant/internal/wizard"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping implements Pinger.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	AppointmentsHandler *appointments.Handler
	NotifyHandler       *notify.Handler
	VoiceHandler        *voice.Handler
	WizardHandler       *wizard.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// Identity resolution
	AuthJWTSecret string
	DefaultUserID string

	RateLimitRPS   float64
	RateLimitBurst int

	// Optional dependencies checked by /health
	HealthChecks map[string]Pinger
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Group(func(public chi.Router) {
		public.Get("/health", healthHandler(cfg.HealthChecks))
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(httpmiddleware.Identity(cfg.AuthJWTSecret, cfg.DefaultUserID))
		api.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

		if h := cfg.AppointmentsHandler; h != nil {
			api.Group(func(catalog chi.Router) {
				catalog.Use(middleware.Compress(5))
				catalog.Get("/providers", h.ListProviders)
				catalog.Get("/providers/{providerID}/slots", h.ListSlots)
				catalog.Get("/services", h.ListServices)
			})
			api.Mount("/appointments", h.Routes())
		}
		if cfg.NotifyHandler != nil {
			api.Mount("/notifications", cfg.NotifyHandler.Routes())
		}
		if cfg.VoiceHandler != nil {
			api.Mount("/voice", cfg.VoiceHandler.Routes())
		}
		if cfg.WizardHandler != nil {
			api.Mount("/wizard", cfg.WizardHandler.Routes())
		}
	})

	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(checks) > 0 {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			resp.Checks = make(map[string]string, len(checks))
			for name, p := range checks {
				if err := p.Ping(ctx); err != nil {
					resp.Checks[name] = err.Error()
					resp.Status = "degraded"
					status = http.StatusServiceUnavailable
					continue
				}
				resp.Checks[name] = "ok"
			}
		}
		writeJSON(w, status, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
