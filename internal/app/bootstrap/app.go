package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/appointment-assistant/internal/api/router"
	"github.com/wolfman30/appointment-assistant/internal/appointments"
	"github.com/wolfman30/appointment-assistant/internal/catalog"
	appconfig "github.com/wolfman30/appointment-assistant/internal/config"
	"github.com/wolfman30/appointment-assistant/internal/notify"
	"github.com/wolfman30/appointment-assistant/internal/observability/metrics"
	"github.com/wolfman30/appointment-assistant/internal/users"
	"github.com/wolfman30/appointment-assistant/internal/voice"
	"github.com/wolfman30/appointment-assistant/internal/wizard"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

// App is the fully wired service graph.
type App struct {
	Config        *appconfig.Config
	Catalog       *catalog.Catalog
	Manager       *appointments.Manager
	Notifications *notify.Store
	Users         *users.Directory
	Interpreter   *voice.Interpreter
	Wizard        *wizard.Wizard
	Registry      *prometheus.Registry
	Handler       http.Handler

	redis  *redis.Client
	logger *logging.Logger
}

// Option customizes Build.
type Option func(*buildOptions)

type buildOptions struct {
	now         func() time.Time
	redisClient *redis.Client
}

// WithClock overrides the wall clock used for seeds and scheduling.
func WithClock(now func() time.Time) Option {
	return func(o *buildOptions) { o.now = now }
}

// WithRedisClient supplies a Redis client instead of dialing REDIS_ADDR.
func WithRedisClient(client *redis.Client) Option {
	return func(o *buildOptions) { o.redisClient = client }
}

// Build wires every component from cfg.
func Build(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	o := buildOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	app := &App{Config: cfg, logger: logger}
	app.redis = o.redisClient
	if app.redis == nil {
		app.redis = BuildRedisClient(ctx, cfg, logger, true)
	}

	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	mx := metrics.NewSchedulingMetrics(app.Registry)

	app.Catalog = BuildCatalog(ctx, cfg, app.redis, logger)
	guard, err := BuildSlotGuard(cfg, app.redis, logger)
	if err != nil {
		return nil, err
	}
	sender, err := BuildEmailSender(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	now := o.now()
	var (
		seedAppointments  []appointments.Appointment
		seedNotifications []notify.Notification
	)
	app.Users = users.NewDirectory()
	if cfg.SeedDemoData {
		user := users.DemoUser(now)
		user.ID = cfg.DefaultUserID
		app.Users.Put(ctx, user)

		seedAppointments = appointments.DemoAppointments(now, cfg.DefaultUserID, catalog.DefaultProviders(), catalog.DefaultServices())
		seedNotifications = notify.DemoNotifications(now, cfg.DefaultUserID)
		logger.Info("demo data seeded", "appointments", len(seedAppointments), "notifications", len(seedNotifications))
	}

	delays := notify.DefaultDelays()
	delays.Scale = cfg.StoreLatencyScale
	app.Notifications = notify.NewStore(seedNotifications, delays, mx, logger)
	listener := notify.NewConfirmationListener(app.Notifications, logger,
		notify.WithEmail(sender, app.Users),
		notify.WithListenerClock(o.now),
	)

	latency := appointments.DefaultLatency()
	latency.Scale = cfg.StoreLatencyScale
	app.Manager = appointments.NewManager(appointments.NewInMemoryRepository(seedAppointments), app.Catalog, logger,
		appointments.WithSlotGuard(guard),
		appointments.WithLatency(latency),
		appointments.WithClock(o.now),
		appointments.WithMetrics(mx),
		appointments.WithBookingListener(listener),
		appointments.WithDefaultUserID(cfg.DefaultUserID),
	)

	app.Interpreter = voice.NewInterpreter(logger, voice.WithMetrics(mx))
	app.Wizard = wizard.New(app.Manager, app.Catalog, logger,
		wizard.WithSessionTTL(cfg.WizardSessionTTL),
		wizard.WithClock(o.now),
	)

	routerCfg := &router.Config{
		Logger:              logger,
		AppointmentsHandler: appointments.NewHandler(app.Manager, logger),
		NotifyHandler:       notify.NewHandler(app.Notifications, cfg.DefaultUserID, logger),
		VoiceHandler:        voice.NewHandler(app.Interpreter, logger),
		WizardHandler:       wizard.NewHandler(app.Wizard, cfg.DefaultUserID, logger),
		MetricsHandler:      promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		AuthJWTSecret:       cfg.AuthJWTSecret,
		DefaultUserID:       cfg.DefaultUserID,
		RateLimitRPS:        cfg.RateLimitRPS,
		RateLimitBurst:      cfg.RateLimitBurst,
	}
	if app.redis != nil {
		client := app.redis
		routerCfg.HealthChecks = map[string]router.Pinger{
			"redis": router.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() }),
		}
	}
	app.Handler = router.New(routerCfg)
	return app, nil
}

// Close releases external connections.
func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Close()
}
