package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/appointment-assistant/internal/catalog"
	"github.com/wolfman30/appointment-assistant/internal/observability/metrics"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

var appointmentsTracer = otel.Tracer("assistant.internal.appointments")

const (
	defaultStartTime       = "09:00"
	defaultDurationMinutes = 60
	defaultUserID          = "user-1"
)

// BookingListener is told about every stored booking. It runs synchronously
// after the insert and cannot fail the booking.
type BookingListener interface {
	AppointmentBooked(ctx context.Context, appt Appointment)
}

// BookingListenerFunc adapts a function to BookingListener.
type BookingListenerFunc func(ctx context.Context, appt Appointment)

// AppointmentBooked implements BookingListener.
func (f BookingListenerFunc) AppointmentBooked(ctx context.Context, appt Appointment) {
	f(ctx, appt)
}

// State is the loading flag and the most recent failure message.
type State struct {
	Loading   bool   `json:"loading"`
	LastError string `json:"lastError,omitempty"`
}

// Option configures a Manager.
type Option func(*Manager)

// WithSlotGuard serializes bookings per slot bucket.
func WithSlotGuard(guard SlotGuard) Option {
	return func(m *Manager) { m.guard = guard }
}

// WithLatency overrides the simulated round-trip delays.
func WithLatency(latency Latency) Option {
	return func(m *Manager) { m.latency = latency }
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDGenerator injects the appointment id source.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		if gen != nil {
			m.newID = gen
		}
	}
}

// WithBookingListener registers a post-booking hook.
func WithBookingListener(listener BookingListener) Option {
	return func(m *Manager) {
		if listener != nil {
			m.listeners = append(m.listeners, listener)
		}
	}
}

// WithMetrics records operation metrics.
func WithMetrics(mx *metrics.SchedulingMetrics) Option {
	return func(m *Manager) { m.metrics = mx }
}

// WithDefaultUserID sets the owner used when a booking names none.
func WithDefaultUserID(userID string) Option {
	return func(m *Manager) {
		if userID != "" {
			m.defaultUserID = userID
		}
	}
}

// Manager is the single source of truth for appointment state.
type Manager struct {
	repo          Repository
	catalog       *catalog.Catalog
	guard         SlotGuard
	latency       Latency
	now           func() time.Time
	newID         func() string
	listeners     []BookingListener
	metrics       *metrics.SchedulingMetrics
	defaultUserID string
	logger        *logging.Logger

	stateMu  sync.Mutex
	inflight int
	lastErr  string
}

// NewManager wires a lifecycle manager over repo and cat.
func NewManager(repo Repository, cat *catalog.Catalog, logger *logging.Logger, opts ...Option) *Manager {
	if repo == nil {
		panic("appointments: repository required")
	}
	if cat == nil {
		panic("appointments: catalog required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	m := &Manager{
		repo:          repo,
		catalog:       cat,
		latency:       DefaultLatency(),
		now:           time.Now,
		newID:         NewAppointmentID,
		defaultUserID: defaultUserID,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewAppointmentID returns a time-ordered unique id.
func NewAppointmentID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "appointment-" + uuid.NewString()
	}
	return "appointment-" + id.String()
}

// State reports whether any operation is in flight and the last failure.
func (m *Manager) State() State {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return State{Loading: m.inflight > 0, LastError: m.lastErr}
}

// Today is the manager clock's current date as YYYY-MM-DD.
func (m *Manager) Today() string {
	return FormatDate(m.now())
}

func (m *Manager) track(operation string) func(error) {
	started := time.Now()
	m.stateMu.Lock()
	m.inflight++
	m.lastErr = ""
	m.stateMu.Unlock()
	return func(err error) {
		m.stateMu.Lock()
		m.inflight--
		if err != nil {
			m.lastErr = err.Error()
		}
		m.stateMu.Unlock()
		m.metrics.ObserveOperation(operation, time.Since(started).Seconds())
	}
}

// Fetch returns the current authoritative list in insertion order.
func (m *Manager) Fetch(ctx context.Context) (_ []Appointment, err error) {
	ctx, span := appointmentsTracer.Start(ctx, "appointments.fetch")
	defer span.End()
	done := m.track("fetch")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		done(err)
	}()

	if err = m.latency.Wait(ctx, m.latency.Fetch); err != nil {
		return nil, fmt.Errorf("appointments: fetch: %w", err)
	}
	list, err := m.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("appointments: fetch: %w", err)
	}
	span.SetAttributes(attribute.Int("assistant.appointment_count", len(list)))
	return list, nil
}

// Get looks an appointment up without simulated latency. Absence is
// reported through the bool, never as an error.
func (m *Manager) Get(ctx context.Context, id string) (Appointment, bool) {
	appt, err := m.repo.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.stateMu.Lock()
			m.lastErr = err.Error()
			m.stateMu.Unlock()
			m.logger.Warn("appointment lookup failed", "appointment_id", id, "error", err)
		}
		return Appointment{}, false
	}
	return appt, true
}

// List fetches and applies q relative to today.
func (m *Manager) List(ctx context.Context, q Query) ([]Appointment, error) {
	list, err := m.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(list, q, m.Today()), nil
}

// Upcoming returns the next limit active appointments.
func (m *Manager) Upcoming(ctx context.Context, limit int) ([]Appointment, error) {
	list, err := m.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Upcoming(list, m.Today(), limit), nil
}

// Book stores a new scheduled appointment. Unknown provider or service ids
// are stored with nil display copies rather than rejected.
func (m *Manager) Book(ctx context.Context, req BookRequest) (_ Appointment, err error) {
	ctx, span := appointmentsTracer.Start(ctx, "appointments.book")
	defer span.End()
	span.SetAttributes(
		attribute.String("assistant.provider_id", req.ProviderID),
		attribute.String("assistant.service_id", req.ServiceID),
		attribute.String("assistant.date", req.Date),
		attribute.String("assistant.start_time", req.StartTime),
	)
	done := m.track("book")
	defer func() {
		if err != nil {
			span.RecordError(err)
			m.metrics.ObserveBooking(bookingOutcome(err))
		}
		done(err)
	}()

	if err = m.latency.Wait(ctx, m.latency.Book); err != nil {
		return Appointment{}, fmt.Errorf("appointments: book: %w", err)
	}
	appt, err := m.buildAppointment(ctx, req)
	if err != nil {
		return Appointment{}, fmt.Errorf("appointments: book: %w", err)
	}
	if err = m.claim(ctx, appt.SlotKey(), appt.ID); err != nil {
		return Appointment{}, fmt.Errorf("appointments: book: %w", err)
	}
	if err = m.repo.Insert(ctx, appt); err != nil {
		m.release(ctx, appt.SlotKey(), appt.ID)
		return Appointment{}, fmt.Errorf("appointments: book: %w", err)
	}

	span.SetAttributes(attribute.String("assistant.appointment_id", appt.ID))
	m.metrics.ObserveBooking("booked")
	m.logger.Info("appointment booked",
		"appointment_id", appt.ID,
		"user_id", appt.UserID,
		"provider_id", appt.ProviderID,
		"service_id", appt.ServiceID,
		"date", appt.Date,
		"start_time", appt.StartTime,
	)
	for _, listener := range m.listeners {
		listener.AppointmentBooked(ctx, appt)
	}
	return appt, nil
}

func (m *Manager) buildAppointment(ctx context.Context, req BookRequest) (Appointment, error) {
	now := m.now()
	appt := Appointment{
		ID:         m.newID(),
		UserID:     normalize(req.UserID),
		ProviderID: normalize(req.ProviderID),
		ServiceID:  normalize(req.ServiceID),
		Date:       normalize(req.Date),
		StartTime:  normalize(req.StartTime),
		EndTime:    normalize(req.EndTime),
		Status:     StatusScheduled,
		Notes:      strings.TrimSpace(req.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if appt.UserID == "" {
		appt.UserID = m.defaultUserID
	}
	if appt.Date == "" {
		appt.Date = FormatDate(now)
	}
	if appt.StartTime == "" {
		appt.StartTime = defaultStartTime
	}

	var err error
	if appt.Provider, err = m.lookupProvider(ctx, appt.ProviderID); err != nil {
		return Appointment{}, err
	}
	if appt.Service, err = m.lookupService(ctx, appt.ServiceID); err != nil {
		return Appointment{}, err
	}
	if appt.EndTime == "" {
		duration := defaultDurationMinutes
		if appt.Service != nil && appt.Service.Duration > 0 {
			duration = appt.Service.Duration
		}
		if appt.EndTime, err = CalculateEndTime(appt.StartTime, duration); err != nil {
			return Appointment{}, err
		}
	}
	if err := validateSchedule(appt.Date, appt.StartTime, appt.EndTime); err != nil {
		return Appointment{}, err
	}
	return appt, nil
}

func (m *Manager) lookupProvider(ctx context.Context, id string) (*catalog.Provider, error) {
	if id == "" {
		return nil, nil
	}
	p, err := m.catalog.Provider(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		m.logger.Warn("booking references unknown provider", "provider_id", id)
		return nil, nil
	}
	return p, err
}

func (m *Manager) lookupService(ctx context.Context, id string) (*catalog.Service, error) {
	if id == "" {
		return nil, nil
	}
	s, err := m.catalog.Service(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		m.logger.Warn("booking references unknown service", "service_id", id)
		return nil, nil
	}
	return s, err
}

// Update merges req onto appointment id and refreshes UpdatedAt.
func (m *Manager) Update(ctx context.Context, id string, req UpdateRequest) (_ Appointment, err error) {
	ctx, span := appointmentsTracer.Start(ctx, "appointments.update")
	defer span.End()
	span.SetAttributes(attribute.String("assistant.appointment_id", id))
	done := m.track("update")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		done(err)
	}()

	if err = m.latency.Wait(ctx, m.latency.Update); err != nil {
		return Appointment{}, fmt.Errorf("appointments: update: %w", err)
	}
	current, err := m.repo.Get(ctx, id)
	if err != nil {
		return Appointment{}, fmt.Errorf("appointments: update %s: %w", id, err)
	}
	next, err := m.merge(ctx, current, req)
	if err != nil {
		return Appointment{}, fmt.Errorf("appointments: update %s: %w", id, err)
	}

	moved := next.SlotKey() != current.SlotKey()
	needsClaim := next.Active() && (moved || !current.Active())
	if needsClaim {
		if err = m.claim(ctx, next.SlotKey(), next.ID); err != nil {
			return Appointment{}, fmt.Errorf("appointments: update %s: %w", id, err)
		}
	}
	if err = m.repo.Update(ctx, next); err != nil {
		if needsClaim {
			m.release(ctx, next.SlotKey(), next.ID)
		}
		return Appointment{}, fmt.Errorf("appointments: update %s: %w", id, err)
	}
	if current.Active() && (moved || !next.Active()) {
		m.release(ctx, current.SlotKey(), current.ID)
	}

	m.logger.Info("appointment updated", "appointment_id", id, "status", next.Status)
	return next, nil
}

func (m *Manager) merge(ctx context.Context, current Appointment, req UpdateRequest) (Appointment, error) {
	next := current
	var err error
	if req.ProviderID != nil {
		next.ProviderID = normalize(*req.ProviderID)
		if next.Provider, err = m.lookupProvider(ctx, next.ProviderID); err != nil {
			return Appointment{}, err
		}
	}
	if req.ServiceID != nil {
		next.ServiceID = normalize(*req.ServiceID)
		if next.Service, err = m.lookupService(ctx, next.ServiceID); err != nil {
			return Appointment{}, err
		}
	}
	if req.Date != nil {
		next.Date = normalize(*req.Date)
	}
	if req.StartTime != nil {
		next.StartTime = normalize(*req.StartTime)
	}
	if req.EndTime != nil {
		next.EndTime = normalize(*req.EndTime)
	} else if req.StartTime != nil && next.StartTime != current.StartTime {
		if next.EndTime, err = CalculateEndTime(next.StartTime, keptDuration(current)); err != nil {
			return Appointment{}, err
		}
	}
	if req.Notes != nil {
		next.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Status != nil {
		status := *req.Status
		if !status.Valid() {
			return Appointment{}, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, status)
		}
		if !current.Status.CanTransitionTo(status) {
			return Appointment{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, status)
		}
		next.Status = status
	}
	if err := validateSchedule(next.Date, next.StartTime, next.EndTime); err != nil {
		return Appointment{}, err
	}
	next.UpdatedAt = m.now()
	return next, nil
}

// Cancel flips the appointment to cancelled. Cancelling an already cancelled
// appointment succeeds and only refreshes UpdatedAt.
func (m *Manager) Cancel(ctx context.Context, id string) (err error) {
	ctx, span := appointmentsTracer.Start(ctx, "appointments.cancel")
	defer span.End()
	span.SetAttributes(attribute.String("assistant.appointment_id", id))
	done := m.track("cancel")
	defer func() {
		if err != nil {
			span.RecordError(err)
			m.metrics.ObserveCancellation(cancelOutcome(err))
		}
		done(err)
	}()

	if err = m.latency.Wait(ctx, m.latency.Cancel); err != nil {
		return fmt.Errorf("appointments: cancel: %w", err)
	}
	current, err := m.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("appointments: cancel %s: %w", id, err)
	}
	if !current.Status.CanTransitionTo(StatusCancelled) {
		return fmt.Errorf("appointments: cancel %s: %w: %s to %s", id, ErrInvalidTransition, current.Status, StatusCancelled)
	}

	wasActive := current.Active()
	next := current
	next.Status = StatusCancelled
	next.UpdatedAt = m.now()
	if err = m.repo.Update(ctx, next); err != nil {
		return fmt.Errorf("appointments: cancel %s: %w", id, err)
	}
	if wasActive {
		m.release(ctx, current.SlotKey(), current.ID)
	}

	m.metrics.ObserveCancellation("cancelled")
	m.logger.Info("appointment cancelled", "appointment_id", id, "previous_status", current.Status)
	return nil
}

// Providers lists reference providers.
func (m *Manager) Providers(ctx context.Context) (_ []catalog.Provider, err error) {
	done := m.track("providers")
	defer func() { done(err) }()

	if err = m.latency.Wait(ctx, m.latency.Catalog); err != nil {
		return nil, fmt.Errorf("appointments: providers: %w", err)
	}
	return m.catalog.Providers(ctx)
}

// Services lists reference services.
func (m *Manager) Services(ctx context.Context) (_ []catalog.Service, err error) {
	done := m.track("services")
	defer func() { done(err) }()

	if err = m.latency.Wait(ctx, m.latency.Catalog); err != nil {
		return nil, fmt.Errorf("appointments: services: %w", err)
	}
	return m.catalog.Services(ctx)
}

// AvailableSlots returns the ordered HH:MM buckets still open for providerID on date.
func (m *Manager) AvailableSlots(ctx context.Context, providerID, date string) (_ []string, err error) {
	ctx, span := appointmentsTracer.Start(ctx, "appointments.available_slots")
	defer span.End()
	span.SetAttributes(
		attribute.String("assistant.provider_id", providerID),
		attribute.String("assistant.date", date),
	)
	done := m.track("available_slots")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		done(err)
	}()

	if err = m.latency.Wait(ctx, m.latency.Slots); err != nil {
		return nil, fmt.Errorf("appointments: available slots: %w", err)
	}
	if _, err = ParseDate(date); err != nil {
		return nil, fmt.Errorf("appointments: available slots: %w", err)
	}
	list, err := m.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("appointments: available slots: %w", err)
	}
	slots := AvailableSlots(list, providerID, date)
	span.SetAttributes(attribute.Int("assistant.slot_count", len(slots)))
	return slots, nil
}

func (m *Manager) claim(ctx context.Context, key SlotKey, owner string) error {
	if m.guard == nil {
		return nil
	}
	ok, err := m.guard.Claim(ctx, key, owner)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSlotTaken
	}
	// Appointments stored before the guard saw them (seed data) still count.
	existing, err := m.repo.List(ctx)
	if err != nil {
		m.release(ctx, key, owner)
		return err
	}
	for _, a := range existing {
		if a.ID != owner && a.Active() && a.SlotKey() == key {
			m.release(ctx, key, owner)
			return ErrSlotTaken
		}
	}
	return nil
}

func (m *Manager) release(ctx context.Context, key SlotKey, owner string) {
	if m.guard == nil {
		return
	}
	if err := m.guard.Release(ctx, key, owner); err != nil {
		m.logger.Warn("slot guard release failed", "slot", key.String(), "owner", owner, "error", err)
	}
}

// keptDuration is the booked length of a, falling back to the service
// duration when the stored times do not parse.
func keptDuration(a Appointment) int {
	start, startErr := ParseClock(a.StartTime)
	end, endErr := ParseClock(a.EndTime)
	if startErr == nil && endErr == nil && end > start {
		return end - start
	}
	if a.Service != nil && a.Service.Duration > 0 {
		return a.Service.Duration
	}
	return defaultDurationMinutes
}

func bookingOutcome(err error) string {
	switch {
	case errors.Is(err, ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid"
	default:
		return "failed"
	}
}

func cancelOutcome(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	default:
		return "failed"
	}
}
