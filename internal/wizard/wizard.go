package wizard

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/appointment-assistant/internal/appointments"
	"github.com/wolfman30/appointment-assistant/internal/catalog"
	"github.com/wolfman30/appointment-assistant/internal/notify"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

var wizardTracer = otel.Tracer("assistant.internal.wizard")

var (
	timePattern = regexp.MustCompile(`\b(at|for)\s+(\d{1,2}):?(\d{2})?\s*(am|pm)?\b`)
	notePattern = regexp.MustCompile(`(?:note|reason|because|that)\s+(.+)`)
)

const (
	defaultSessionTTL = 30 * time.Minute
	msgSlotTaken      = "That time is not available."
)

// Outcome is the result of feeding the wizard one utterance.
type Outcome struct {
	Session Session `json:"session"`
	Message string  `json:"message"`
	Booked  bool    `json:"booked"`
}

// Wizard fills booking slots incrementally and books through the manager.
type Wizard struct {
	manager *appointments.Manager
	catalog *catalog.Catalog
	store   *MemoryStore
	ttl     time.Duration
	now     func() time.Time
	logger  *logging.Logger
}

// Option customizes a Wizard.
type Option func(*Wizard)

// WithSessionTTL sets how long a session lives.
func WithSessionTTL(ttl time.Duration) Option {
	return func(w *Wizard) {
		if ttl > 0 {
			w.ttl = ttl
		}
	}
}

// WithClock overrides the session expiry clock.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		if now != nil {
			w.now = now
		}
	}
}

// New creates a wizard.
func New(manager *appointments.Manager, cat *catalog.Catalog, logger *logging.Logger, opts ...Option) *Wizard {
	if logger == nil {
		logger = logging.Default()
	}
	w := &Wizard{
		manager: manager,
		catalog: cat,
		ttl:     defaultSessionTTL,
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.store = NewMemoryStore(w.now)
	return w
}

// Start opens a session at the provider step with tomorrow preselected.
func (w *Wizard) Start(ctx context.Context, userID string) Session {
	now := w.now()
	session := Session{
		ID:             newSessionID(),
		UserID:         userID,
		Step:           StepProvider,
		Date:           w.tomorrow(),
		AvailableSlots: []string{},
		CreatedAt:      now,
		ExpiresAt:      now.Add(w.ttl),
	}
	w.store.Put(ctx, session)
	w.logger.Info("wizard session started", "session_id", session.ID, "user_id", userID, "sessions", w.store.Len())
	return session
}

// Get returns a live session.
func (w *Wizard) Get(ctx context.Context, id string) (Session, error) {
	return w.store.Get(ctx, id)
}

// Apply extracts whatever slots the utterance names and books when the
// utterance asks to and every slot is filled.
func (w *Wizard) Apply(ctx context.Context, id, utterance string) (_ Outcome, err error) {
	ctx, span := wizardTracer.Start(ctx, "wizard.apply")
	defer span.End()
	span.SetAttributes(attribute.String("assistant.wizard_session", id))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
	}()

	text := strings.ToLower(strings.TrimSpace(utterance))
	var (
		outcome     Outcome
		bookErr     error
		unavailable bool
	)
	session, err := w.store.Update(ctx, id, func(s *Session) error {
		if s.Completed() {
			return ErrCompleted
		}
		var applyErr error
		unavailable, applyErr = w.apply(ctx, s, text)
		if applyErr != nil {
			return applyErr
		}
		if wantsBooking(text) && s.Ready() {
			bookErr = w.book(ctx, s)
			outcome.Booked = bookErr == nil
		}
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}

	outcome.Session = session
	switch {
	case outcome.Booked:
		outcome.Message = notify.ConfirmationMessage(*session.Appointment)
	case unavailable:
		outcome.Message = msgSlotTaken + " " + session.Step.Prompt()
	default:
		outcome.Message = session.Step.Prompt()
	}
	span.SetAttributes(attribute.Int("assistant.wizard_step", int(session.Step)))
	return outcome, bookErr
}

// Confirm books the session's selection.
func (w *Wizard) Confirm(ctx context.Context, id string) (_ Outcome, err error) {
	ctx, span := wizardTracer.Start(ctx, "wizard.confirm")
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
	}()

	var bookErr error
	session, err := w.store.Update(ctx, id, func(s *Session) error {
		if s.Completed() {
			return ErrCompleted
		}
		if !s.Ready() {
			return ErrIncomplete
		}
		bookErr = w.book(ctx, s)
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	if bookErr != nil {
		return Outcome{Session: session, Message: session.Error}, bookErr
	}
	return Outcome{
		Session: session,
		Message: notify.ConfirmationMessage(*session.Appointment),
		Booked:  true,
	}, nil
}

// apply mutates s from text. unavailable reports a requested time that is
// not an open slot.
func (w *Wizard) apply(ctx context.Context, s *Session, text string) (unavailable bool, err error) {
	refresh := s.Provider != nil && len(s.AvailableSlots) == 0

	provider, err := w.catalog.MatchProvider(ctx, text)
	if err != nil {
		return false, fmt.Errorf("wizard: match provider: %w", err)
	}
	if provider != nil {
		refresh = refresh || s.Provider == nil || s.Provider.ID != provider.ID
		s.Provider = provider
		s.advance(StepService)
	}

	service, err := w.catalog.MatchService(ctx, text)
	if err != nil {
		return false, fmt.Errorf("wizard: match service: %w", err)
	}
	if service != nil {
		s.Service = service
		s.advance(StepDate)
	}

	if date := w.dateFrom(text); date != "" {
		refresh = refresh || s.Date != date
		s.Date = date
		s.advance(StepTime)
	}

	if refresh && s.Provider != nil {
		slots, err := w.manager.AvailableSlots(ctx, s.Provider.ID, s.Date)
		if err != nil {
			return false, fmt.Errorf("wizard: available slots: %w", err)
		}
		s.AvailableSlots = slots
		if s.StartTime != "" && !slices.Contains(slots, s.StartTime) {
			s.StartTime = ""
		}
	}

	if clock, ok := parseTime(text); ok && s.Provider != nil {
		if slices.Contains(s.AvailableSlots, clock) {
			s.StartTime = clock
			s.advance(StepReview)
		} else {
			unavailable = true
		}
	}

	if strings.Contains(text, "note") || strings.Contains(text, "reason") {
		if m := notePattern.FindStringSubmatch(text); m != nil && m[1] != "" {
			s.Notes = m[1]
		}
	}
	return unavailable, nil
}

func (w *Wizard) book(ctx context.Context, s *Session) error {
	endTime, err := appointments.CalculateEndTime(s.StartTime, s.Service.Duration)
	if err != nil {
		s.Error = err.Error()
		return err
	}
	appt, err := w.manager.Book(ctx, appointments.BookRequest{
		UserID:     s.UserID,
		ProviderID: s.Provider.ID,
		ServiceID:  s.Service.ID,
		Date:       s.Date,
		StartTime:  s.StartTime,
		EndTime:    endTime,
		Notes:      s.Notes,
	})
	if err != nil {
		w.logger.Warn("wizard booking failed", "session_id", s.ID, "error", err)
		s.Error = bookingErrorMessage(err)
		return err
	}
	s.Appointment = &appt
	s.Error = ""
	w.logger.Info("wizard booked appointment", "session_id", s.ID, "appointment_id", appt.ID)
	return nil
}

func (w *Wizard) dateFrom(text string) string {
	switch {
	case strings.Contains(text, "tomorrow"):
		return w.tomorrow()
	case strings.Contains(text, "today"):
		return w.manager.Today()
	}
	return ""
}

func (w *Wizard) tomorrow() string {
	today, err := appointments.ParseDate(w.manager.Today())
	if err != nil {
		return w.manager.Today()
	}
	return appointments.FormatDate(today.AddDate(0, 0, 1))
}

// parseTime converts "at 2pm" or "for 10:30" to HH:MM.
func parseTime(text string) (string, bool) {
	m := timePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	hours, err := strconv.Atoi(m[2])
	if err != nil {
		return "", false
	}
	minutes := 0
	if m[3] != "" {
		if minutes, err = strconv.Atoi(m[3]); err != nil {
			return "", false
		}
	}
	switch {
	case m[4] == "pm" && hours < 12:
		hours += 12
	case m[4] == "am" && hours == 12:
		hours = 0
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes), true
}

func wantsBooking(text string) bool {
	return strings.Contains(text, "book") || strings.Contains(text, "schedule")
}

func bookingErrorMessage(err error) string {
	if errors.Is(err, appointments.ErrSlotTaken) {
		return msgSlotTaken
	}
	return "Failed to book appointment. Please try again."
}

func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "wizard-" + uuid.NewString()
	}
	return "wizard-" + id.String()
}
