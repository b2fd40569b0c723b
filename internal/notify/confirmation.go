package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wolfman30/appointment-assistant/internal/appointments"
	"github.com/wolfman30/appointment-assistant/internal/users"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

const confirmationTitle = "Appointment Confirmed"

// ConfirmationMessage renders the confirmation sentence for appt.
func ConfirmationMessage(appt appointments.Appointment) string {
	return fmt.Sprintf("Your appointment with %s on %s at %s has been confirmed.",
		appt.ProviderName(),
		appointments.DisplayShortDate(appt.Date),
		appointments.DisplayTime(appt.StartTime),
	)
}

// BookingConfirmation builds the unread confirmation notification for appt.
func BookingConfirmation(appt appointments.Appointment, now time.Time) Notification {
	return Notification{
		ID:        NewNotificationID(),
		UserID:    appt.UserID,
		Type:      TypeConfirmation,
		Title:     confirmationTitle,
		Message:   ConfirmationMessage(appt),
		CreatedAt: now,
	}
}

// UserLookup resolves a user profile for email delivery.
type UserLookup interface {
	Get(ctx context.Context, id string) (users.User, error)
}

// ConfirmationListener posts a confirmation notification for every booking
// and emails the user when they opted in. Delivery failures are logged.
type ConfirmationListener struct {
	store  *Store
	users  UserLookup
	email  EmailSender
	now    func() time.Time
	logger *logging.Logger
}

// ListenerOption customizes a ConfirmationListener.
type ListenerOption func(*ConfirmationListener)

// WithEmail enables email delivery through sender, resolving recipients via lookup.
func WithEmail(sender EmailSender, lookup UserLookup) ListenerOption {
	return func(l *ConfirmationListener) {
		l.email = sender
		l.users = lookup
	}
}

// WithListenerClock overrides the notification timestamp source.
func WithListenerClock(now func() time.Time) ListenerOption {
	return func(l *ConfirmationListener) {
		if now != nil {
			l.now = now
		}
	}
}

// NewConfirmationListener creates a listener that writes into store.
func NewConfirmationListener(store *Store, logger *logging.Logger, opts ...ListenerOption) *ConfirmationListener {
	if logger == nil {
		logger = logging.Default()
	}
	l := &ConfirmationListener{store: store, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AppointmentBooked implements appointments.BookingListener.
func (l *ConfirmationListener) AppointmentBooked(ctx context.Context, appt appointments.Appointment) {
	n := BookingConfirmation(appt, l.now())
	l.store.Add(n)

	if l.email == nil || l.users == nil {
		return
	}
	user, err := l.users.Get(ctx, appt.UserID)
	if err != nil {
		l.logger.Warn("confirmation email skipped: user lookup failed", "user_id", appt.UserID, "error", err)
		return
	}
	if !user.WantsEmail() {
		return
	}
	msg := EmailMessage{
		To:            user.Email,
		ToName:        user.FullName,
		Subject:       n.Title,
		Body:          n.Message,
		Category:      string(n.Type),
		AppointmentID: appt.ID,
	}
	if err := l.email.Send(ctx, msg); err != nil {
		l.logger.Error("confirmation email failed", "appointment_id", appt.ID, "error", err)
	}
}
