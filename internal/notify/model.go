package notify

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown notification ids.
var ErrNotFound = errors.New("notify: notification not found")

// Type enumerates notification kinds.
type Type string

const (
	TypeReminder     Type = "appointment_reminder"
	TypeConfirmation Type = "appointment_confirmation"
	TypeCancellation Type = "appointment_cancellation"
	TypeRescheduled  Type = "appointment_rescheduled"
)

// Types lists every notification kind.
func Types() []Type {
	return []Type{TypeReminder, TypeConfirmation, TypeCancellation, TypeRescheduled}
}

// Notification is an inbox entry for a user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// Inbox is a user's notifications, newest first, with the derived unread count.
type Inbox struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

// NewNotificationID returns a time-ordered unique id.
func NewNotificationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "notification-" + uuid.NewString()
	}
	return "notification-" + id.String()
}
