package notify

import (
	"fmt"
	"time"
)

var seedContent = map[Type]struct{ title, message string }{
	TypeReminder:     {"Upcoming Appointment Reminder", "You have an appointment with Dr. Sarah Johnson tomorrow at 10:00 AM."},
	TypeConfirmation: {"Appointment Confirmed", "Your appointment with Dr. Michael Chen on Friday has been confirmed."},
	TypeCancellation: {"Appointment Cancelled", "Your appointment for next Monday has been cancelled."},
	TypeRescheduled:  {"Appointment Rescheduled", "Your appointment has been rescheduled to Wednesday at 2:30 PM."},
}

// DemoNotifications builds five notifications for userID, one day apart,
// cycling the four kinds. The three newest are unread.
func DemoNotifications(now time.Time, userID string) []Notification {
	kinds := Types()
	out := make([]Notification, 0, 5)
	for i := 0; i < 5; i++ {
		kind := kinds[i%len(kinds)]
		content := seedContent[kind]
		out = append(out, Notification{
			ID:        fmt.Sprintf("notification-%d", i+1),
			UserID:    userID,
			Type:      kind,
			Title:     content.title,
			Message:   content.message,
			IsRead:    i > 2,
			CreatedAt: now.Add(-time.Duration(i) * 24 * time.Hour),
		})
	}
	return out
}
