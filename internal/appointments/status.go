package appointments

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusConfirmed   Status = "confirmed"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusNoShow      Status = "no-show"
	StatusRescheduled Status = "rescheduled"
)

var statusLabels = map[Status]string{
	StatusScheduled:   "Scheduled",
	StatusConfirmed:   "Confirmed",
	StatusCompleted:   "Completed",
	StatusCancelled:   "Cancelled",
	StatusNoShow:      "No Show",
	StatusRescheduled: "Rescheduled",
}

// Forward-only. completed, cancelled and no-show are terminal.
var statusTransitions = map[Status][]Status{
	StatusScheduled:   {StatusConfirmed, StatusCancelled, StatusRescheduled, StatusNoShow},
	StatusConfirmed:   {StatusCompleted, StatusCancelled, StatusRescheduled, StatusNoShow},
	StatusRescheduled: {StatusScheduled, StatusConfirmed, StatusCancelled},
}

// Statuses lists every valid status in declaration order.
func Statuses() []Status {
	return []Status{StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled}
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		names := make([]string, 0, len(statusLabels))
		for _, known := range Statuses() {
			names = append(names, string(known))
		}
		return "", fmt.Errorf("%w: unknown status %q (want one of %s)", ErrInvalidRequest, raw, strings.Join(names, ", "))
	}
	return s, nil
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the display name for s.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return len(statusTransitions[s]) == 0
}

// CanTransitionTo reports whether s may move to next. Staying put is always allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
