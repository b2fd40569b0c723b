package wizard

import (
	"errors"
	"time"

	"github.com/wolfman30/appointment-assistant/internal/appointments"
	"github.com/wolfman30/appointment-assistant/internal/catalog"
)

var (
	// ErrNotFound is returned for unknown or expired sessions.
	ErrNotFound = errors.New("wizard: session not found")
	// ErrIncomplete is returned when confirming before every slot is chosen.
	ErrIncomplete = errors.New("wizard: please complete all required fields")
	// ErrCompleted is returned when a finished session is modified.
	ErrCompleted = errors.New("wizard: booking already completed")
)

// Step is the wizard page currently shown.
type Step int

const (
	StepProvider Step = iota + 1
	StepService
	StepDate
	StepTime
	StepReview
)

var stepPrompts = map[Step]string{
	StepProvider: "Which provider would you like to see?",
	StepService:  "Which service do you need?",
	StepDate:     "Which day works for you?",
	StepTime:     "What time would you like?",
	StepReview:   "Please review your appointment and confirm to book.",
}

// Prompt is the question asked at s.
func (s Step) Prompt() string {
	return stepPrompts[s]
}

// Session is one in-progress booking.
type Session struct {
	ID             string                    `json:"id"`
	UserID         string                    `json:"userId"`
	Step           Step                      `json:"step"`
	Provider       *catalog.Provider         `json:"provider,omitempty"`
	Service        *catalog.Service          `json:"service,omitempty"`
	Date           string                    `json:"date"`
	StartTime      string                    `json:"startTime,omitempty"`
	Notes          string                    `json:"notes,omitempty"`
	AvailableSlots []string                  `json:"availableSlots"`
	Appointment    *appointments.Appointment `json:"appointment,omitempty"`
	Error          string                    `json:"error,omitempty"`
	CreatedAt      time.Time                 `json:"createdAt"`
	ExpiresAt      time.Time                 `json:"expiresAt"`
}

// Ready reports whether every required slot is selected.
func (s Session) Ready() bool {
	return s.Provider != nil && s.Service != nil && s.Date != "" && s.StartTime != ""
}

// Completed reports whether the session already produced a booking.
func (s Session) Completed() bool {
	return s.Appointment != nil
}

func (s *Session) advance(to Step) {
	if s.Step < to {
		s.Step = to
	}
}

func (s Session) clone() Session {
	s.AvailableSlots = append([]string(nil), s.AvailableSlots...)
	return s
}
