package appointments

import (
	"fmt"
	"strings"
	"time"

	"github.com/wolfman30/appointment-assistant/internal/catalog"
)

// Appointment is a booked visit. Provider and Service are display copies
// resolved at booking time and may be nil when the id did not resolve.
type Appointment struct {
	ID         string            `json:"id"`
	UserID     string            `json:"userId"`
	ProviderID string            `json:"providerId"`
	ServiceID  string            `json:"serviceId"`
	Date       string            `json:"date"`
	StartTime  string            `json:"startTime"`
	EndTime    string            `json:"endTime"`
	Status     Status            `json:"status"`
	Notes      string            `json:"notes,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	Provider   *catalog.Provider `json:"provider,omitempty"`
	Service    *catalog.Service  `json:"service,omitempty"`
}

// SlotKey identifies the bucket an appointment occupies.
func (a Appointment) SlotKey() SlotKey {
	return SlotKey{ProviderID: a.ProviderID, Date: a.Date, StartTime: a.StartTime}
}

// Active reports whether the appointment still holds its slot.
func (a Appointment) Active() bool {
	return a.Status != StatusCancelled
}

// ProviderName returns the embedded provider name or "".
func (a Appointment) ProviderName() string {
	if a.Provider == nil {
		return ""
	}
	return a.Provider.Name
}

// ServiceName returns the embedded service name or "".
func (a Appointment) ServiceName() string {
	if a.Service == nil {
		return ""
	}
	return a.Service.Name
}

// BookRequest carries the fields accepted by Manager.Book. Empty Date,
// StartTime and EndTime are defaulted.
type BookRequest struct {
	UserID     string `json:"userId,omitempty"`
	ProviderID string `json:"providerId"`
	ServiceID  string `json:"serviceId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// UpdateRequest is a partial field set; nil fields are left unchanged.
type UpdateRequest struct {
	ProviderID *string `json:"providerId,omitempty"`
	ServiceID  *string `json:"serviceId,omitempty"`
	Date       *string `json:"date,omitempty"`
	StartTime  *string `json:"startTime,omitempty"`
	EndTime    *string `json:"endTime,omitempty"`
	Status     *Status `json:"status,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// Empty reports whether the request changes nothing.
func (r UpdateRequest) Empty() bool {
	return r.ProviderID == nil && r.ServiceID == nil && r.Date == nil &&
		r.StartTime == nil && r.EndTime == nil && r.Status == nil && r.Notes == nil
}

// validateSchedule checks the date and that start precedes end.
func validateSchedule(date, start, end string) error {
	if _, err := ParseDate(date); err != nil {
		return err
	}
	startMin, err := ParseClock(start)
	if err != nil {
		return err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return err
	}
	if startMin >= endMin {
		return fmt.Errorf("%w: start time %s must be before end time %s", ErrInvalidRequest, start, end)
	}
	return nil
}

func normalize(value string) string {
	return strings.TrimSpace(value)
}
