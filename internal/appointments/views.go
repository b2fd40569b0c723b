package appointments

import (
	"fmt"
	"sort"
	"strings"
)

// Period selects a time window over the appointment list.
type Period string

const (
	PeriodAll       Period = "all"
	PeriodUpcoming  Period = "upcoming"
	PeriodPast      Period = "past"
	PeriodCancelled Period = "cancelled"
)

// ParsePeriod validates a raw period, treating "" as all.
func ParsePeriod(raw string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return PeriodAll, nil
	case PeriodAll, PeriodUpcoming, PeriodPast, PeriodCancelled:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown period %q", ErrInvalidRequest, raw)
	}
}

// Query narrows a list view. A zero Query returns everything sorted by date.
type Query struct {
	Period Period
	Status Status // empty means any status
	Search string
}

// Filter applies q to appointments relative to today (YYYY-MM-DD). Upcoming
// keeps dates on or after today, past keeps dates on or before today. Results
// are sorted by date ascending, or descending for past.
func Filter(appointments []Appointment, q Query, today string) []Appointment {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]Appointment, 0, len(appointments))
	for _, a := range appointments {
		switch q.Period {
		case PeriodUpcoming:
			if a.Date < today {
				continue
			}
		case PeriodPast:
			if a.Date > today {
				continue
			}
		case PeriodCancelled:
			if a.Status != StatusCancelled {
				continue
			}
		}
		if q.Status != "" && a.Status != q.Status {
			continue
		}
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		out = append(out, a)
	}

	descending := q.Period == PeriodPast
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return out[i].Date > out[j].Date
		}
		return out[i].Date < out[j].Date
	})
	return out
}

func matchesSearch(a Appointment, search string) bool {
	if strings.Contains(strings.ToLower(a.ProviderName()), search) {
		return true
	}
	if strings.Contains(strings.ToLower(a.ServiceName()), search) {
		return true
	}
	return strings.Contains(strings.ToLower(formatDate(a.Date, searchDate)), search)
}

// Upcoming returns the next limit active appointments dated today or later.
// limit <= 0 returns all of them.
func Upcoming(appointments []Appointment, today string, limit int) []Appointment {
	out := make([]Appointment, 0, len(appointments))
	for _, a := range appointments {
		if IsUpcoming(a, today) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// IsUpcoming reports whether a is active and dated today or later.
func IsUpcoming(a Appointment, today string) bool {
	return a.Date >= today && a.Active()
}

// CanCancel reports whether a user may still cancel a.
func CanCancel(a Appointment, today string) bool {
	return IsUpcoming(a, today) && (a.Status == StatusScheduled || a.Status == StatusConfirmed)
}

// View is the display projection of an appointment.
type View struct {
	Appointment
	StatusLabel  string `json:"statusLabel"`
	DisplayDate  string `json:"displayDate"`
	DisplayStart string `json:"displayStartTime"`
	DisplayEnd   string `json:"displayEndTime"`
	IsUpcoming   bool   `json:"isUpcoming"`
	CanCancel    bool   `json:"canCancel"`
	Final        bool   `json:"final"`
}

// NewView projects a for display relative to today.
func NewView(a Appointment, today string) View {
	return View{
		Appointment:  a,
		StatusLabel:  a.Status.Label(),
		DisplayDate:  DisplayDate(a.Date),
		DisplayStart: DisplayTime(a.StartTime),
		DisplayEnd:   DisplayTime(a.EndTime),
		IsUpcoming:   IsUpcoming(a, today),
		CanCancel:    CanCancel(a, today),
		Final:        a.Status.Terminal(),
	}
}

// NewViews projects a list for display.
func NewViews(list []Appointment, today string) []View {
	views := make([]View, 0, len(list))
	for _, a := range list {
		views = append(views, NewView(a, today))
	}
	return views
}
