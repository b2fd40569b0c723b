package appointments

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	minutesPerDay   = 24 * 60
	displayTime     = "3:04 PM"
	displayLongDate = "Monday, January 2, 2006"
	searchDate      = "January 2, 2006"
	shortDate       = "January 2"
)

// ParseClock converts a 24h "HH:MM" wall-clock string to minutes since midnight.
func ParseClock(value string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidRequest, value)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: time %q has invalid hour", ErrInvalidRequest, value)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: time %q has invalid minute", ErrInvalidRequest, value)
	}
	return hours*60 + minutes, nil
}

// FormatClock renders minutes since midnight as zero-padded "HH:MM",
// wrapping past midnight.
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// CalculateEndTime adds a service duration to a start time.
func CalculateEndTime(startTime string, durationMinutes int) (string, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return "", err
	}
	return FormatClock(start + durationMinutes), nil
}

// ParseDate validates a calendar date in YYYY-MM-DD form.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidRequest, value)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD in its own location.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// DisplayTime renders "HH:MM" as "h:mm AM/PM". Invalid input is returned unchanged.
func DisplayTime(clock string) string {
	minutes, err := ParseClock(clock)
	if err != nil {
		return clock
	}
	return time.Date(2000, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format(displayTime)
}

// DisplayDate renders a YYYY-MM-DD date as "Monday, January 2, 2006".
func DisplayDate(date string) string {
	return formatDate(date, displayLongDate)
}

// DisplayShortDate renders a YYYY-MM-DD date as "January 2".
func DisplayShortDate(date string) string {
	return formatDate(date, shortDate)
}

func formatDate(date, layout string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format(layout)
}
