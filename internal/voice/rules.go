package voice

import (
	"regexp"
	"strings"
)

var (
	providerPattern   = regexp.MustCompile(`with (dr\.|doctor)?\s*([a-z]+)`)
	bookTimePattern   = regexp.MustCompile(`at (\d{1,2}(?::\d{2})?\s*(?:am|pm)?)`)
	weekdayPattern    = regexp.MustCompile(`on ([a-z]+day)`)
	cancelTimePattern = regexp.MustCompile(`(\d{1,2}(?::\d{2})?\s*(?:am|pm))`)
	newTimePattern    = regexp.MustCompile(`to (\d{1,2}(?::\d{2})?\s*(?:am|pm))`)
	nextDayPattern    = regexp.MustCompile(`next ([a-z]+day)`)
)

// Rule classifies a lower-cased utterance. ok is false when the rule does
// not apply and the next rule should be tried.
type Rule struct {
	Name  string
	Match func(text string) (cmd Command, ok bool)
}

// DefaultRules returns the fixed-priority rule list. The first matching
// rule wins.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "book", Match: matchBook},
		{Name: "cancel", Match: matchCancel},
		{Name: "reschedule", Match: matchReschedule},
		{Name: "navigate", Match: matchNavigate},
	}
}

func matchBook(text string) (Command, bool) {
	// A plain substring check would classify every "reschedule" as a
	// booking, as the legacy assistant did, and leave the reschedule rule
	// unreachable. The word is stripped first so it reaches its own rule.
	if !strings.Contains(text, "book") && !strings.Contains(strings.ReplaceAll(text, "reschedule", ""), "schedule") {
		return nil, false
	}
	cmd := BookCommand{
		ProviderName: submatch(providerPattern, text, 2),
		Time:         submatch(bookTimePattern, text, 1),
	}
	switch {
	case strings.Contains(text, "tomorrow"):
		cmd.Date = "tomorrow"
	case strings.Contains(text, "today"):
		cmd.Date = "today"
	default:
		cmd.Date = submatch(weekdayPattern, text, 1)
	}
	return cmd, true
}

func matchCancel(text string) (Command, bool) {
	if !strings.Contains(text, "cancel") {
		return nil, false
	}
	return CancelCommand{Time: submatch(cancelTimePattern, text, 1)}, true
}

func matchReschedule(text string) (Command, bool) {
	if !strings.Contains(text, "reschedule") {
		return nil, false
	}
	cmd := RescheduleCommand{NewTime: submatch(newTimePattern, text, 1)}
	if strings.Contains(text, "next") {
		if day := submatch(nextDayPattern, text, 1); day != "" {
			cmd.NewDate = "next " + day
		}
	}
	return cmd, true
}

func matchNavigate(text string) (Command, bool) {
	if !containsAny(text, "show", "go to", "open") {
		return nil, false
	}
	switch {
	case containsAny(text, "profile", "account"):
		return NavigateCommand{Route: RouteSettings}, true
	case containsAny(text, "appointment", "booking"):
		return NavigateCommand{Route: RouteAppointments}, true
	case strings.Contains(text, "dashboard"):
		return NavigateCommand{Route: RouteDashboard}, true
	}
	return nil, false
}

func submatch(re *regexp.Regexp, text string, group int) string {
	m := re.FindStringSubmatch(text)
	if len(m) <= group {
		return ""
	}
	return m[group]
}

func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
