package voice

// Intent tags the classified purpose of an utterance.
type Intent string

const (
	IntentBook       Intent = "bookAppointment"
	IntentCancel     Intent = "cancelAppointment"
	IntentReschedule Intent = "rescheduleAppointment"
	IntentNavigate   Intent = "navigate"
	IntentUnknown    Intent = "unknown"
)

// Routes a navigate command can target.
const (
	RouteSettings     = "/settings"
	RouteAppointments = "/appointments"
	RouteDashboard    = "/dashboard"
)

// Command is the interpreter's typed output. Each intent carries only the
// slots its rule can extract; empty strings mean "not found".
type Command interface {
	Intent() Intent
	// Parameters lists the extracted slots by their wire names.
	Parameters() map[string]string
}

// BookCommand asks to book with a provider at a time.
type BookCommand struct {
	ProviderName string
	Time         string
	Date         string
}

func (BookCommand) Intent() Intent { return IntentBook }

func (c BookCommand) Parameters() map[string]string {
	return params("providerName", c.ProviderName, "time", c.Time, "date", c.Date)
}

// CancelCommand asks to cancel the appointment at Time.
type CancelCommand struct {
	Time string
}

func (CancelCommand) Intent() Intent { return IntentCancel }

func (c CancelCommand) Parameters() map[string]string {
	return params("time", c.Time)
}

// RescheduleCommand asks to move an appointment.
type RescheduleCommand struct {
	NewTime string
	NewDate string
}

func (RescheduleCommand) Intent() Intent { return IntentReschedule }

func (c RescheduleCommand) Parameters() map[string]string {
	return params("newTime", c.NewTime, "newDate", c.NewDate)
}

// NavigateCommand asks to open a route.
type NavigateCommand struct {
	Route string
}

func (NavigateCommand) Intent() Intent { return IntentNavigate }

func (c NavigateCommand) Parameters() map[string]string {
	return params("route", c.Route)
}

// UnknownCommand is produced when no rule matches.
type UnknownCommand struct{}

func (UnknownCommand) Intent() Intent { return IntentUnknown }

func (UnknownCommand) Parameters() map[string]string { return map[string]string{} }

func params(kv ...string) map[string]string {
	out := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			out[kv[i]] = kv[i+1]
		}
	}
	return out
}
