package appointments

const slotStepMinutes = 30

// Bookable windows as [start, end) minutes since midnight; 12:00-13:00 is a break.
var slotWindows = [][2]int{
	{9 * 60, 12 * 60},
	{13 * 60, 17 * 60},
}

// SlotKey identifies one canonical bucket for a provider on a date.
type SlotKey struct {
	ProviderID string
	Date       string
	StartTime  string
}

func (k SlotKey) String() string {
	return k.ProviderID + ":" + k.Date + ":" + k.StartTime
}

// SlotTemplate returns the canonical daily slot list in ascending order.
func SlotTemplate() []string {
	var slots []string
	for _, w := range slotWindows {
		for m := w[0]; m < w[1]; m += slotStepMinutes {
			slots = append(slots, FormatClock(m))
		}
	}
	return slots
}

// AvailableSlots removes from the template every start time held by an
// active appointment for the same provider and date. Buckets are start-only;
// service duration does not reserve following slots.
func AvailableSlots(existing []Appointment, providerID, date string) []string {
	booked := make(map[string]struct{})
	for _, a := range existing {
		if a.ProviderID == providerID && a.Date == date && a.Active() {
			booked[a.StartTime] = struct{}{}
		}
	}
	template := SlotTemplate()
	available := make([]string, 0, len(template))
	for _, slot := range template {
		if _, taken := booked[slot]; !taken {
			available = append(available, slot)
		}
	}
	return available
}
