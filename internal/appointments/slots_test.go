package appointments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotTemplate(t *testing.T) {
	want := []string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
	}
	assert.Equal(t, want, SlotTemplate())
}

func TestAvailableSlotsExcludesActiveBookings(t *testing.T) {
	existing := []Appointment{
		{ProviderID: "provider-1", Date: "2025-01-10", StartTime: "09:00", Status: StatusScheduled},
		{ProviderID: "provider-1", Date: "2025-01-10", StartTime: "13:30", Status: StatusConfirmed},
		{ProviderID: "provider-1", Date: "2025-01-10", StartTime: "10:00", Status: StatusCancelled},
		{ProviderID: "provider-2", Date: "2025-01-10", StartTime: "11:00", Status: StatusScheduled},
		{ProviderID: "provider-1", Date: "2025-01-11", StartTime: "11:30", Status: StatusScheduled},
	}

	slots := AvailableSlots(existing, "provider-1", "2025-01-10")

	assert.Len(t, slots, 12)
	assert.NotContains(t, slots, "09:00")
	assert.NotContains(t, slots, "13:30")
	assert.Contains(t, slots, "10:00")
	assert.Contains(t, slots, "11:00")
	assert.Contains(t, slots, "11:30")
}

func TestAvailableSlotsStartOnlyBuckets(t *testing.T) {
	// A 60 minute booking at 09:00 only holds the 09:00 bucket.
	existing := []Appointment{
		{ProviderID: "provider-1", Date: "2025-01-10", StartTime: "09:00", EndTime: "10:00", Status: StatusScheduled},
	}
	slots := AvailableSlots(existing, "provider-1", "2025-01-10")
	assert.Contains(t, slots, "09:30")
	assert.Len(t, slots, 13)
}

func TestSlotKeyString(t *testing.T) {
	k := SlotKey{ProviderID: "provider-1", Date: "2025-01-10", StartTime: "09:00"}
	assert.Equal(t, "provider-1:2025-01-10:09:00", k.String())
}
