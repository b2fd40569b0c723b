package appointments

import (
	"fmt"
	"time"

	"github.com/wolfman30/appointment-assistant/internal/catalog"
)

// DemoAppointments builds five appointments for userID around now: three
// upcoming on the following days and two in the past.
func DemoAppointments(now time.Time, userID string, providers []catalog.Provider, services []catalog.Service) []Appointment {
	if len(providers) == 0 || len(services) == 0 {
		return nil
	}
	pastStatuses := []Status{StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled}

	out := make([]Appointment, 0, 5)
	for i := 0; i < 5; i++ {
		upcoming := i < 3
		var date time.Time
		var status Status
		if upcoming {
			date = now.AddDate(0, 0, i+1)
			status = StatusConfirmed
			if i == 0 {
				status = StatusScheduled
			}
		} else {
			date = now.AddDate(0, 0, -(i - 2))
			status = pastStatuses[i%len(pastStatuses)]
		}
		provider := providers[i%len(providers)]
		service := services[i%len(services)]
		out = append(out, Appointment{
			ID:         fmt.Sprintf("appointment-%d", i+1),
			UserID:     userID,
			ProviderID: provider.ID,
			ServiceID:  service.ID,
			Date:       FormatDate(date),
			StartTime:  "10:00",
			EndTime:    "11:00",
			Status:     status,
			CreatedAt:  now,
			UpdatedAt:  now,
			Provider:   &provider,
			Service:    &service,
		})
	}
	return out
}
