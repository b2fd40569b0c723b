package appointments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusLabels(t *testing.T) {
	want := map[Status]string{
		StatusScheduled:   "Scheduled",
		StatusConfirmed:   "Confirmed",
		StatusCompleted:   "Completed",
		StatusCancelled:   "Cancelled",
		StatusNoShow:      "No Show",
		StatusRescheduled: "Rescheduled",
	}
	for status, label := range want {
		assert.True(t, status.Valid(), status)
		assert.Equal(t, label, status.Label())
	}
	assert.Len(t, Statuses(), len(want))
	assert.False(t, Status("pending").Valid())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("no-show")
	assert.NoError(t, err)
	assert.Equal(t, StatusNoShow, s)

	_, err = ParseStatus("No Show")
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "scheduled, confirmed, completed, cancelled, no-show, rescheduled")
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusCancelled, StatusCancelled, true},
		{StatusConfirmed, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusScheduled, StatusCompleted, false},
		{StatusRescheduled, StatusConfirmed, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusNoShow.Terminal())
	assert.False(t, StatusScheduled.Terminal())
}
