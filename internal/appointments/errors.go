package appointments

import "errors"

var (
	// ErrNotFound is returned when an appointment id does not exist.
	ErrNotFound = errors.New("appointments: not found")
	// ErrInvalidRequest marks validation failures.
	ErrInvalidRequest = errors.New("appointments: invalid request")
	// ErrInvalidTransition is returned when a status change is not allowed.
	ErrInvalidTransition = errors.New("appointments: invalid status transition")
	// ErrSlotTaken is returned by a slot guard when the bucket is already claimed.
	ErrSlotTaken = errors.New("appointments: slot already booked")
)
