package appointments

import (
	"context"
	"time"

	"github.com/wolfman30/appointment-assistant/internal/latency"
)

// Latency emulates backend round trips. Scale 0 disables every delay.
type Latency struct {
	Fetch   time.Duration
	Book    time.Duration
	Update  time.Duration
	Cancel  time.Duration
	Catalog time.Duration
	Slots   time.Duration
	Scale   float64
}

// DefaultLatency mirrors typical demo round trips.
func DefaultLatency() Latency {
	return Latency{
		Fetch:   500 * time.Millisecond,
		Book:    time.Second,
		Update:  800 * time.Millisecond,
		Cancel:  800 * time.Millisecond,
		Catalog: 500 * time.Millisecond,
		Slots:   300 * time.Millisecond,
		Scale:   1,
	}
}

// NoLatency disables simulated delays.
func NoLatency() Latency {
	return Latency{}
}

// Wait blocks for d scaled, or until ctx is done.
func (l Latency) Wait(ctx context.Context, d time.Duration) error {
	return latency.Wait(ctx, d, l.Scale)
}
