// Package latency emulates backend round trips for the in-process stores.
package latency

import (
	"context"
	"time"
)

// Wait blocks for base multiplied by scale, or until ctx is done. A
// non-positive result returns immediately with ctx's error, if any.
func Wait(ctx context.Context, base time.Duration, scale float64) error {
	scaled := time.Duration(float64(base) * scale)
	if scaled <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(scaled)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
