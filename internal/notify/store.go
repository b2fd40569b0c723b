package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wolfman30/appointment-assistant/internal/latency"
	"github.com/wolfman30/appointment-assistant/internal/observability/metrics"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

// Delays emulates backend round trips for inbox operations.
type Delays struct {
	Fetch    time.Duration
	MarkRead time.Duration
	MarkAll  time.Duration
	Scale    float64
}

// DefaultDelays mirrors typical demo round trips.
func DefaultDelays() Delays {
	return Delays{
		Fetch:    500 * time.Millisecond,
		MarkRead: 300 * time.Millisecond,
		MarkAll:  500 * time.Millisecond,
		Scale:    1,
	}
}

func (d Delays) wait(ctx context.Context, base time.Duration) error {
	return latency.Wait(ctx, base, d.Scale)
}

// Store owns every user's notifications, newest first.
type Store struct {
	mu      sync.RWMutex
	items   []Notification
	delays  Delays
	metrics *metrics.SchedulingMetrics
	logger  *logging.Logger
}

// NewStore creates a store holding initial, which is assumed newest first.
func NewStore(initial []Notification, delays Delays, mx *metrics.SchedulingMetrics, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		items:   append([]Notification(nil), initial...),
		delays:  delays,
		metrics: mx,
		logger:  logger,
	}
}

// Fetch returns userID's inbox.
func (s *Store) Fetch(ctx context.Context, userID string) (Inbox, error) {
	if err := s.delays.wait(ctx, s.delays.Fetch); err != nil {
		return Inbox{}, fmt.Errorf("notify: fetch: %w", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	inbox := Inbox{Notifications: []Notification{}}
	for _, n := range s.items {
		if n.UserID != userID {
			continue
		}
		inbox.Notifications = append(inbox.Notifications, n)
		if !n.IsRead {
			inbox.UnreadCount++
		}
	}
	return inbox, nil
}

// UnreadCount returns the number of unread notifications for userID.
func (s *Store) UnreadCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count
}

// MarkAsRead flags one notification as read. Marking an already read
// notification is a no-op.
func (s *Store) MarkAsRead(ctx context.Context, userID, id string) error {
	if err := s.delays.wait(ctx, s.delays.MarkRead); err != nil {
		return fmt.Errorf("notify: mark read: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id && s.items[i].UserID == userID {
			s.items[i].IsRead = true
			return nil
		}
	}
	return fmt.Errorf("notify: mark read %s: %w", id, ErrNotFound)
}

// MarkAllAsRead flags every notification for userID as read.
func (s *Store) MarkAllAsRead(ctx context.Context, userID string) error {
	if err := s.delays.wait(ctx, s.delays.MarkAll); err != nil {
		return fmt.Errorf("notify: mark all read: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].UserID == userID {
			s.items[i].IsRead = true
		}
	}
	return nil
}

// Add prepends n without simulated latency.
func (s *Store) Add(n Notification) {
	s.mu.Lock()
	s.items = append([]Notification{n}, s.items...)
	s.mu.Unlock()

	s.metrics.ObserveNotification(string(n.Type))
	s.logger.Info("notification added", "notification_id", n.ID, "user_id", n.UserID, "type", n.Type)
}
