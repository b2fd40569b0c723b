package wizard

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	expiresAt time.Time

	mu      sync.Mutex
	session Session
}

// MemoryStore keeps sessions in process until they expire. Expiry is
// fixed at creation.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{entries: make(map[string]*entry), now: now}
}

// Put stores a new session.
func (s *MemoryStore) Put(_ context.Context, session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.entries[session.ID] = &entry{expiresAt: session.ExpiresAt, session: session.clone()}
}

// Get returns a copy of a live session.
func (s *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	e, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.clone(), nil
}

// Update runs fn against the session while holding its lock, so updates
// to one session are serialized. The session is saved only if fn succeeds.
func (s *MemoryStore) Update(_ context.Context, id string, fn func(*Session) error) (Session, error) {
	e, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	working := e.session.clone()
	if err := fn(&working); err != nil {
		return e.session.clone(), err
	}
	e.session = working
	return working.clone(), nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) lookup(id string) (*entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, id)
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}
