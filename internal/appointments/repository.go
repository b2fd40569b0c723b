package appointments

import (
	"context"
	"fmt"
	"sync"
)

// Repository stores the appointment collection.
type Repository interface {
	List(ctx context.Context) ([]Appointment, error)
	Get(ctx context.Context, id string) (Appointment, error)
	Insert(ctx context.Context, appt Appointment) error
	Update(ctx context.Context, appt Appointment) error
}

// InMemoryRepository keeps appointments in insertion order for the process lifetime.
type InMemoryRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Appointment
}

// NewInMemoryRepository creates a repository holding the given initial state.
func NewInMemoryRepository(initial []Appointment) *InMemoryRepository {
	r := &InMemoryRepository{byID: make(map[string]Appointment, len(initial))}
	for _, a := range initial {
		if _, dup := r.byID[a.ID]; dup {
			continue
		}
		r.order = append(r.order, a.ID)
		r.byID[a.ID] = a
	}
	return r
}

// List returns a snapshot of every appointment.
func (r *InMemoryRepository) List(ctx context.Context) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Appointment, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

// Get returns the appointment with id.
func (r *InMemoryRepository) Get(ctx context.Context, id string) (Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

// Insert appends a new appointment.
func (r *InMemoryRepository) Insert(ctx context.Context, appt Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[appt.ID]; exists {
		return fmt.Errorf("appointments: insert: duplicate id %s", appt.ID)
	}
	r.order = append(r.order, appt.ID)
	r.byID[appt.ID] = appt
	return nil
}

// Update replaces an existing appointment in place.
func (r *InMemoryRepository) Update(ctx context.Context, appt Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[appt.ID]; !exists {
		return ErrNotFound
	}
	r.byID[appt.ID] = appt
	return nil
}
