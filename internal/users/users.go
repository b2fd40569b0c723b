package users

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned for unknown user ids.
var ErrNotFound = errors.New("users: not found")

// NotificationPreferences controls outbound delivery channels.
type NotificationPreferences struct {
	Email               bool `json:"email"`
	SMS                 bool `json:"sms"`
	ReminderHoursBefore int  `json:"reminderHoursBefore"`
}

// Preferences are optional scheduling hints.
type Preferences struct {
	PreferredDays           []string                 `json:"preferredDays,omitempty"`
	PreferredTimeOfDay      string                   `json:"preferredTimeOfDay,omitempty"`
	PreferredProviders      []string                 `json:"preferredProviders,omitempty"`
	NotificationPreferences *NotificationPreferences `json:"notificationPreferences,omitempty"`
}

// User is the profile of an account holder.
type User struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	FullName    string       `json:"fullName"`
	Phone       string       `json:"phone,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// WantsEmail reports whether email notifications are enabled.
func (u User) WantsEmail() bool {
	return u.Email != "" && u.Preferences != nil &&
		u.Preferences.NotificationPreferences != nil &&
		u.Preferences.NotificationPreferences.Email
}

// Directory is an in-memory user lookup.
type Directory struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewDirectory creates a directory holding the given users.
func NewDirectory(initial ...User) *Directory {
	d := &Directory{users: make(map[string]User, len(initial))}
	for _, u := range initial {
		d.users[u.ID] = u
	}
	return d
}

// Get returns the user with id.
func (d *Directory) Get(ctx context.Context, id string) (User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

// Put inserts or replaces a user.
func (d *Directory) Put(ctx context.Context, u User) {
	d.mu.Lock()
	d.users[u.ID] = u
	d.mu.Unlock()
}

// DemoUser is the signed-in account used when no identity is supplied.
func DemoUser(now time.Time) User {
	return User{
		ID:        "user-1",
		Email:     "user@example.com",
		FullName:  "John Doe",
		Phone:     "+1234567890",
		CreatedAt: now,
		Preferences: &Preferences{
			PreferredDays:      []string{"Monday", "Wednesday", "Friday"},
			PreferredTimeOfDay: "morning",
			PreferredProviders: []string{"provider-1"},
			NotificationPreferences: &NotificationPreferences{
				Email:               true,
				SMS:                 true,
				ReminderHoursBefore: 24,
			},
		},
	}
}
