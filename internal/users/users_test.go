package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryGetAndPut(t *testing.T) {
	now := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	d := NewDirectory(DemoUser(now))
	ctx := context.Background()

	u, err := d.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", u.FullName)
	assert.True(t, u.WantsEmail())

	_, err = d.Get(ctx, "user-2")
	assert.ErrorIs(t, err, ErrNotFound)

	d.Put(ctx, User{ID: "user-2", Email: "jane@example.com"})
	u, err = d.Get(ctx, "user-2")
	require.NoError(t, err)
	assert.False(t, u.WantsEmail())
}

func TestWantsEmailRequiresAddress(t *testing.T) {
	u := DemoUser(time.Now())
	u.Email = ""
	assert.False(t, u.WantsEmail())

	u = DemoUser(time.Now())
	u.Preferences.NotificationPreferences.Email = false
	assert.False(t, u.WantsEmail())
}
