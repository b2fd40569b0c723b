package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_UpdateRollsBackOnError(t *testing.T) {
	clock := &fakeClock{now: testNow}
	store := NewMemoryStore(clock.Now)
	ctx := context.Background()
	store.Put(ctx, Session{ID: "s1", Step: StepProvider, ExpiresAt: testNow.Add(time.Minute)})

	_, err := store.Update(ctx, "s1", func(s *Session) error {
		s.Step = StepReview
		return errors.New("boom")
	})
	require.Error(t, err)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, StepProvider, got.Step)

	updated, err := store.Update(ctx, "s1", func(s *Session) error {
		s.Step = StepDate
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, StepDate, updated.Step)
}

func TestMemoryStore_SweepsExpiredOnPut(t *testing.T) {
	clock := &fakeClock{now: testNow}
	store := NewMemoryStore(clock.Now)
	ctx := context.Background()
	store.Put(ctx, Session{ID: "old", ExpiresAt: testNow.Add(time.Minute)})

	clock.Advance(2 * time.Minute)
	store.Put(ctx, Session{ID: "new", ExpiresAt: clock.Now().Add(time.Minute)})

	assert.Equal(t, 1, store.Len())
	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore(func() time.Time { return testNow })
	ctx := context.Background()
	store.Put(ctx, Session{ID: "s1", AvailableSlots: []string{"09:00"}, ExpiresAt: testNow.Add(time.Minute)})

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	got.AvailableSlots[0] = "changed"

	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "09:00", again.AvailableSlots[0])
}
