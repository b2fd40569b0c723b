package appointments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepositoryPreservesOrder(t *testing.T) {
	repo := NewInMemoryRepository([]Appointment{{ID: "b"}, {ID: "a"}, {ID: "b"}})
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, Appointment{ID: "c"}))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, ids(list))

	assert.Error(t, repo.Insert(ctx, Appointment{ID: "a"}))
}

func TestInMemoryRepositoryGetAndUpdate(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, Appointment{ID: "missing"}), ErrNotFound)

	require.NoError(t, repo.Insert(ctx, Appointment{ID: "x", Status: StatusScheduled}))
	require.NoError(t, repo.Update(ctx, Appointment{ID: "x", Status: StatusConfirmed}))

	got, err := repo.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got.Status)
}

func TestInMemoryRepositoryListIsSnapshot(t *testing.T) {
	repo := NewInMemoryRepository([]Appointment{{ID: "x", Notes: "orig"}})
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	list[0].Notes = "changed"

	got, err := repo.Get(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "orig", got.Notes)
}
