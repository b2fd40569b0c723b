package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{ err error }

func (f failingSource) Providers(context.Context) ([]Provider, error) { return nil, f.err }
func (f failingSource) Services(context.Context) ([]Service, error)   { return nil, f.err }

func newTestCatalog() *Catalog {
	return New(NewStaticSource(DefaultProviders(), DefaultServices()), nil)
}

func TestCatalogListsSeedData(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()

	providers, err := c.Providers(ctx)
	require.NoError(t, err)
	require.Len(t, providers, 3)
	assert.Equal(t, "Dr. Sarah Johnson", providers[0].Name)
	assert.Equal(t, 4.7, providers[2].Rating)

	services, err := c.Services(ctx)
	require.NoError(t, err)
	require.Len(t, services, 3)
	assert.Equal(t, 45, services[2].Duration)
	assert.Equal(t, "follow-up", services[1].Category)
}

func TestCatalogLookupByID(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()

	p, err := c.Provider(ctx, "provider-2")
	require.NoError(t, err)
	assert.Equal(t, "Cardiologist", p.Specialization)

	_, err = c.Provider(ctx, "provider-9")
	assert.ErrorIs(t, err, ErrNotFound)

	s, err := c.Service(ctx, "service-1")
	require.NoError(t, err)
	assert.Equal(t, 60, s.Duration)

	_, err = c.Service(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogMatchProvider(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()

	tests := []struct {
		text string
		want string
	}{
		{"I want to see Dr. Emma Wilson", "provider-3"},
		{"a cardiologist please", "provider-2"},
		{"DERMATOLOGIST tomorrow", "provider-1"},
		{"with dr. johnson", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			p, err := c.MatchProvider(ctx, tt.text)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, p)
				return
			}
			require.NotNil(t, p)
			assert.Equal(t, tt.want, p.ID)
		})
	}
}

func TestCatalogMatchService(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()

	s, err := c.MatchService(ctx, "book an urgent care visit")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "service-3", s.ID)

	s, err = c.MatchService(ctx, "something else")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestCatalogWrapsSourceErrors(t *testing.T) {
	boom := errors.New("boom")
	c := New(failingSource{err: boom}, nil)

	_, err := c.Providers(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = c.Service(context.Background(), "service-1")
	assert.ErrorIs(t, err, boom)
}

func TestStaticSourceCopiesInput(t *testing.T) {
	providers := DefaultProviders()
	src := NewStaticSource(providers, nil)
	providers[0].Name = "changed"

	got, err := src.Providers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Dr. Sarah Johnson", got[0].Name)
}
