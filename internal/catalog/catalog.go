package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

// ErrNotFound is returned when an id does not resolve to a catalog entry.
var ErrNotFound = errors.New("catalog: not found")

// Source supplies provider and service reference data.
type Source interface {
	Providers(ctx context.Context) ([]Provider, error)
	Services(ctx context.Context) ([]Service, error)
}

// StaticSource serves a fixed, injected data set.
type StaticSource struct {
	providers []Provider
	services  []Service
}

// NewStaticSource copies the given slices so later caller mutation is not observed.
func NewStaticSource(providers []Provider, services []Service) *StaticSource {
	return &StaticSource{
		providers: append([]Provider(nil), providers...),
		services:  append([]Service(nil), services...),
	}
}

// Providers implements Source.
func (s *StaticSource) Providers(ctx context.Context) ([]Provider, error) {
	return append([]Provider(nil), s.providers...), nil
}

// Services implements Source.
func (s *StaticSource) Services(ctx context.Context) ([]Service, error) {
	return append([]Service(nil), s.services...), nil
}

// Catalog answers lookups over a Source.
type Catalog struct {
	source Source
	logger *logging.Logger
}

// New creates a catalog backed by source.
func New(source Source, logger *logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.Default()
	}
	return &Catalog{source: source, logger: logger}
}

// Providers lists every provider.
func (c *Catalog) Providers(ctx context.Context) ([]Provider, error) {
	providers, err := c.source.Providers(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: providers: %w", err)
	}
	return providers, nil
}

// Services lists every service.
func (c *Catalog) Services(ctx context.Context) ([]Service, error) {
	services, err := c.source.Services(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: services: %w", err)
	}
	return services, nil
}

// Provider resolves a provider by exact id.
func (c *Catalog) Provider(ctx context.Context, id string) (*Provider, error) {
	providers, err := c.Providers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range providers {
		if providers[i].ID == id {
			return &providers[i], nil
		}
	}
	return nil, ErrNotFound
}

// Service resolves a service by exact id.
func (c *Catalog) Service(ctx context.Context, id string) (*Service, error) {
	services, err := c.Services(ctx)
	if err != nil {
		return nil, err
	}
	for i := range services {
		if services[i].ID == id {
			return &services[i], nil
		}
	}
	return nil, ErrNotFound
}

// MatchProvider returns the first provider whose name or specialization
// appears in text, or nil.
func (c *Catalog) MatchProvider(ctx context.Context, text string) (*Provider, error) {
	providers, err := c.Providers(ctx)
	if err != nil {
		return nil, err
	}
	text = strings.ToLower(text)
	for i := range providers {
		p := providers[i]
		if strings.Contains(text, strings.ToLower(p.Name)) || strings.Contains(text, strings.ToLower(p.Specialization)) {
			return &providers[i], nil
		}
	}
	return nil, nil
}

// MatchService returns the first service whose name appears in text, or nil.
func (c *Catalog) MatchService(ctx context.Context, text string) (*Service, error) {
	services, err := c.Services(ctx)
	if err != nil {
		return nil, err
	}
	text = strings.ToLower(text)
	for i := range services {
		if strings.Contains(text, strings.ToLower(services[i].Name)) {
			return &services[i], nil
		}
	}
	return nil, nil
}
