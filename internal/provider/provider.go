// Package provider defines how lights are fetched from and synced to the
// systems that own them.
package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jsvensson/lumen/internal/light"
	"github.com/tliron/commonlog"
)

var (
	// ErrNotFound is returned when a provider has no light with the given id.
	ErrNotFound = errors.New("light not found")
	// ErrUnknownProvider is returned when no provider is registered under a name.
	ErrUnknownProvider = errors.New("unknown provider")
)

var log = commonlog.GetLogger("lumen.provider")

// Provider fetches and syncs lights of one backend. Implementations talk to
// devices over their own transport, so every call takes a context.
type Provider interface {
	Name() string
	List(ctx context.Context) ([]*light.Light, error)
	Get(ctx context.Context, id string) (*light.Light, error)
	Sync(ctx context.Context, l *light.Light) error
}

// Set routes requests to providers by name.
type Set struct {
	providers map[string]Provider
}

// NewSet returns a Set of the given providers. A later provider with the
// same name replaces an earlier one.
func NewSet(providers ...Provider) *Set {
	s := &Set{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		s.providers[p.Name()] = p
	}
	return s
}

// Names returns the registered provider names, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.providers))
	for name := range s.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the provider registered under name.
func (s *Set) Lookup(name string) (Provider, error) {
	p, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// Fetch returns the current state of one light.
func (s *Set) Fetch(ctx context.Context, id light.ProviderID) (*light.Light, error) {
	p, err := s.Lookup(id.Provider)
	if err != nil {
		return nil, err
	}
	l, err := p.Get(ctx, id.ID)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", id, err)
	}
	return l, nil
}

// FetchProvider lists every light of one provider.
func (s *Set) FetchProvider(ctx context.Context, name string) ([]*light.Light, error) {
	p, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	lights, err := p.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", name, err)
	}
	return lights, nil
}

// FetchAll lists every light of every provider, in provider name order.
func (s *Set) FetchAll(ctx context.Context) ([]*light.Light, error) {
	var all []*light.Light
	for _, name := range s.Names() {
		lights, err := s.FetchProvider(ctx, name)
		if err != nil {
			return nil, err
		}
		all = append(all, lights...)
	}
	return all, nil
}

// Sync pushes l to its provider.
func (s *Set) Sync(ctx context.Context, l *light.Light) error {
	p, err := s.Lookup(l.ID().Provider)
	if err != nil {
		return err
	}
	log.Debugf("syncing %s", l)
	if err := p.Sync(ctx, l); err != nil {
		return fmt.Errorf("syncing %s: %w", l.ID(), err)
	}
	return nil
}
