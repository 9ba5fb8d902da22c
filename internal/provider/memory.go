package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/jsvensson/lumen/internal/light"
)

// Memory is an in-process provider. It holds lights declared in a light
// file and accepts syncs for them; nothing leaves the process.
type Memory struct {
	name string

	mu     sync.RWMutex
	order  []string
	lights map[string]*light.Light
}

// NewMemory returns a provider seeded with clones of lights. Lights whose
// provider name differs from name are rejected.
func NewMemory(name string, lights ...*light.Light) (*Memory, error) {
	m := &Memory{name: name, lights: make(map[string]*light.Light, len(lights))}
	for _, l := range lights {
		if l.ID().Provider != name {
			return nil, fmt.Errorf("light %s does not belong to provider %q", l.ID(), name)
		}
		if _, dup := m.lights[l.ID().ID]; dup {
			return nil, fmt.Errorf("duplicate light %s", l.ID())
		}
		m.order = append(m.order, l.ID().ID)
		m.lights[l.ID().ID] = l.Clone()
	}
	return m, nil
}

func (m *Memory) Name() string {
	return m.name
}

// List returns clones of every light in declaration order.
func (m *Memory) List(ctx context.Context) ([]*light.Light, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*light.Light, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.lights[id].Clone())
	}
	return out, nil
}

// Get returns a clone of the light with the given id.
func (m *Memory) Get(ctx context.Context, id string) (*light.Light, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.lights[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s@%s", ErrNotFound, id, m.name)
	}
	return l.Clone(), nil
}

// Sync replaces the stored state of a known light.
func (m *Memory) Sync(ctx context.Context, l *light.Light) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if l.ID().Provider != m.name {
		return fmt.Errorf("light %s does not belong to provider %q", l.ID(), m.name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lights[l.ID().ID]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, l.ID())
	}
	m.lights[l.ID().ID] = l.Clone()
	log.Infof("synced %s", l)
	return nil
}
