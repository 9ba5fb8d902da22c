// Package lumen sequences light providers and the local snapshot registry
// into the operations the lumen command exposes: list and fetch lights,
// change and sync them, and save or re-apply named snapshots.
package lumen

import (
	"context"
	"fmt"

	"github.com/jsvensson/lumen/internal/config"
	"github.com/jsvensson/lumen/internal/light"
	"github.com/jsvensson/lumen/internal/provider"
	"github.com/jsvensson/lumen/internal/registry"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("lumen")

// ApplyFunc changes a light before it is synced. It may be called
// concurrently for different lights.
type ApplyFunc func(l *light.Light) error

// Facade combines a set of providers with a registry.
type Facade struct {
	providers *provider.Set
	registry  registry.Registry
}

// New returns a facade over providers and reg.
func New(providers *provider.Set, reg registry.Registry) *Facade {
	return &Facade{providers: providers, registry: reg}
}

// Open loads the light file at path and returns a facade with one in-memory
// provider per provider name in the file. A non-empty registryPath replaces
// the registry directory named in the file.
func Open(path, registryPath string) (*Facade, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	var providers []provider.Provider
	for _, name := range cfg.Providers() {
		m, err := provider.NewMemory(name, cfg.LightsFor(name)...)
		if err != nil {
			return nil, err
		}
		providers = append(providers, m)
	}

	if registryPath == "" {
		registryPath = cfg.RegistryPath
	}
	reg := registry.NewJSON(registryPath)
	log.Debugf("opened %s with %d lights, registry %s", path, len(cfg.Lights), reg.Name())

	return New(provider.NewSet(providers...), reg), nil
}

// Registry returns the facade's registry.
func (f *Facade) Registry() registry.Registry {
	return f.registry
}

// ListProviders returns the provider names, sorted.
func (f *Facade) ListProviders() []string {
	return f.providers.Names()
}

// ListAll returns every light of every provider.
func (f *Facade) ListAll(ctx context.Context) ([]*light.Light, error) {
	return f.providers.FetchAll(ctx)
}

// ListProvider returns every light of one provider.
func (f *Facade) ListProvider(ctx context.Context, name string) ([]*light.Light, error) {
	return f.providers.FetchProvider(ctx, name)
}

// Get returns the current state of one light.
func (f *Facade) Get(ctx context.Context, id light.ProviderID) (*light.Light, error) {
	return f.providers.Fetch(ctx, id)
}

// GetMany fetches lights concurrently and returns them in the order of ids.
func (f *Facade) GetMany(ctx context.Context, ids []light.ProviderID) ([]*light.Light, error) {
	lights := make([]*light.Light, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			l, err := f.providers.Fetch(ctx, id)
			if err != nil {
				return err
			}
			lights[i] = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lights, nil
}

// ListDumps returns every saved dump.
func (f *Facade) ListDumps() ([]*light.Light, error) {
	return f.registry.ListDumps()
}

// ListDefaults returns every saved default.
func (f *Facade) ListDefaults() ([]*light.Light, error) {
	return f.registry.ListDefaults()
}

// Sync pushes l to its provider and, when l is named, saves it as a dump.
func (f *Facade) Sync(ctx context.Context, l *light.Light) error {
	if err := f.providers.Sync(ctx, l); err != nil {
		return err
	}
	if l.Name() == "" {
		return nil
	}
	return f.registry.Dump(l)
}

// FetchAndSync fetches each light, applies fn and syncs the result back.
// Lights are processed concurrently; the first error cancels the rest.
func (f *Facade) FetchAndSync(ctx context.Context, ids []light.ProviderID, fn ApplyFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		g.Go(func() error {
			l, err := f.providers.Fetch(ctx, id)
			if err != nil {
				return err
			}
			if err := apply(l, fn); err != nil {
				return err
			}
			return f.providers.Sync(ctx, l)
		})
	}
	return g.Wait()
}

// LoadAndSync loads each named dump, applies fn, syncs it and saves the
// result back under the same name.
func (f *Facade) LoadAndSync(ctx context.Context, names []string, fn ApplyFunc) error {
	return f.restore(ctx, names, f.registry.LoadDump, fn)
}

// ApplyDefault loads each named default, applies fn, syncs it and saves
// the result as a dump under the same name.
func (f *Facade) ApplyDefault(ctx context.Context, names []string, fn ApplyFunc) error {
	return f.restore(ctx, names, f.registry.LoadDefault, fn)
}

func (f *Facade) restore(ctx context.Context, names []string, load func(string) (*light.Light, error), fn ApplyFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range names {
		g.Go(func() error {
			l, err := load(name)
			if err != nil {
				return err
			}
			if err := apply(l, fn); err != nil {
				return err
			}
			if err := f.providers.Sync(ctx, l); err != nil {
				return err
			}
			// A changed name in fn does not move the snapshot.
			l.SetName(name)
			return f.registry.Dump(l)
		})
	}
	return g.Wait()
}

// Save fetches a light and stores its current state as a dump named name.
func (f *Facade) Save(ctx context.Context, id light.ProviderID, name string) error {
	l, err := f.named(ctx, id, name)
	if err != nil {
		return err
	}
	return f.registry.Dump(l)
}

// SaveDefault fetches a light and stores its current state as the default
// named name.
func (f *Facade) SaveDefault(ctx context.Context, id light.ProviderID, name string) error {
	l, err := f.named(ctx, id, name)
	if err != nil {
		return err
	}
	return f.registry.Default(l)
}

func (f *Facade) named(ctx context.Context, id light.ProviderID, name string) (*light.Light, error) {
	if err := registry.ValidateName(name); err != nil {
		return nil, err
	}
	l, err := f.providers.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	l.SetName(name)
	return l, nil
}

// Remove deletes a dump, or a default when isDefault is set.
func (f *Facade) Remove(name string, isDefault bool) error {
	if isDefault {
		return f.registry.RemoveDefault(name)
	}
	return f.registry.RemoveDump(name)
}

// Rename moves a dump, or a default when isDefault is set.
func (f *Facade) Rename(oldName, newName string, isDefault bool) error {
	if isDefault {
		return f.registry.RenameDefault(oldName, newName)
	}
	return f.registry.RenameDump(oldName, newName)
}

func apply(l *light.Light, fn ApplyFunc) error {
	if fn == nil {
		return nil
	}
	if err := fn(l); err != nil {
		return fmt.Errorf("applying to %s: %w", l, err)
	}
	return nil
}
