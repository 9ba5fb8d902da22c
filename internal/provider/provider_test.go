package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/jsvensson/lumen/internal/color"
	"github.com/jsvensson/lumen/internal/light"
)

func testLights(provider string) []*light.Light {
	desk := light.Named(provider, "1", "desk", light.CapColor, light.CapBrightness)
	_ = desk.SetColor(color.FromRGB(color.RGB{R: 255, G: 170}))
	strip := light.New(provider, "2", light.CapColor)
	return []*light.Light{desk, strip}
}

func newMemory(t *testing.T, name string) *Memory {
	t.Helper()
	m, err := NewMemory(name, testLights(name)...)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	return m
}

func TestNewMemoryRejects(t *testing.T) {
	if _, err := NewMemory("home", light.New("other", "1")); err == nil {
		t.Error("NewMemory with foreign light: error = nil")
	}
	if _, err := NewMemory("home", light.New("home", "1"), light.New("home", "1")); err == nil {
		t.Error("NewMemory with duplicate id: error = nil")
	}
}

func TestMemoryListOrderAndClones(t *testing.T) {
	m := newMemory(t, "home")
	ctx := context.Background()

	lights, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(lights) != 2 || lights[0].ID().ID != "1" || lights[1].ID().ID != "2" {
		t.Fatalf("List() = %v, want ids 1, 2", lights)
	}

	lights[0].SetName("changed")
	again, _ := m.Get(ctx, "1")
	if again.Name() != "desk" {
		t.Errorf("List returned shared state: name = %q", again.Name())
	}
}

func TestMemoryGetMissing(t *testing.T) {
	m := newMemory(t, "home")
	if _, err := m.Get(context.Background(), "9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(9) error = %v, want ErrNotFound", err)
	}
}

func TestMemorySync(t *testing.T) {
	m := newMemory(t, "home")
	ctx := context.Background()

	l, _ := m.Get(ctx, "2")
	blue := color.FromRGB(color.RGB{B: 255})
	_ = l.SetColor(blue)
	l.Turn(true)

	if err := m.Sync(ctx, l); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	got, _ := m.Get(ctx, "2")
	if c, err := got.Color(); err != nil || c != blue {
		t.Errorf("Color() after sync = %v, %v; want %v", c, err, blue)
	}
	if !got.Power() {
		t.Error("Power() after sync = false")
	}

	if err := m.Sync(ctx, light.New("home", "9")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Sync(unknown) error = %v, want ErrNotFound", err)
	}
	if err := m.Sync(ctx, light.New("other", "1")); err == nil {
		t.Error("Sync(foreign) error = nil")
	}
}

func TestMemoryCanceled(t *testing.T) {
	m := newMemory(t, "home")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.List(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("List error = %v, want context.Canceled", err)
	}
}

func TestSet(t *testing.T) {
	s := NewSet(newMemory(t, "home"), newMemory(t, "office"))
	ctx := context.Background()

	if got := s.Names(); len(got) != 2 || got[0] != "home" || got[1] != "office" {
		t.Errorf("Names() = %v", got)
	}

	all, err := s.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(all) != 4 || all[0].ID().Provider != "home" || all[3].ID().Provider != "office" {
		t.Errorf("FetchAll() = %v", all)
	}

	l, err := s.Fetch(ctx, light.ProviderID{Provider: "office", ID: "1"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	l.Turn(true)
	if err := s.Sync(ctx, l); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	l, _ = s.Fetch(ctx, l.ID())
	if !l.Power() {
		t.Error("Power() after Set.Sync = false")
	}

	if _, err := s.FetchProvider(ctx, "garage"); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("FetchProvider(garage) error = %v, want ErrUnknownProvider", err)
	}
	if err := s.Sync(ctx, light.New("garage", "1")); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("Sync(garage) error = %v, want ErrUnknownProvider", err)
	}
	if _, err := s.Fetch(ctx, light.ProviderID{Provider: "home", ID: "9"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Fetch(9@home) error = %v, want ErrNotFound", err)
	}
}
