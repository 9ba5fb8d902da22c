// Package light models a controllable light: who provides it, what it can
// do, and the last known value of each capability.
package light

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jsvensson/lumen/internal/color"
	"github.com/jsvensson/lumen/internal/scalar"
)

var (
	// ErrIncapable is returned when a light lacks the requested capability.
	ErrIncapable = errors.New("incapable")
	// ErrUnset is returned when a capability has no known value yet.
	ErrUnset = errors.New("value unset")
)

// Capability is something a light can be told to do.
type Capability string

const (
	CapColor      Capability = "color"
	CapBrightness Capability = "brightness"
	CapMode       Capability = "mode"
)

// Capabilities lists every known capability in canonical order.
var Capabilities = []Capability{CapColor, CapBrightness, CapMode}

// ParseCapability parses a capability name, ignoring case.
func ParseCapability(s string) (Capability, error) {
	c := Capability(strings.ToLower(s))
	if !slices.Contains(Capabilities, c) {
		return "", fmt.Errorf("unknown capability %q (valid: color, brightness, mode)", s)
	}
	return c, nil
}

// ProviderID identifies a light within a provider.
type ProviderID struct {
	Provider string `json:"provider"`
	ID       string `json:"id"`
}

// String returns the id@provider form.
func (p ProviderID) String() string {
	return p.ID + "@" + p.Provider
}

// ParseProviderID parses the id@provider form.
func ParseProviderID(s string) (ProviderID, error) {
	id, provider, ok := strings.Cut(s, "@")
	if !ok || id == "" || provider == "" {
		return ProviderID{}, fmt.Errorf("invalid light id %q: must be id@provider", s)
	}
	return ProviderID{Provider: provider, ID: id}, nil
}

// CapabilityError reports a capability that is missing or unset on a light.
type CapabilityError struct {
	Light      string
	ID         ProviderID
	Capability Capability
	Err        error
}

func (e *CapabilityError) Error() string {
	if errors.Is(e.Err, ErrUnset) {
		return fmt.Sprintf("light %q (%s): value for %q unset", e.Light, e.ID, e.Capability)
	}
	return fmt.Sprintf("light %q (%s): incapable for %q", e.Light, e.ID, e.Capability)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// state holds the value of one capability. Only the field matching
// capability is meaningful.
type state struct {
	capability Capability
	set        bool
	color      color.Color
	brightness scalar.Norm
	mode       Mode
}

// Light is the last known state of one light. A Light is not safe for
// concurrent mutation; providers hand out clones.
type Light struct {
	id    ProviderID
	name  string
	power bool
	state []state
}

// New returns an unnamed, powered-off light with the given capabilities and
// every value unset. Duplicate capabilities are ignored.
func New(provider, id string, caps ...Capability) *Light {
	l := &Light{id: ProviderID{Provider: provider, ID: id}}
	for _, c := range caps {
		if !l.IsCapable(c) {
			l.state = append(l.state, state{capability: c})
		}
	}
	return l
}

// Named is New with a name.
func Named(provider, id, name string, caps ...Capability) *Light {
	l := New(provider, id, caps...)
	l.name = name
	return l
}

func (l *Light) ID() ProviderID { return l.id }

func (l *Light) Name() string { return l.name }

func (l *Light) SetName(name string) { l.name = name }

func (l *Light) Power() bool { return l.power }

// Turn sets the power state.
func (l *Light) Turn(on bool) { l.power = on }

// Capabilities returns the light's capabilities in declaration order.
func (l *Light) Capabilities() []Capability {
	out := make([]Capability, len(l.state))
	for i, s := range l.state {
		out[i] = s.capability
	}
	return out
}

// IsCapable reports whether the light has all of caps.
func (l *Light) IsCapable(caps ...Capability) bool {
	for _, c := range caps {
		if l.slot(c) == nil {
			return false
		}
	}
	return true
}

func (l *Light) slot(c Capability) *state {
	for i := range l.state {
		if l.state[i].capability == c {
			return &l.state[i]
		}
	}
	return nil
}

func (l *Light) lookup(c Capability) (*state, error) {
	s := l.slot(c)
	if s == nil {
		return nil, l.capErr(c, ErrIncapable)
	}
	if !s.set {
		return nil, l.capErr(c, ErrUnset)
	}
	return s, nil
}

func (l *Light) capErr(c Capability, err error) error {
	return &CapabilityError{Light: l.name, ID: l.id, Capability: c, Err: err}
}

// Color returns the light's color.
func (l *Light) Color() (color.Color, error) {
	s, err := l.lookup(CapColor)
	if err != nil {
		return color.Color{}, err
	}
	return s.color, nil
}

// SetColor replaces the light's color.
func (l *Light) SetColor(c color.Color) error {
	s := l.slot(CapColor)
	if s == nil {
		return l.capErr(CapColor, ErrIncapable)
	}
	s.color, s.set = c, true
	return nil
}

// Brightness returns the light's brightness in [0, 1].
func (l *Light) Brightness() (scalar.Norm, error) {
	s, err := l.lookup(CapBrightness)
	if err != nil {
		return scalar.Norm{}, err
	}
	return s.brightness, nil
}

// SetBrightness replaces the light's brightness.
func (l *Light) SetBrightness(b scalar.Norm) error {
	s := l.slot(CapBrightness)
	if s == nil {
		return l.capErr(CapBrightness, ErrIncapable)
	}
	s.brightness, s.set = b, true
	return nil
}

// Mode returns the light's active mode.
func (l *Light) Mode() (Mode, error) {
	s, err := l.lookup(CapMode)
	if err != nil {
		return Mode{}, err
	}
	return s.mode.Clone(), nil
}

// SetMode replaces the light's active mode.
func (l *Light) SetMode(m Mode) error {
	s := l.slot(CapMode)
	if s == nil {
		return l.capErr(CapMode, ErrIncapable)
	}
	s.mode, s.set = m.Clone(), true
	return nil
}

// Clone returns a deep copy of l.
func (l *Light) Clone() *Light {
	out := *l
	out.state = make([]state, len(l.state))
	for i, s := range l.state {
		s.mode = s.mode.Clone()
		out.state[i] = s
	}
	return &out
}

func (l *Light) String() string {
	if l.name == "" {
		return l.id.String()
	}
	return fmt.Sprintf("%s (%s)", l.name, l.id)
}
