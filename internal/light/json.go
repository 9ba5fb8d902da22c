package light

import (
	"encoding/json"
	"fmt"

	"github.com/jsvensson/lumen/internal/color"
	"github.com/jsvensson/lumen/internal/scalar"
)

// lightJSON is the persisted snapshot form of a Light.
type lightJSON struct {
	Provider ProviderID  `json:"provider"`
	Name     string      `json:"name"`
	Power    bool        `json:"power"`
	State    []stateJSON `json:"state"`
}

// stateJSON carries one capability. Value is null when unset.
type stateJSON struct {
	Type  Capability      `json:"type"`
	Value json.RawMessage `json:"value"`
}

var null = json.RawMessage("null")

// MarshalJSON encodes the light snapshot. The color travels in its own JSON
// form and is not inspected here.
func (l *Light) MarshalJSON() ([]byte, error) {
	out := lightJSON{
		Provider: l.id,
		Name:     l.name,
		Power:    l.power,
		State:    make([]stateJSON, 0, len(l.state)),
	}

	for _, s := range l.state {
		entry := stateJSON{Type: s.capability, Value: null}
		if s.set {
			var v any
			switch s.capability {
			case CapColor:
				v = s.color
			case CapBrightness:
				v = s.brightness
			case CapMode:
				v = s.mode
			}
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("encoding %s of %s: %w", s.capability, l.id, err)
			}
			entry.Value = raw
		}
		out.State = append(out.State, entry)
	}

	return json.Marshal(out)
}

// UnmarshalJSON decodes a light snapshot. Unknown capability types are an
// error; out-of-range numbers are clamped by their scalar types.
func (l *Light) UnmarshalJSON(data []byte) error {
	var in lightJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decoding light: %w", err)
	}

	decoded := Light{id: in.Provider, name: in.Name, power: in.Power}
	for _, entry := range in.State {
		if _, err := ParseCapability(string(entry.Type)); err != nil {
			return fmt.Errorf("decoding light %s: %w", in.Provider, err)
		}
		if decoded.IsCapable(entry.Type) {
			return fmt.Errorf("decoding light %s: duplicate state %q", in.Provider, entry.Type)
		}

		s := state{capability: entry.Type}
		if len(entry.Value) > 0 && string(entry.Value) != "null" {
			var err error
			switch entry.Type {
			case CapColor:
				var c color.Color
				err = json.Unmarshal(entry.Value, &c)
				s.color = c
			case CapBrightness:
				var b scalar.Norm
				err = json.Unmarshal(entry.Value, &b)
				s.brightness = b
			case CapMode:
				var m Mode
				err = json.Unmarshal(entry.Value, &m)
				s.mode = m
			}
			if err != nil {
				return fmt.Errorf("decoding %s of %s: %w", entry.Type, in.Provider, err)
			}
			s.set = true
		}
		decoded.state = append(decoded.state, s)
	}

	*l = decoded
	return nil
}
