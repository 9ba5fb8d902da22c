package light

import "maps"

// Mode is a provider-specific light program (a scene, an effect) with
// free-form parameters.
type Mode struct {
	Provider   string      `json:"provider"`
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
}

// Parameter is one named mode setting. Value holds JSON-compatible data:
// string, float64, bool, []any, map[string]any or nil.
type Parameter struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// NewMode returns a mode with the given parameters.
func NewMode(provider, name string, params ...Parameter) Mode {
	return Mode{Provider: provider, Name: name, Parameters: params}
}

// ParameterNames returns the parameter names in order.
func (m Mode) ParameterNames() []string {
	names := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		names[i] = p.Name
	}
	return names
}

// Parameter returns the value of the named parameter.
func (m Mode) Parameter(name string) (any, bool) {
	for _, p := range m.Parameters {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// Clone returns a deep copy of m.
func (m Mode) Clone() Mode {
	if m.Parameters == nil {
		return m
	}
	params := make([]Parameter, len(m.Parameters))
	for i, p := range m.Parameters {
		params[i] = Parameter{Name: p.Name, Value: cloneValue(p.Value)}
	}
	m.Parameters = params
	return m
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := maps.Clone(v)
		for k, e := range out {
			out[k] = cloneValue(e)
		}
		return out
	}
	return v
}
