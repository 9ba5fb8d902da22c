// Package config loads the HCL light file.
//
// A light file names the local registry and declares the lights each
// provider serves, with an optional initial state:
//
//	registry {
//	  path = ".lumen"
//	}
//
//	light "desk" {
//	  provider     = "home"
//	  id           = "1"
//	  capabilities = ["color", "brightness"]
//	  color        = hsv(0.1, 0.5, 1)
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/lumen/internal/color"
	"github.com/jsvensson/lumen/internal/light"
	"github.com/jsvensson/lumen/internal/registry"
	"github.com/jsvensson/lumen/internal/scalar"
	"github.com/tliron/commonlog"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

var log = commonlog.GetLogger("lumen.config")

// DefaultRegistryPath is used when the light file has no registry block.
const DefaultRegistryPath = ".lumen"

// Config is a decoded light file.
type Config struct {
	// RegistryPath is the registry directory. Relative paths are resolved
	// against the light file's directory by Load.
	RegistryPath string
	Lights       []*light.Light
}

// Providers returns the provider names used by the lights, sorted.
func (c *Config) Providers() []string {
	seen := make(map[string]bool)
	var names []string
	for _, l := range c.Lights {
		if p := l.ID().Provider; !seen[p] {
			seen[p] = true
			names = append(names, p)
		}
	}
	sort.Strings(names)
	return names
}

// LightsFor returns the lights served by provider, in file order.
func (c *Config) LightsFor(provider string) []*light.Light {
	var out []*light.Light
	for _, l := range c.Lights {
		if l.ID().Provider == provider {
			out = append(out, l)
		}
	}
	return out
}

type fileConfig struct {
	Registry *registryBlock `hcl:"registry,block"`
	Lights   []lightBlock   `hcl:"light,block"`
}

type registryBlock struct {
	Path string `hcl:"path"`
}

type lightBlock struct {
	Name         string         `hcl:"name,label"`
	Provider     string         `hcl:"provider"`
	ID           string         `hcl:"id"`
	Capabilities []string       `hcl:"capabilities,optional"`
	Power        *bool          `hcl:"power,optional"`
	Color        hcl.Expression `hcl:"color,optional"`
	Brightness   *float64       `hcl:"brightness,optional"`
	Mode         *modeBlock     `hcl:"mode,block"`
}

type modeBlock struct {
	Name   string   `hcl:"name,label"`
	Params hcl.Body `hcl:",remain"`
}

// Load reads and decodes the light file at path.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading light file: %w", err)
	}
	cfg, err := Parse(src, path)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(cfg.RegistryPath) {
		cfg.RegistryPath = filepath.Join(filepath.Dir(path), cfg.RegistryPath)
	}
	return cfg, nil
}

// Parse decodes light file source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Config, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	ctx := EvalContext()
	var raw fileConfig
	if diags := gohcl.DecodeBody(file.Body, ctx, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding light file: %s", diags.Error())
	}

	cfg := &Config{RegistryPath: DefaultRegistryPath}
	if raw.Registry != nil && raw.Registry.Path != "" {
		cfg.RegistryPath = raw.Registry.Path
	}

	names := make(map[string]bool, len(raw.Lights))
	ids := make(map[light.ProviderID]string, len(raw.Lights))
	for _, b := range raw.Lights {
		if err := registry.ValidateName(b.Name); err != nil {
			return nil, fmt.Errorf("light %q: %w", b.Name, err)
		}
		if names[b.Name] {
			return nil, fmt.Errorf("light %q declared twice", b.Name)
		}
		names[b.Name] = true

		l, err := b.build(ctx)
		if err != nil {
			return nil, fmt.Errorf("light %q: %w", b.Name, err)
		}
		if other, dup := ids[l.ID()]; dup {
			return nil, fmt.Errorf("light %q: %s already used by light %q", b.Name, l.ID(), other)
		}
		ids[l.ID()] = b.Name

		log.Debugf("declared %s", l)
		cfg.Lights = append(cfg.Lights, l)
	}
	return cfg, nil
}

func (b lightBlock) build(ctx *hcl.EvalContext) (*light.Light, error) {
	if b.Provider == "" || b.ID == "" {
		return nil, fmt.Errorf("provider and id must not be empty")
	}

	caps := make([]light.Capability, 0, len(b.Capabilities))
	for _, s := range b.Capabilities {
		c, err := light.ParseCapability(s)
		if err != nil {
			return nil, err
		}
		caps = append(caps, c)
	}
	l := light.Named(b.Provider, b.ID, b.Name, caps...)

	if b.Power != nil {
		l.Turn(*b.Power)
	}

	if b.Color != nil {
		val, diags := b.Color.Value(ctx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating color: %s", diags.Error())
		}
		if !val.IsNull() {
			c, err := DecodeColor(val)
			if err != nil {
				return nil, fmt.Errorf("color: %w", err)
			}
			if err := l.SetColor(c); err != nil {
				return nil, err
			}
		}
	}

	if b.Brightness != nil {
		if *b.Brightness < 0 || *b.Brightness > 1 {
			log.Warningf("light %q: brightness %g clamped to [0, 1]", b.Name, *b.Brightness)
		}
		if err := l.SetBrightness(scalar.NewNorm(*b.Brightness)); err != nil {
			return nil, err
		}
	}

	if b.Mode != nil {
		m, err := b.Mode.build(b.Provider, ctx)
		if err != nil {
			return nil, fmt.Errorf("mode %q: %w", b.Mode.Name, err)
		}
		if err := l.SetMode(m); err != nil {
			return nil, err
		}
	}

	return l, nil
}

func (b *modeBlock) build(provider string, ctx *hcl.EvalContext) (light.Mode, error) {
	attrs, diags := b.Params.JustAttributes()
	if diags.HasErrors() {
		return light.Mode{}, fmt.Errorf("parsing parameters: %s", diags.Error())
	}

	// Keep parameters in source order.
	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	params := make([]light.Parameter, 0, len(ordered))
	for _, attr := range ordered {
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			return light.Mode{}, fmt.Errorf("evaluating %s: %s", attr.Name, diags.Error())
		}
		data, err := ctyjson.SimpleJSONValue{Value: val}.MarshalJSON()
		if err != nil {
			return light.Mode{}, fmt.Errorf("%s: %w", attr.Name, err)
		}
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return light.Mode{}, fmt.Errorf("%s: %w", attr.Name, err)
		}
		params = append(params, light.Parameter{Name: attr.Name, Value: v})
	}
	return light.NewMode(provider, b.Name, params...), nil
}

// ParseColor evaluates a single color expression such as "#eb6f92",
// "hsv(0.5, 1, 1)" or "brighten(rgb(10, 20, 30), 0.2)".
func ParseColor(expr string) (color.Color, error) {
	// A bare hex color would otherwise read as an HCL comment.
	if rgb, err := color.ParseHex(expr); err == nil {
		return color.FromRGB(rgb), nil
	}

	e, diags := hclsyntax.ParseExpression([]byte(expr), "<color>", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return color.Color{}, fmt.Errorf("parsing color %q: %s", expr, diags.Error())
	}
	val, diags := e.Value(EvalContext())
	if diags.HasErrors() {
		return color.Color{}, fmt.Errorf("evaluating color %q: %s", expr, diags.Error())
	}
	c, err := DecodeColor(val)
	if err != nil {
		return color.Color{}, fmt.Errorf("color %q: %w", expr, err)
	}
	return c, nil
}
