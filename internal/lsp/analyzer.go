package lsp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/lumen/internal/color"
	"github.com/jsvensson/lumen/internal/config"
	"github.com/jsvensson/lumen/internal/light"
	"github.com/jsvensson/lumen/internal/registry"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

const diagSource = "lumen"

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "registry"},
		{Type: "light", LabelNames: []string{"name"}},
	},
}

var registrySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "path", Required: true},
	},
}

var lightSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "provider", Required: true},
		{Name: "id", Required: true},
		{Name: "capabilities"},
		{Name: "power"},
		{Name: "color"},
		{Name: "brightness"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "mode", LabelNames: []string{"name"}},
	},
}

// colorFuncs are the functions whose result is a color.
var colorFuncs = map[string]bool{
	"rgb": true, "hex": true, "hsv": true, "xyz": true,
	"kelvin": true, "brighten": true, "darken": true,
}

// AnalysisResult holds all information produced by analyzing a light file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Colors      []ColorLocation
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Range   protocol.Range
	Color   color.Color
	Literal bool // true for a quoted hex string, false for a function call or variable
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(pos.Line - 1),
		Character: uint32(pos.Column - 1),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze parses a light file from memory and produces diagnostics and color
// locations. It collects every problem rather than stopping at the first.
func Analyze(filename, content string) *AnalysisResult {
	result := &AnalysisResult{Diagnostics: []protocol.Diagnostic{}}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		result.addDiags(diags)
		// Cannot proceed with semantic analysis if syntax is broken
		return result
	}

	body, diags := file.Body.Content(fileSchema)
	result.addDiags(diags)

	a := &analyzer{
		result: result,
		ctx:    config.EvalContext(),
		names:  make(map[string]hcl.Range),
		ids:    make(map[light.ProviderID]string),
	}

	var registrySeen bool
	for _, block := range body.Blocks {
		switch block.Type {
		case "registry":
			if registrySeen {
				result.addError(block.DefRange, "duplicate registry block")
			}
			registrySeen = true
			_, diags := block.Body.Content(registrySchema)
			result.addDiags(diags)
		case "light":
			a.light(block)
		}
	}

	log.Debugf("analyzed %s: %d diagnostics, %d colors", filename, len(result.Diagnostics), len(result.Colors))
	return result
}

type analyzer struct {
	result *AnalysisResult
	ctx    *hcl.EvalContext
	names  map[string]hcl.Range
	ids    map[light.ProviderID]string
}

func (a *analyzer) light(block *hcl.Block) {
	r := a.result
	name, nameRange := block.Labels[0], block.LabelRanges[0]
	if err := registry.ValidateName(name); err != nil {
		r.addError(nameRange, err.Error())
	}
	if prev, dup := a.names[name]; dup {
		r.addError(nameRange, fmt.Sprintf("light %q already declared on line %d", name, prev.Start.Line))
	} else {
		a.names[name] = nameRange
	}

	body, diags := block.Body.Content(lightSchema)
	r.addDiags(diags)

	provider := a.evalString(body.Attributes["provider"])
	id := a.evalString(body.Attributes["id"])
	if provider != "" && id != "" {
		pid := light.ProviderID{Provider: provider, ID: id}
		if other, dup := a.ids[pid]; dup {
			r.addError(block.DefRange, fmt.Sprintf("%s already used by light %q", pid, other))
		} else {
			a.ids[pid] = name
		}
	}

	caps := a.capabilities(body.Attributes["capabilities"])
	requires := func(rng hcl.Range, c light.Capability) {
		if caps != nil && !caps[c] {
			r.addError(rng, fmt.Sprintf("light %q has no %q capability", name, c))
		}
	}

	if attr, ok := body.Attributes["power"]; ok {
		val, diags := attr.Expr.Value(a.ctx)
		r.addDiags(diags)
		if !diags.HasErrors() && !val.IsNull() && val.Type() != cty.Bool {
			r.addError(attr.Expr.Range(), "power must be true or false")
		}
	}

	if attr, ok := body.Attributes["color"]; ok {
		requires(attr.NameRange, light.CapColor)
		a.color(attr.Expr)
	}

	if attr, ok := body.Attributes["brightness"]; ok {
		requires(attr.NameRange, light.CapBrightness)
		a.brightness(attr)
	}

	for i, mode := range body.Blocks {
		if i > 0 {
			r.addError(mode.DefRange, "a light has at most one mode")
		}
		requires(mode.DefRange, light.CapMode)
		a.mode(mode)
	}
}

// capabilities returns the declared capabilities, or nil when they could
// not be determined.
func (a *analyzer) capabilities(attr *hcl.Attribute) map[light.Capability]bool {
	caps := make(map[light.Capability]bool)
	if attr == nil {
		return caps
	}

	val, diags := attr.Expr.Value(a.ctx)
	a.result.addDiags(diags)
	if diags.HasErrors() || val.IsNull() || !val.IsWhollyKnown() || !val.CanIterateElements() {
		if !diags.HasErrors() {
			a.result.addError(attr.Expr.Range(), "capabilities must be a list of strings")
		}
		return nil
	}

	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if v.Type() != cty.String {
			a.result.addError(attr.Expr.Range(), "capabilities must be a list of strings")
			return nil
		}
		c, err := light.ParseCapability(v.AsString())
		if err != nil {
			a.result.addError(attr.Expr.Range(), err.Error())
			continue
		}
		caps[c] = true
	}
	return caps
}

func (a *analyzer) evalString(attr *hcl.Attribute) string {
	if attr == nil {
		return ""
	}
	val, diags := attr.Expr.Value(a.ctx)
	a.result.addDiags(diags)
	if diags.HasErrors() || val.IsNull() || val.Type() != cty.String {
		if !diags.HasErrors() {
			a.result.addError(attr.Expr.Range(), fmt.Sprintf("%s must be a string", attr.Name))
		}
		return ""
	}
	if val.AsString() == "" {
		a.result.addError(attr.Expr.Range(), fmt.Sprintf("%s must not be empty", attr.Name))
	}
	return val.AsString()
}

func (a *analyzer) color(expr hcl.Expression) {
	val, diags := expr.Value(a.ctx)
	a.result.addDiags(diags)
	if diags.HasErrors() || val.IsNull() {
		return
	}
	c, err := config.DecodeColor(val)
	if err != nil {
		a.result.addError(expr.Range(), "invalid color: "+err.Error())
		return
	}
	a.result.addColor(expr, c)
}

func (a *analyzer) brightness(attr *hcl.Attribute) {
	val, diags := attr.Expr.Value(a.ctx)
	a.result.addDiags(diags)
	if diags.HasErrors() || val.IsNull() {
		return
	}
	if val.Type() != cty.Number {
		a.result.addError(attr.Expr.Range(), "brightness must be a number")
		return
	}
	if b, _ := val.AsBigFloat().Float64(); b < 0 || b > 1 {
		a.result.addWarning(attr.Expr.Range(), fmt.Sprintf("brightness %g is clamped to [0, 1]", b))
	}
}

func (a *analyzer) mode(block *hcl.Block) {
	attrs, diags := block.Body.JustAttributes()
	a.result.addDiags(diags)

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	for _, attr := range ordered {
		_, diags := attr.Expr.Value(a.ctx)
		a.result.addDiags(diags)
		if !diags.HasErrors() {
			a.paramColors(attr.Expr)
		}
	}
}

// paramColors records colors nested in a mode parameter: "#rrggbb" strings
// and color function calls, also inside lists.
func (a *analyzer) paramColors(expr hcl.Expression) {
	switch e := expr.(type) {
	case *hclsyntax.TupleConsExpr:
		for _, el := range e.Exprs {
			a.paramColors(el)
		}
	case *hclsyntax.TemplateExpr:
		if !e.IsStringLiteral() {
			return
		}
		val, diags := e.Value(nil)
		if diags.HasErrors() || !strings.HasPrefix(val.AsString(), "#") {
			return
		}
		if rgb, err := color.ParseHex(val.AsString()); err == nil {
			a.result.addColor(e, color.FromRGB(rgb))
		}
	case *hclsyntax.FunctionCallExpr:
		if !colorFuncs[e.Name] {
			return
		}
		val, diags := e.Value(a.ctx)
		if diags.HasErrors() {
			return
		}
		if c, err := config.DecodeColor(val); err == nil {
			a.result.addColor(e, c)
		}
	}
}

func isStringLiteral(expr hcl.Expression) bool {
	t, ok := expr.(*hclsyntax.TemplateExpr)
	return ok && t.IsStringLiteral()
}

func (r *AnalysisResult) addColor(expr hcl.Expression, c color.Color) {
	r.Colors = append(r.Colors, ColorLocation{
		Range:   hclRangeToLSP(expr.Range()),
		Color:   c,
		Literal: isStringLiteral(expr),
	})
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

func (r *AnalysisResult) addDiags(diags hcl.Diagnostics) {
	for _, d := range diags {
		r.Diagnostics = append(r.Diagnostics, hclDiagToLSP(d))
	}
}

// addError adds an error-level diagnostic at the given range.
func (r *AnalysisResult) addError(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagError,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

// addWarning adds a warning-level diagnostic at the given range.
func (r *AnalysisResult) addWarning(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagWarning,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}
