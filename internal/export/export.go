// Package export renders light state into arbitrary text files through Go
// templates, e.g. a CSS file of the current colors or a status-bar snippet.
package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/jsvensson/lumen/internal/color"
	"github.com/jsvensson/lumen/internal/light"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lumen.export")

// Engine loads and executes Go templates against a set of lights.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Names        []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// with the given lights, and writes output files named after the template
// without its .tmpl suffix.
func (e *Engine) Run(lights []*light.Light) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data := buildTemplateData(lights)

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			log.Debugf("skipping template %s", baseName)
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	if len(e.Names) == 0 {
		return true
	}
	return slices.Contains(e.Names, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	log.Infof("wrote %s", outPath)
	return nil
}

// templateData is the data passed to templates.
type templateData struct {
	Lights  []*light.Light
	FuncMap template.FuncMap
}

func buildTemplateData(lights []*light.Light) templateData {
	byName := make(map[string]*light.Light, len(lights))
	for _, l := range lights {
		if l.Name() != "" {
			byName[l.Name()] = l
		}
	}

	return templateData{
		Lights: lights,
		FuncMap: template.FuncMap{
			"hex": func(c color.Color) string {
				return c.RGB().Hex()
			},
			"hexBare": func(c color.Color) string {
				return c.RGB().HexBare()
			},
			"css": func(c color.Color) string {
				return c.RGB().CSS()
			},
			"hsv": func(c color.Color) color.HSV {
				return c.HSV()
			},
			"kelvin": func(c color.Color) float64 {
				return math.Round(c.Temperature().Float64())
			},
			"xyz": func(c color.Color) string {
				return c.String()
			},
			"light": func(name string) (*light.Light, error) {
				l, ok := byName[name]
				if !ok {
					return nil, fmt.Errorf("no light named %q", name)
				}
				return l, nil
			},
			"capable": func(l *light.Light, capability string) bool {
				c, err := light.ParseCapability(capability)
				return err == nil && l.IsCapable(c)
			},
		},
	}
}
