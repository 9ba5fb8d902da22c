package lsp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jsvensson/lumen/internal/color"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestColorToLSP(t *testing.T) {
	tests := []struct {
		name  string
		input color.RGB
		want  protocol.Color
	}{
		{
			name:  "pure red",
			input: color.RGB{R: 255},
			want:  protocol.Color{Red: 1.0, Alpha: 1.0},
		},
		{
			name:  "pure green",
			input: color.RGB{G: 255},
			want:  protocol.Color{Green: 1.0, Alpha: 1.0},
		},
		{
			name:  "pure blue",
			input: color.RGB{B: 255},
			want:  protocol.Color{Blue: 1.0, Alpha: 1.0},
		},
		{
			name:  "black",
			input: color.RGB{},
			want:  protocol.Color{Alpha: 1.0},
		},
		{
			name:  "white",
			input: color.RGB{R: 255, G: 255, B: 255},
			want:  protocol.Color{Red: 1.0, Green: 1.0, Blue: 1.0, Alpha: 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := colorToLSP(color.FromRGB(tt.input))
			if got != tt.want {
				t.Errorf("colorToLSP() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDocumentColors(t *testing.T) {
	if got := documentColors(nil); got == nil || len(got) != 0 {
		t.Errorf("documentColors(nil) = %v, want empty slice", got)
	}

	result := Analyze("lights.hcl", hoverLights)
	got := documentColors(result)
	want := []protocol.ColorInformation{
		{
			Range: protocol.Range{Start: protocol.Position{Line: 4, Character: 17}, End: protocol.Position{Line: 4, Character: 26}},
			Color: protocol.Color{Red: 1.0, Alpha: 1.0},
		},
		{
			Range: protocol.Range{Start: protocol.Position{Line: 11, Character: 17}, End: protocol.Position{Line: 11, Character: 31}},
			Color: protocol.Color{Blue: 1.0, Alpha: 1.0},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("documentColors() mismatch (-want +got):\n%s", diff)
	}
}

func TestColorPresentation(t *testing.T) {
	green := protocol.Color{Green: 1.0, Alpha: 1.0}
	literal := protocol.Range{Start: protocol.Position{Line: 4, Character: 17}, End: protocol.Position{Line: 4, Character: 26}}
	call := protocol.Range{Start: protocol.Position{Line: 11, Character: 17}, End: protocol.Position{Line: 11, Character: 31}}

	t.Run("hex literal", func(t *testing.T) {
		got := colorPresentation(hoverLights, &protocol.ColorPresentationParams{Color: green, Range: literal})
		want := []protocol.ColorPresentation{
			{
				Label:    "#00ff00",
				TextEdit: &protocol.TextEdit{Range: literal, NewText: `"#00ff00"`},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("colorPresentation() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("function call", func(t *testing.T) {
		got := colorPresentation(hoverLights, &protocol.ColorPresentationParams{Color: green, Range: call})
		if len(got) != 0 {
			t.Errorf("expected no presentation for a function call, got %+v", got)
		}
	})

	t.Run("rounds channels", func(t *testing.T) {
		c := protocol.Color{Red: 0.5, Green: 0.2, Blue: 1.2, Alpha: 1.0}
		got := colorPresentation(hoverLights, &protocol.ColorPresentationParams{Color: c, Range: literal})
		if len(got) != 1 || got[0].Label != "#8033ff" {
			t.Errorf("colorPresentation() = %+v, want label #8033ff", got)
		}
	})
}
