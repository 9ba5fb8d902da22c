package lsp

import (
	"math"
	"strings"

	"github.com/jsvensson/lumen/internal/color"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts a color to a protocol.Color through its sRGB encoding.
func colorToLSP(c color.Color) protocol.Color {
	rgb := c.RGB()
	return protocol.Color{
		Red:   float32(rgb.R) / 255.0,
		Green: float32(rgb.G) / 255.0,
		Blue:  float32(rgb.B) / 255.0,
		Alpha: 1.0,
	}
}

func channel(v float32) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, float64(v))) * 255))
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// colorPresentation offers a hex replacement for a picked color. Only quoted
// hex literals are replaced; function calls and variables are left alone.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	rgb := color.RGB{
		R: channel(params.Color.Red),
		G: channel(params.Color.Green),
		B: channel(params.Color.Blue),
	}
	hexStr := rgb.Hex()

	text := extractText(content, params.Range)
	if !strings.HasPrefix(text, "\"#") {
		return []protocol.ColorPresentation{}
	}

	return []protocol.ColorPresentation{
		{
			Label: hexStr,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: "\"" + hexStr + "\"",
			},
		},
	}
}

// textDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	return documentColors(s.docs.Result(string(params.TextDocument.URI))), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
