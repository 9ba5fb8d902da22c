package lsp

import (
	"strings"

	"github.com/jsvensson/lumen/internal/format"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// formatEdits returns a single edit replacing the whole document with its
// formatted form, or no edits when content is already formatted. Content
// that does not parse is left alone.
func formatEdits(content string) []protocol.TextEdit {
	formatted, err := format.Format([]byte(content))
	if err != nil {
		log.Debugf("not formatting: %s", err)
		return []protocol.TextEdit{}
	}
	if string(formatted) == content {
		return []protocol.TextEdit{}
	}

	lines := strings.Split(content, "\n")
	last := lines[len(lines)-1]
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End: protocol.Position{
					Line:      uint32(len(lines) - 1),
					Character: uint32(len(last)),
				},
			},
			NewText: string(formatted),
		},
	}
}

// textDocumentFormatting handles textDocument/formatting requests.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return formatEdits(content), nil
}
