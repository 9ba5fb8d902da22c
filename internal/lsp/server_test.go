package lsp

import (
	"testing"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type notification struct {
	method string
	params protocol.PublishDiagnosticsParams
}

func recordingContext(t *testing.T, got *[]notification) *glsp.Context {
	t.Helper()
	return &glsp.Context{
		Notify: func(method string, params any) {
			p, ok := params.(protocol.PublishDiagnosticsParams)
			if !ok {
				t.Errorf("notification params = %T, want PublishDiagnosticsParams", params)
			}
			*got = append(*got, notification{method: method, params: p})
		},
	}
}

func TestServer_Initialize(t *testing.T) {
	s := NewServer("1.2.3")

	res, err := s.initialize(nil, &protocol.InitializeParams{})
	if err != nil {
		t.Fatalf("initialize() error: %v", err)
	}
	result, ok := res.(protocol.InitializeResult)
	if !ok {
		t.Fatalf("initialize() = %T, want InitializeResult", res)
	}

	caps := result.Capabilities
	if caps.ColorProvider == nil {
		t.Error("server should advertise document colors")
	}
	if caps.HoverProvider == nil {
		t.Error("server should advertise hover")
	}
	if caps.DocumentFormattingProvider == nil {
		t.Error("server should advertise formatting")
	}
	if result.ServerInfo == nil || result.ServerInfo.Name != "lumen-lsp" || *result.ServerInfo.Version != "1.2.3" {
		t.Errorf("ServerInfo = %+v", result.ServerInfo)
	}
}

func TestServer_DocumentLifecycle(t *testing.T) {
	s := NewServer("dev")
	var notes []notification
	ctx := recordingContext(t, &notes)
	doc := protocol.TextDocumentIdentifier{URI: docURI}

	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: docURI, Text: hoverLights},
	})
	if err != nil {
		t.Fatalf("didOpen error: %v", err)
	}
	if len(notes) != 1 || notes[0].method != string(protocol.ServerTextDocumentPublishDiagnostics) {
		t.Fatalf("after open: notifications = %+v", notes)
	}
	if len(notes[0].params.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %+v", notes[0].params.Diagnostics)
	}

	colors, err := s.textDocumentColor(ctx, &protocol.DocumentColorParams{TextDocument: doc})
	if err != nil || len(colors) != 2 {
		t.Errorf("textDocumentColor() = %d colors, %v; want 2", len(colors), err)
	}

	err = s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: doc,
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "light \"a\" {\n"}},
	})
	if err != nil {
		t.Fatalf("didChange error: %v", err)
	}
	if len(notes) != 2 || len(notes[1].params.Diagnostics) == 0 {
		t.Fatalf("after change: notifications = %+v", notes)
	}

	edits, err := s.textDocumentFormatting(ctx, &protocol.DocumentFormattingParams{TextDocument: doc})
	if err != nil || len(edits) != 0 {
		t.Errorf("formatting broken source = %+v, %v; want no edits", edits, err)
	}

	if err := s.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{TextDocument: doc}); err != nil {
		t.Fatalf("didClose error: %v", err)
	}
	if len(notes) != 3 || notes[2].params.Diagnostics == nil || len(notes[2].params.Diagnostics) != 0 {
		t.Errorf("after close: notifications = %+v", notes)
	}
	if got := s.docs.Result(docURI); got != nil {
		t.Errorf("Result() after close = %+v, want nil", got)
	}
}
