package main

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/go-kdl/format"
	"go.lsp.dev/protocol"
)

func TestClassify(t *testing.T) {
	infos := classify("(t)node 1 key=\"v\" // c\n", format.V2)
	var got []uint32
	for _, ti := range infos {
		got = append(got, ti.tokenType, ti.char, ti.length)
	}
	want := []uint32{
		stOperator, 0, 1,
		stKeyword, 1, 1,
		stOperator, 2, 1,
		stKeyword, 3, 4,
		stNumber, 8, 1,
		stProperty, 10, 3,
		stOperator, 13, 1,
		stString, 14, 3,
		stComment, 18, 4,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens (-want +got):\n%s", diff)
	}
	if infos[3].modifiers != smDefinition {
		t.Errorf("node name modifiers: %d", infos[3].modifiers)
	}
}

func TestClassifyChildren(t *testing.T) {
	infos := classify("a {\n  b; c\n}", format.V2)
	var names int
	for _, ti := range infos {
		if ti.modifiers == smDefinition {
			names++
		}
	}
	if names != 3 {
		t.Errorf("got %d node names want 3", names)
	}
}

func TestEncodeTokens(t *testing.T) {
	data := encodeTokens([]tokenInfo{
		{line: 0, char: 2, length: 3, tokenType: stKeyword},
		{line: 0, char: 6, length: 1, tokenType: stNumber},
		{line: 2, char: 4, length: 2, tokenType: stString, modifiers: smDefinition},
	})
	want := []uint32{
		0, 2, 3, stKeyword, 0,
		0, 4, 1, stNumber, 0,
		2, 4, 2, stString, smDefinition,
	}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestPositions(t *testing.T) {
	content := "a\nnœud \U0001F600 x\n"
	p := lspPosition(content, 1, len("nœud \U0001F600 "))
	if p.Line != 1 || p.Character != 8 {
		t.Errorf("got %d:%d want 1:8", p.Line, p.Character)
	}
	if c := byteCol(content, 1, 8); c != len("nœud \U0001F600 ") {
		t.Errorf("byteCol: got %d", c)
	}
	if c := byteCol(content, 5, 3); c != 0 {
		t.Errorf("byteCol past end: got %d", c)
	}
}

func TestLineText(t *testing.T) {
	content := "a\u2028b\r\nc\rd\u0085e\n"
	want := []string{"a", "b", "c", "d", "e", ""}
	for i, w := range want {
		if got := lineText(content, i); got != w {
			t.Errorf("line %d: got %q want %q", i, got, w)
		}
	}
}

func TestDiagnosticLine(t *testing.T) {
	doc := load("file:///z.kdl", "a 1\u2028b \"open", 1)
	ds := validateDocument(doc)
	if len(ds) != 1 {
		t.Fatalf("got %d diagnostics", len(ds))
	}
	if p := ds[0].Range.Start; p.Line != 1 || p.Character != 2 {
		t.Errorf("got %d:%d want 1:2", p.Line, p.Character)
	}
}

func TestLoadPositions(t *testing.T) {
	doc := load("file:///p.kdl", "a {\n  (t)b 1\n}\n", 1)
	if doc.doc == nil {
		t.Fatal(doc.err)
	}
	b := doc.doc.Nodes[0].Children[0]
	pos := doc.positions[b]
	if pos == nil {
		t.Fatal("no position recorded for child node")
	}
	if l, c := pos.LineCol(); l != 1 || c != 2 {
		t.Errorf("got %d:%d want 1:2", l, c)
	}
	if got := findNodeAtPosition(doc.doc, doc.positions, 1, 5); got != b {
		t.Errorf("found %v", got)
	}
}

func TestDiagnostics(t *testing.T) {
	doc := load("file:///x.kdl", "a 1\nb \"open\n", 1)
	if doc.doc != nil {
		t.Fatal("expected a parse error")
	}
	ds := validateDocument(doc)
	if len(ds) != 1 {
		t.Fatalf("got %d diagnostics", len(ds))
	}
	if ds[0].Range.Start.Line != 1 {
		t.Errorf("got line %d want 1", ds[0].Range.Start.Line)
	}
	if ds[0].Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity %v", ds[0].Severity)
	}
	if ok := validateDocument(load("file:///y.kdl", "a 1\n", 1)); len(ok) != 0 {
		t.Errorf("valid document: %v", ok)
	}
}

func TestServer(t *testing.T) {
	ctx := context.Background()
	s := &Server{}
	s.setupHandlers(ctx)
	uri := protocol.DocumentURI("file:///a.kdl")
	err := s.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: "server  \"alpha\"   port=80{\nchild\n}\n"},
	})
	if err != nil {
		t.Fatal(err)
	}
	edits, err := s.Formatting(ctx, &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Options:      protocol.FormattingOptions{TabSize: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(edits) != 1 {
		t.Fatalf("got %d edits", len(edits))
	}
	want := "server \"alpha\" port=80 {\n  child\n}\n"
	if edits[0].NewText != want {
		t.Errorf("got %q want %q", edits[0].NewText, want)
	}

	h, err := s.Hover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 1, Character: 0},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if h == nil || !strings.HasPrefix(h.Contents.Value, "**child**") {
		t.Errorf("hover: %+v", h)
	}

	err = s.DidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{Version: 2},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: "x {"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if d := s.docs.get(string(uri)); d.version != 1 {
		t.Errorf("change without a uri replaced the document")
	}
	if err := s.DidClose(ctx, &protocol.DidCloseTextDocumentParams{TextDocument: protocol.TextDocumentIdentifier{URI: uri}}); err != nil {
		t.Fatal(err)
	}
	if s.docs.get(string(uri)) != nil {
		t.Error("document still open")
	}
}
