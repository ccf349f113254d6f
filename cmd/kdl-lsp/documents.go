package main

import (
	"context"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/signadot/go-kdl/format"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/parse"
	"github.com/signadot/go-kdl/stream"
	"github.com/signadot/go-kdl/token"
	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

// document is the last parse of an open text document. On a parse
// error doc is nil and err holds the failure.
type document struct {
	uri       string
	content   string
	version   int32
	kdl       format.Version
	doc       *ir.Document
	positions map[*ir.Node]*token.Pos
	err       error
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	d := load(uri, content, version)
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = d
	return d
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func load(uri, content string, version int32) *document {
	positions := make(map[*ir.Node]*token.Pos)
	p := parse.NewParser(strings.NewReader(content))
	b := stream.NewBuilder()
	b.Positions = positions
	err := stream.Copy(b, p)
	var doc *ir.Document
	if err == nil {
		doc, err = b.Document()
	}
	d := &document{
		uri:       uri,
		content:   content,
		version:   version,
		kdl:       p.Version().Resolve(),
		positions: positions,
		err:       err,
	}
	if err == nil {
		d.doc = doc
	}
	return d
}

func (s *Server) publishDiagnostics(ctx context.Context, doc *document) {
	if s.conn == nil {
		return
	}
	err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(doc.uri),
		Diagnostics: validateDocument(doc),
	})
	if err != nil {
		theLog.Warn("publish diagnostics", "uri", doc.uri, "error", err)
	}
}

func validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.err == nil {
		return diagnostics
	}
	var start protocol.Position
	if pos := parse.ErrorPos(doc.err); pos != nil {
		line, col := pos.LineCol()
		start = lspPosition(doc.content, line, col)
	}
	end := start
	end.Character++
	return append(diagnostics, protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: protocol.DiagnosticSeverityError,
		Message:  doc.err.Error(),
		Source:   "kdl",
	})
}

// lspPosition converts a 0-based line and byte column into an LSP
// position, whose column counts UTF-16 code units.
func lspPosition(content string, line, col int) protocol.Position {
	text := lineText(content, line)
	if col > len(text) {
		col = len(text)
	}
	n := len(utf16.Encode([]rune(text[:col])))
	return protocol.Position{Line: uint32(line), Character: uint32(n)}
}

// byteCol is the inverse of lspPosition for a column on line.
func byteCol(content string, line int, char uint32) int {
	text := lineText(content, line)
	units := 0
	for i, r := range text {
		if units >= int(char) {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(text)
}

// lineText returns line number line of content, counting lines the
// way token.PosDoc does: CRLF, CR, LF, NEL, VT, FF, LS and PS each end
// a line.
func lineText(content string, line int) string {
	for range line {
		i, n := nextNewline(content)
		if i < 0 {
			return ""
		}
		content = content[i+n:]
	}
	if i, _ := nextNewline(content); i >= 0 {
		content = content[:i]
	}
	return content
}

// nextNewline returns the byte index and length of the first newline
// in s, or -1.
func nextNewline(s string) (int, int) {
	for i, r := range s {
		switch r {
		case '\r':
			if strings.HasPrefix(s[i+1:], "\n") {
				return i, 2
			}
			return i, 1
		case '\n', '\u000B', '\u000C':
			return i, 1
		case '\u0085', '\u2028', '\u2029':
			return i, utf8.RuneLen(r)
		}
	}
	return -1, 0
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	d := s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, d)
	return nil
}

// DidChange expects full sync: the last change holds the whole text.
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	if s.docs.get(uri) == nil || len(params.ContentChanges) == 0 {
		return nil
	}
	content := params.ContentChanges[len(params.ContentChanges)-1].Text
	d := s.docs.put(uri, content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, d)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}
