package main

import (
	"context"
	"strings"

	"github.com/signadot/go-kdl/encode"
	"go.lsp.dev/protocol"
)

// Formatting rewrites the whole document in canonical form, keeping
// the KDL version it was written in.
func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.doc == nil {
		return nil, nil
	}
	formatted, err := formatDocument(doc, int(params.Options.TabSize))
	if err != nil {
		theLog.Warn("format", "uri", doc.uri, "error", err)
		return nil, nil
	}
	if formatted == doc.content {
		return []protocol.TextEdit{}, nil
	}

	lines := strings.Count(doc.content, "\n")
	if len(doc.content) > 0 && doc.content[len(doc.content)-1] != '\n' {
		lines++
	}
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: uint32(lines), Character: 0},
			},
			NewText: formatted,
		},
	}, nil
}

func formatDocument(doc *document, tabSize int) (string, error) {
	opts := []encode.EncodeOption{encode.EncodeVersion(doc.kdl)}
	if tabSize > 0 {
		opts = append(opts, encode.Indent(tabSize))
	}
	var b strings.Builder
	if err := encode.Encode(doc.doc, &b, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}
