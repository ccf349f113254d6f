package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/signadot/go-kdl/encode"
	"github.com/signadot/go-kdl/format"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/token"
	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.doc == nil {
		return nil, nil
	}
	line := int(params.Position.Line)
	col := byteCol(doc.content, line, params.Position.Character)

	target := findNodeAtPosition(doc.doc, doc.positions, line, col)
	if target == nil {
		return nil, nil
	}
	text := buildHoverText(target, doc.kdl)
	if text == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: text,
		},
	}, nil
}

// findNodeAtPosition returns the node starting on line whose start
// column is closest to col.
func findNodeAtPosition(doc *ir.Document, positions map[*ir.Node]*token.Pos, line, col int) *ir.Node {
	var best *ir.Node
	bestDist := -1
	_ = doc.Walk(func(n *ir.Node, _ []*ir.Node) error {
		pos := positions[n]
		if pos == nil {
			return nil
		}
		l, c := pos.LineCol()
		if l != line {
			return nil
		}
		if d := abs(c - col); bestDist < 0 || d < bestDist {
			best, bestDist = n, d
		}
		return nil
	})
	return best
}

func buildHoverText(n *ir.Node, v format.Version) string {
	var b strings.Builder
	b.WriteString("**")
	if n.Annotation != nil {
		fmt.Fprintf(&b, "(%s)", token.Ident(*n.Annotation, v))
	}
	b.WriteString(token.Ident(n.Name, v))
	b.WriteString("**\n\n")
	for i, a := range n.Args {
		fmt.Fprintf(&b, "- arg %d: `%s` %s\n", i, valueText(a, v), a.Type)
	}
	for _, p := range n.Props {
		fmt.Fprintf(&b, "- %s: `%s` %s\n", token.Ident(p.Key, v), valueText(p.Value, v), p.Value.Type)
	}
	switch {
	case n.Children == nil:
	case len(n.Children) == 1:
		b.WriteString("\n1 child\n")
	default:
		fmt.Fprintf(&b, "\n%d children\n", len(n.Children))
	}
	return b.String()
}

func valueText(val *ir.Value, v format.Version) string {
	s, err := encode.ValueText(val, v, true)
	if err != nil {
		return val.Text()
	}
	return s
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
