package encode

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/go-kdl/format"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/stream"
	"github.com/signadot/go-kdl/token"
)

// SExpr writes doc as an s-expression, one node per line:
//
//	(document
//	  (node "a" (type "t") (argument (integer 1)) (property "k" (string "v"))
//	    (children
//	      (node "b"))))
func SExpr(doc *ir.Document, w io.Writer) error {
	sw := &sexprWriter{w: bufio.NewWriter(stream.NewWriter(w))}
	sw.str("(document")
	if err := stream.WriteDocument(sw, doc); err != nil {
		return err
	}
	sw.str(")\n")
	if sw.err != nil {
		return sw.err
	}
	return sw.w.Flush()
}

type sexprWriter struct {
	w     *bufio.Writer
	depth int
	err   error
}

func (s *sexprWriter) str(v string) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.WriteString(v)
}

func (s *sexprWriter) line() {
	s.str("\n" + strings.Repeat("  ", s.depth+1))
}

func (s *sexprWriter) WriteEvent(ev *stream.Event) error {
	switch ev.Type {
	case stream.EventBeginNode:
		s.line()
		s.str("(node " + token.QuoteString(ev.Name, format.V2))
		if ev.Annotation != nil {
			s.str(" " + sexprType(*ev.Annotation))
		}
	case stream.EventArgument:
		s.str(" (argument " + sexprValue(ev.Value) + ")")
	case stream.EventProperty:
		s.str(fmt.Sprintf(" (property %s %s)", token.QuoteString(ev.Name, format.V2), sexprValue(ev.Value)))
	case stream.EventBeginChildren:
		s.depth++
		s.line()
		s.str("(children")
		s.depth++
	case stream.EventEndChildren:
		s.depth -= 2
		s.str(")")
	case stream.EventEndNode:
		s.str(")")
	}
	return s.err
}

func sexprType(a string) string {
	return "(type " + token.QuoteString(a, format.V2) + ")"
}

func sexprValue(v *ir.Value) string {
	var b strings.Builder
	if v.Annotation != nil {
		b.WriteString(sexprType(*v.Annotation) + " ")
	}
	b.WriteString("(" + v.Type.String())
	switch v.Type {
	case ir.NullType:
	case ir.StringType:
		b.WriteString(" " + token.QuoteString(v.String, format.V2))
	default:
		text, _ := ValueText(v, format.V2, false)
		b.WriteString(" " + text)
	}
	b.WriteString(")")
	return b.String()
}
