package parse

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/signadot/go-kdl/debug"
	"github.com/signadot/go-kdl/format"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/stream"
	"github.com/signadot/go-kdl/token"
)

// frame is one level of the parse stack: either the entries of a node
// or a list of nodes (the document or a children block).
type frame struct {
	node    bool
	discard bool

	// list frames: a slashdashed children block
	quiet bool

	// node frames
	sawBlock    bool
	sawChildren bool
}

// machine parses a single KDL version into events. Nesting lives on
// an explicit stack.
type machine struct {
	lex   *token.Lexer
	v     format.Version
	opts  *parseOpts
	la    []*token.Token
	stack []frame
	depth int
	queue []*stream.Event
	done  bool
	err   error
}

func newMachine(r io.Reader, v format.Version, opts *parseOpts) *machine {
	return &machine{
		lex:   token.NewLexer(r, token.LexVersion(v)),
		v:     v,
		opts:  opts,
		stack: []frame{{}},
	}
}

func (m *machine) ReadEvent() (*stream.Event, error) {
	for len(m.queue) == 0 {
		if m.err != nil {
			return nil, m.err
		}
		if m.done {
			return nil, io.EOF
		}
		if err := m.step(); err != nil {
			m.err = err
		}
	}
	ev := m.queue[0]
	m.queue = m.queue[1:]
	return ev, nil
}

func (m *machine) peek(i int) (*token.Token, error) {
	for len(m.la) <= i {
		tok, err := m.lex.Next()
		if err != nil {
			return nil, err
		}
		if debug.Lex() {
			debug.Logf("lex v%s %s %q\n", m.v, tok.Type, tok.String())
		}
		m.la = append(m.la, tok)
	}
	return m.la[i], nil
}

func (m *machine) next() (*token.Token, error) {
	tok, err := m.peek(0)
	if err != nil {
		return nil, err
	}
	m.la = m.la[1:]
	return tok, nil
}

func (m *machine) skipNewlines() (*token.Token, error) {
	for {
		tok, err := m.peek(0)
		if err != nil || tok.Type != token.TNewline {
			return tok, err
		}
		m.la = m.la[1:]
	}
}

func (m *machine) emit(discard bool, ev *stream.Event) {
	if !discard {
		m.queue = append(m.queue, ev)
	}
}

func (m *machine) push(f frame) {
	m.stack = append(m.stack, f)
}

func (m *machine) pop() frame {
	f := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return f
}

func (m *machine) listContext() string {
	if len(m.stack) == 1 {
		return "document"
	}
	return "children"
}

func (m *machine) step() error {
	top := &m.stack[len(m.stack)-1]
	if top.node {
		return m.nodeStep(top)
	}
	return m.listStep(top)
}

func (m *machine) listStep(top *frame) error {
	tok, err := m.skipNewlines()
	if err != nil {
		return err
	}
	switch tok.Type {
	case token.TEOF:
		if len(m.stack) > 1 {
			return syntaxErr(tok, "children", "unterminated children block, expected '}'")
		}
		m.done = true
		return nil
	case token.TRCurl:
		if len(m.stack) == 1 {
			return syntaxErr(tok, "document", "unexpected '}'")
		}
		m.la = m.la[1:]
		list := m.pop()
		parent := &m.stack[len(m.stack)-1]
		parent.sawBlock = true
		if !list.quiet {
			parent.sawChildren = true
		}
		m.emit(list.discard, &stream.Event{Type: stream.EventEndChildren, Pos: tok.Pos})
		return nil
	case token.TSemi:
		return syntaxErr(tok, m.listContext(), "unexpected ';'")
	case token.TSlashDash:
		m.la = m.la[1:]
		if m.v == format.V2 {
			if _, err := m.skipNewlines(); err != nil {
				return err
			}
		}
		return m.beginNode(true)
	}
	return m.beginNode(top.discard)
}

func (m *machine) beginNode(discard bool) error {
	first, err := m.peek(0)
	if err != nil {
		return err
	}
	ann, err := m.annotation("node")
	if err != nil {
		return err
	}
	tok, err := m.next()
	if err != nil {
		return err
	}
	if !tok.Type.IsString() {
		return syntaxErr(tok, "node", "expected a node name, got %s", describe(tok))
	}
	if ann != nil && m.v == format.V1 && tok.Space {
		return syntaxErr(tok, "node", "space after type annotation")
	}
	if m.opts.maxDepth > 0 && m.depth >= m.opts.maxDepth {
		return &ParseError{
			Pos:     first.Pos,
			Context: "node",
			Err:     fmt.Errorf("%w (%d)", ErrDepth, m.opts.maxDepth),
		}
	}
	m.depth++
	m.push(frame{node: true, discard: discard})
	m.emit(discard, &stream.Event{
		Type:       stream.EventBeginNode,
		Annotation: ann,
		Name:       tok.String(),
		Pos:        first.Pos,
	})
	return nil
}

func (m *machine) endNode(tok *token.Token) error {
	f := m.pop()
	m.depth--
	m.emit(f.discard, &stream.Event{Type: stream.EventEndNode, Pos: tok.Pos})
	return nil
}

func (m *machine) nodeStep(top *frame) error {
	tok, err := m.peek(0)
	if err != nil {
		return err
	}
	switch tok.Type {
	case token.TNewline, token.TSemi:
		m.la = m.la[1:]
		return m.endNode(tok)
	case token.TEOF, token.TRCurl:
		return m.endNode(tok)
	case token.TLCurl:
		if top.sawChildren {
			return syntaxErr(tok, "node", "a node has at most one children block")
		}
		m.la = m.la[1:]
		m.emit(top.discard, &stream.Event{Type: stream.EventBeginChildren, Pos: tok.Pos})
		m.push(frame{discard: top.discard})
		return nil
	case token.TSlashDash:
		if !tok.Space {
			return syntaxErr(tok, "node", "expected space before '/-'")
		}
		m.la = m.la[1:]
		if m.v == format.V2 {
			if _, err := m.skipNewlines(); err != nil {
				return err
			}
		}
		nt, err := m.peek(0)
		if err != nil {
			return err
		}
		if nt.Type == token.TLCurl {
			m.la = m.la[1:]
			m.push(frame{discard: true, quiet: true})
			return nil
		}
		if top.sawBlock {
			return syntaxErr(nt, "node", "only slashdashed children blocks may follow a children block")
		}
		return m.entry(true)
	}
	if top.sawBlock {
		return syntaxErr(tok, "node", "expected end of node after children block, got %s", describe(tok))
	}
	if !tok.Space {
		return syntaxErr(tok, "node", "expected space before %s", describe(tok))
	}
	return m.entry(top.discard)
}

// entry parses an argument or a property.
func (m *machine) entry(discard bool) error {
	first, err := m.peek(0)
	if err != nil {
		return err
	}
	ann, err := m.annotation("argument")
	if err != nil {
		return err
	}
	tok, err := m.next()
	if err != nil {
		return err
	}
	if ann == nil && tok.Type.IsString() {
		eq, err := m.peek(0)
		if err != nil {
			return err
		}
		if eq.Type == token.TEquals {
			return m.property(discard, first, tok)
		}
	}
	if ann != nil && m.v == format.V1 && tok.Space {
		return syntaxErr(tok, "argument", "space after type annotation")
	}
	val, err := m.value(tok, ann, "argument")
	if err != nil {
		return err
	}
	m.emit(discard, &stream.Event{Type: stream.EventArgument, Value: val, Pos: first.Pos})
	return nil
}

func (m *machine) property(discard bool, first, key *token.Token) error {
	eq, err := m.next()
	if err != nil {
		return err
	}
	vt, err := m.peek(0)
	if err != nil {
		return err
	}
	if m.v == format.V1 && (eq.Space || vt.Space) {
		return syntaxErr(eq, "property", "space around '=' in KDL 1")
	}
	ann, err := m.annotation("property")
	if err != nil {
		return err
	}
	tok, err := m.next()
	if err != nil {
		return err
	}
	if ann != nil && m.v == format.V1 && tok.Space {
		return syntaxErr(tok, "property", "space after type annotation")
	}
	val, err := m.value(tok, ann, "property")
	if err != nil {
		return err
	}
	m.emit(discard, &stream.Event{
		Type:  stream.EventProperty,
		Name:  key.String(),
		Value: val,
		Pos:   first.Pos,
	})
	return nil
}

// annotation parses an optional "(type)".
func (m *machine) annotation(ctx string) (*string, error) {
	tok, err := m.peek(0)
	if err != nil || tok.Type != token.TLParen {
		return nil, err
	}
	m.la = m.la[1:]
	name, err := m.next()
	if err != nil {
		return nil, err
	}
	if !name.Type.IsString() {
		return nil, syntaxErr(name, ctx, "expected a type name, got %s", describe(name))
	}
	end, err := m.next()
	if err != nil {
		return nil, err
	}
	if end.Type != token.TRParen {
		return nil, syntaxErr(end, ctx, "expected ')' after type name, got %s", describe(end))
	}
	if m.v == format.V1 && (name.Space || end.Space) {
		return nil, syntaxErr(name, ctx, "space inside type annotation")
	}
	s := name.String()
	return &s, nil
}

func (m *machine) value(tok *token.Token, ann *string, ctx string) (*ir.Value, error) {
	var v *ir.Value
	switch tok.Type {
	case token.TString:
		v = ir.FromString(tok.String())
		v.Literal = string(tok.Bytes)
	case token.TIdent:
		if m.v == format.V1 {
			return nil, syntaxErr(tok, ctx, "bare identifier %q is not a value in KDL 1", tok.String())
		}
		v = ir.FromString(tok.String())
		v.Literal = string(tok.Bytes)
	case token.TNumber:
		n, err := ir.ParseNumber(string(tok.Bytes), m.opts.numberOpts()...)
		if err != nil {
			var ve *ir.ValueError
			if errors.As(err, &ve) && ve.Pos == nil {
				ve.Pos = tok.Pos
			}
			return nil, err
		}
		v = n
	case token.TKeyword:
		switch strings.TrimPrefix(tok.String(), "#") {
		case "true":
			v = ir.FromBool(true)
		case "false":
			v = ir.FromBool(false)
		case "null":
			v = ir.Null()
		case "inf":
			v = ir.FromFloat(math.Inf(1))
		case "-inf":
			v = ir.FromFloat(math.Inf(-1))
		case "nan":
			v = ir.FromFloat(math.NaN())
		default:
			return nil, syntaxErr(tok, ctx, "unknown keyword %s", tok.String())
		}
	default:
		return nil, syntaxErr(tok, ctx, "expected a value, got %s", describe(tok))
	}
	v.Annotation = ann
	return v, nil
}

func describe(tok *token.Token) string {
	switch tok.Type {
	case token.TEOF:
		return "end of input"
	case token.TNewline:
		return "newline"
	case token.TString, token.TIdent, token.TNumber, token.TKeyword:
		return fmt.Sprintf("%s %q", tok.Type, tok.Bytes)
	}
	return fmt.Sprintf("%q", tok.Bytes)
}
