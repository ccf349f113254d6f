package parse

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/go-kdl/debug"
	"github.com/signadot/go-kdl/format"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/stream"
	"github.com/signadot/go-kdl/token"
)

func Parse(d []byte, opts ...ParseOption) (*ir.Document, error) {
	return ParseReader(bytes.NewReader(d), opts...)
}

func ParseString(s string, opts ...ParseOption) (*ir.Document, error) {
	return ParseReader(strings.NewReader(s), opts...)
}

// ParseReader parses a whole document from r.
func ParseReader(r io.Reader, opts ...ParseOption) (*ir.Document, error) {
	p := NewParser(r, opts...)
	b := stream.NewBuilder()
	b.Positions = p.opts.positions
	if err := stream.Copy(b, p); err != nil {
		return nil, err
	}
	return b.Document()
}

// Parser reads a KDL document as a sequence of events. It returns
// io.EOF after the last event and keeps returning the first error it
// encounters.
type Parser struct {
	opts    *parseOpts
	src     *stream.Reader
	ev      stream.EventReader
	v       format.Version
	started bool
	err     error
}

func NewParser(r io.Reader, opts ...ParseOption) *Parser {
	return &Parser{opts: newOpts(opts), src: stream.NewReader(r)}
}

// Version returns the KDL version of the input. It is format.Auto
// until the version has been decided, at the latest by the first call
// to ReadEvent.
func (p *Parser) Version() format.Version {
	return p.v
}

func (p *Parser) ReadEvent() (*stream.Event, error) {
	if !p.started {
		p.started = true
		p.err = p.start()
	}
	if p.err != nil {
		return nil, p.err
	}
	ev, err := p.ev.ReadEvent()
	if err != nil {
		p.err = err
		return nil, err
	}
	if p.opts.debug != nil {
		fmt.Fprintf(p.opts.debug, "%s\n", ev)
	}
	if debug.Parse() {
		debug.Logf("parse v%s: %s\n", p.v, ev)
	}
	return ev, nil
}

func (p *Parser) start() error {
	switch p.opts.version {
	case format.V1, format.V2:
		p.v = p.opts.version
		p.ev = newMachine(p.src, p.v, p.opts)
		return nil
	}

	// Everything read from src is recorded so that it can be read
	// again by a later attempt.
	rec := &bytes.Buffer{}
	tee := io.TeeReader(p.src, rec)
	if v := sniffVersion(tee); v != format.Auto {
		if debug.Auto() {
			debug.Logf("auto: version marker %s\n", v)
		}
		p.v = v
		p.ev = newMachine(io.MultiReader(bytes.NewReader(bytes.Clone(rec.Bytes())), p.src), v, p.opts)
		return nil
	}

	ev2, err2 := collect(newMachine(io.MultiReader(bytes.NewReader(bytes.Clone(rec.Bytes())), tee), format.V2, p.opts))
	if err2 == nil {
		p.v = format.V2
		p.ev = ev2
		return nil
	}
	if !isSyntax(err2) {
		return err2
	}
	if debug.Auto() {
		debug.Logf("auto: KDL 2 failed, trying KDL 1: %v\n", err2)
	}
	ev1, err1 := collect(newMachine(io.MultiReader(bytes.NewReader(rec.Bytes()), p.src), format.V1, p.opts))
	if err1 == nil {
		p.v = format.V1
		p.ev = ev1
		return nil
	}
	if !isSyntax(err1) {
		return err1
	}
	// Report the attempt which got further.
	if errOffset(err1) > errOffset(err2) {
		p.v = format.V1
		return err1
	}
	p.v = format.V2
	return err2
}

func collect(m *machine) (stream.EventReader, error) {
	rec := &stream.EventRecorder{}
	if err := stream.Copy(rec, m); err != nil {
		return nil, err
	}
	return rec.Reader(), nil
}

func errOffset(err error) int {
	if pos := ErrorPos(err); pos != nil {
		return pos.I
	}
	return -1
}

// sniffVersion looks for a leading "/- kdl-version N" node.
func sniffVersion(r io.Reader) format.Version {
	lex := token.NewLexer(r, token.LexVersion(format.V2))
	var toks []*token.Token
	for len(toks) < 4 {
		tok, err := lex.Next()
		if err != nil {
			return format.Auto
		}
		if tok.Type == token.TNewline && len(toks) == 0 {
			continue
		}
		toks = append(toks, tok)
		if tok.Type == token.TEOF {
			break
		}
	}
	if len(toks) < 4 ||
		toks[0].Type != token.TSlashDash ||
		!toks[1].Type.IsString() || toks[1].String() != "kdl-version" ||
		toks[2].Type != token.TNumber {
		return format.Auto
	}
	switch toks[3].Type {
	case token.TNewline, token.TSemi, token.TEOF:
	default:
		return format.Auto
	}
	switch string(toks[2].Bytes) {
	case "1":
		return format.V1
	case "2":
		return format.V2
	}
	return format.Auto
}
