package token

import (
	"fmt"
	"io"

	"github.com/signadot/go-kdl/format"
)

type lexOpts struct {
	version  format.Version
	comments bool
}

type LexOption func(*lexOpts)

// LexVersion selects the syntax. Auto lexes as KDL 2.
func LexVersion(v format.Version) LexOption {
	return func(o *lexOpts) { o.version = v }
}

// LexComments makes the lexer emit TComment tokens instead of
// skipping comments.
func LexComments(v bool) LexOption {
	return func(o *lexOpts) { o.comments = v }
}

// Lexer produces tokens lazily from a byte stream. A Lexer is spent
// once it returns TEOF or an error.
type Lexer struct {
	src     *source
	opts    lexOpts
	v       format.Version
	started bool
	space   bool
	done    bool
	err     error
}

func NewLexer(r io.Reader, opts ...LexOption) *Lexer {
	l := &Lexer{src: newSource(r)}
	for _, o := range opts {
		o(&l.opts)
	}
	l.v = l.opts.version.Resolve()
	return l
}

func (l *Lexer) Version() format.Version {
	return l.v
}

// Doc returns the newline index of the input lexed so far.
func (l *Lexer) Doc() *PosDoc {
	return l.src.doc
}

// Offset returns the byte offset of the next unread rune.
func (l *Lexer) Offset() int {
	return l.src.off
}

// Next returns the next token. At the end of input it returns a token
// of type TEOF, and keeps doing so.
func (l *Lexer) Next() (*Token, error) {
	if l.err != nil {
		return nil, l.err
	}
	if l.done {
		return &Token{Type: TEOF, Pos: l.src.pos()}, nil
	}
	tok, err := l.lex()
	if l.src.err != nil && (err != nil || tok.Type == TEOF) {
		err = l.src.err
	}
	if err != nil {
		l.err = err
		return nil, err
	}
	if tok.Type == TEOF {
		l.done = true
	}
	return tok, nil
}

// Tokenize lexes all of r.
func Tokenize(r io.Reader, opts ...LexOption) ([]*Token, error) {
	l := NewLexer(r, opts...)
	var res []*Token
	for {
		tok, err := l.Next()
		if err != nil {
			return res, err
		}
		res = append(res, tok)
		if tok.Type == TEOF {
			return res, nil
		}
	}
}

func (l *Lexer) lex() (*Token, error) {
	s := l.src
	if !l.started {
		l.started = true
		if s.peek(0) == '\uFEFF' {
			s.next()
		}
	}
	space := l.space
	l.space = false
	for {
		r := s.peek(0)
		switch {
		case r == eofRune:
			return &Token{Type: TEOF, Pos: s.pos(), Space: space}, nil
		case r == badRune:
			return nil, ExpectedErr(ErrUTF8, "", s.pos())
		case isSpace(r):
			s.next()
			space = true
		case isNewline(r):
			start := s.pos()
			s.begin()
			l.newline()
			return l.finish(TNewline, start, space), nil
		case r == '\\':
			if err := l.continuation(); err != nil {
				return nil, err
			}
			space = true
		case r == '/':
			start := s.pos()
			switch s.peek(1) {
			case '/':
				s.begin()
				if err := l.lineComment(); err != nil {
					return nil, err
				}
				if l.opts.comments {
					return l.finish(TComment, start, space), nil
				}
				s.end()
			case '*':
				s.begin()
				if err := l.blockComment(); err != nil {
					return nil, err
				}
				if l.opts.comments {
					l.space = true
					return l.finish(TComment, start, space), nil
				}
				s.end()
				space = true
			case '-':
				s.begin()
				s.next()
				s.next()
				return l.finish(TSlashDash, start, space), nil
			default:
				return nil, UnexpectedErr("'/'", start)
			}
		case r == '{', r == '}', r == '(', r == ')', r == ';', r == '=':
			start := s.pos()
			s.begin()
			s.next()
			return l.finish(punct[r], start, space), nil
		case r == '"':
			return l.quoted(space)
		case r == '#' && l.v == format.V2:
			return l.hash(space)
		case r == 'r' && l.v == format.V1 && (s.peek(1) == '"' || s.peek(1) == '#'):
			return l.rawV1(space)
		case looksNumeric(r, s.peek(1), s.peek(2), l.v):
			return l.number(space)
		case isIdentChar(r, l.v):
			return l.ident(space)
		case isDisallowed(r):
			return nil, ExpectedErr(ErrDisallowed, "", s.pos())
		default:
			return nil, UnexpectedErr(fmt.Sprintf("%q", r), s.pos())
		}
	}
}

var punct = map[rune]TokenType{
	'{': TLCurl,
	'}': TRCurl,
	'(': TLParen,
	')': TRParen,
	';': TSemi,
	'=': TEquals,
}

func (l *Lexer) finish(tt TokenType, start *Pos, space bool) *Token {
	b := l.src.end()
	return &Token{
		Type:  tt,
		Pos:   start,
		Len:   l.src.off - start.I,
		Space: space,
		Bytes: b,
	}
}

func (l *Lexer) finishText(tt TokenType, start *Pos, space bool, text string) *Token {
	tok := l.finish(tt, start, space)
	tok.Value = &text
	return tok
}

// advance consumes one rune, rejecting invalid input.
func (l *Lexer) advance() (rune, error) {
	s := l.src
	r := s.peek(0)
	switch {
	case r == badRune:
		return r, ExpectedErr(ErrUTF8, "", s.pos())
	case isDisallowed(r):
		return r, ExpectedErr(ErrDisallowed, "", s.pos())
	}
	return s.next(), nil
}

// newline consumes one newline, treating CRLF as a single newline.
func (l *Lexer) newline() {
	if l.src.next() == '\r' && l.src.peek(0) == '\n' {
		l.src.next()
	}
}

func (l *Lexer) lineComment() error {
	s := l.src
	s.next()
	s.next()
	for {
		r := s.peek(0)
		if r == eofRune || isNewline(r) {
			return nil
		}
		if _, err := l.advance(); err != nil {
			return err
		}
	}
}

func (l *Lexer) blockComment() error {
	s := l.src
	start := s.pos()
	s.next()
	s.next()
	depth := 1
	for {
		r := s.peek(0)
		switch {
		case r == eofRune:
			return ExpectedErr(ErrUnterminated, `"*/"`, start)
		case r == '/' && s.peek(1) == '*':
			s.next()
			s.next()
			depth++
		case r == '*' && s.peek(1) == '/':
			s.next()
			s.next()
			depth--
			if depth == 0 {
				return nil
			}
		default:
			if _, err := l.advance(); err != nil {
				return err
			}
		}
	}
}

// continuation consumes a backslash, optional whitespace and comments
// and the newline ending the line.
func (l *Lexer) continuation() error {
	s := l.src
	s.next()
	for {
		r := s.peek(0)
		switch {
		case isSpace(r):
			s.next()
		case r == '/' && s.peek(1) == '*':
			if err := l.blockComment(); err != nil {
				return err
			}
		case r == '/' && s.peek(1) == '/':
			if err := l.lineComment(); err != nil {
				return err
			}
		case isNewline(r):
			l.newline()
			return nil
		case r == eofRune && l.v == format.V2:
			return nil
		default:
			return ExpectedErr(ErrContinuation, "newline after '\\'", s.pos())
		}
	}
}

func (l *Lexer) word() ([]rune, error) {
	s := l.src
	var w []rune
	for isIdentChar(s.peek(0), l.v) {
		r, err := l.advance()
		if err != nil {
			return nil, err
		}
		w = append(w, r)
	}
	return w, nil
}

func (l *Lexer) ident(space bool) (*Token, error) {
	s := l.src
	start := s.pos()
	s.begin()
	w, err := l.word()
	if err != nil {
		return nil, err
	}
	text := string(w)
	if keywords(l.v)[text] {
		if l.v == format.V1 {
			return l.finishText(TKeyword, start, space, text), nil
		}
		return nil, ExpectedErr(ErrBareKeyword, fmt.Sprintf("#%s or a quoted string", text), start)
	}
	return l.finishText(TIdent, start, space, text), nil
}

// number delimits a numeric literal. Its digits are validated when
// the literal is converted to a value.
func (l *Lexer) number(space bool) (*Token, error) {
	s := l.src
	start := s.pos()
	s.begin()
	if _, err := l.word(); err != nil {
		return nil, err
	}
	return l.finish(TNumber, start, space), nil
}

// hash lexes a KDL 2 keyword or raw string.
func (l *Lexer) hash(space bool) (*Token, error) {
	s := l.src
	n := 0
	for s.peek(n) == '#' {
		n++
	}
	if s.peek(n) == '"' {
		return l.raw(space, n)
	}
	start := s.pos()
	if n > 1 {
		return nil, UnexpectedErr("'#'", start)
	}
	s.begin()
	s.next()
	w, err := l.word()
	if err != nil {
		return nil, err
	}
	if !v2Keywords[string(w)] {
		return nil, ExpectedErr(ErrKeyword, "#true, #false, #null, #inf, #-inf or #nan", start)
	}
	return l.finish(TKeyword, start, space), nil
}
