package token

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/signadot/go-kdl/format"
)

// quoted lexes a string starting with '"': a single-line string, a v1
// string (which may span lines) or a KDL 2 multi-line string.
func (l *Lexer) quoted(space bool) (*Token, error) {
	s := l.src
	start := s.pos()
	s.begin()
	if l.v == format.V2 && s.peek(1) == '"' && s.peek(2) == '"' {
		s.next()
		s.next()
		s.next()
		body, err := l.multiline(start, 0, true)
		if err != nil {
			return nil, err
		}
		text, err := l.dedent(collapseSpace(body), start)
		if err != nil {
			return nil, err
		}
		text, bad, err := unescape(text, l.v)
		if err != nil {
			return nil, ExpectedErr(err, "", l.offsetPos(start, 0, bad))
		}
		return l.finishText(TString, start, space, text), nil
	}
	s.next()
	contentStart := s.off
	var raw []rune
	for {
		r := s.peek(0)
		switch {
		case r == eofRune:
			return nil, ExpectedErr(ErrUnterminated, `'"'`, start)
		case r == '"':
			s.next()
			text, bad, err := unescape(string(raw), l.v)
			if err != nil {
				return nil, ExpectedErr(err, "", l.offsetPos(start, contentStart, bad))
			}
			return l.finishText(TString, start, space, text), nil
		case r == '\\':
			s.next()
			raw = append(raw, r)
			e := s.peek(0)
			if l.v == format.V2 && (isSpace(e) || isNewline(e)) {
				for isSpace(s.peek(0)) || isNewline(s.peek(0)) {
					raw = append(raw, s.next())
				}
				continue
			}
			if e == eofRune {
				continue
			}
			c, err := l.advance()
			if err != nil {
				return nil, err
			}
			raw = append(raw, c)
		case isNewline(r) && l.v == format.V2:
			return nil, ExpectedErr(ErrNewline, `'"'`, s.pos())
		default:
			c, err := l.advance()
			if err != nil {
				return nil, err
			}
			raw = append(raw, c)
		}
	}
}

// raw lexes a KDL 2 raw string delimited by hashes '#' on each side.
func (l *Lexer) raw(space bool, hashes int) (*Token, error) {
	s := l.src
	start := s.pos()
	s.begin()
	for range hashes {
		s.next()
	}
	s.next()
	if s.peek(0) == '"' && s.peek(1) == '"' {
		s.next()
		s.next()
		body, err := l.multiline(start, hashes, false)
		if err != nil {
			return nil, err
		}
		text, err := l.dedent(body, start)
		if err != nil {
			return nil, err
		}
		return l.finishText(TString, start, space, text), nil
	}
	var raw []rune
	for {
		r := s.peek(0)
		switch {
		case r == eofRune:
			return nil, ExpectedErr(ErrUnterminated, closing(`"`, hashes), start)
		case r == '"' && l.closes(1, hashes):
			for range hashes + 1 {
				s.next()
			}
			return l.finishText(TString, start, space, string(raw)), nil
		case isNewline(r):
			return nil, ExpectedErr(ErrNewline, closing(`"`, hashes), s.pos())
		default:
			c, err := l.advance()
			if err != nil {
				return nil, err
			}
			raw = append(raw, c)
		}
	}
}

// rawV1 lexes a KDL 1 raw string, r"..." or r#"..."#.
func (l *Lexer) rawV1(space bool) (*Token, error) {
	s := l.src
	start := s.pos()
	s.begin()
	s.next()
	hashes := 0
	for s.peek(0) == '#' {
		s.next()
		hashes++
	}
	if s.peek(0) != '"' {
		return nil, ExpectedErr(ErrUnexpected, `'"'`, s.pos())
	}
	s.next()
	var raw []rune
	for {
		r := s.peek(0)
		switch {
		case r == eofRune:
			return nil, ExpectedErr(ErrUnterminated, closing(`"`, hashes), start)
		case r == '"' && l.closes(1, hashes):
			for range hashes + 1 {
				s.next()
			}
			return l.finishText(TString, start, space, string(raw)), nil
		case r == '\r' && s.peek(1) == '\n':
			s.next()
			s.next()
			raw = append(raw, '\n')
		default:
			c, err := l.advance()
			if err != nil {
				return nil, err
			}
			raw = append(raw, c)
		}
	}
}

func (l *Lexer) closes(at, hashes int) bool {
	for i := range hashes {
		if l.src.peek(at+i) != '#' {
			return false
		}
	}
	return true
}

func closing(q string, hashes int) string {
	return "'" + q + strings.Repeat("#", hashes) + "'"
}

// multiline reads the body of a KDL 2 multi-line string after its
// opening quotes, up to and including the closing quotes. Newlines are
// normalized to '\n'.
func (l *Lexer) multiline(start *Pos, hashes int, escapes bool) (string, error) {
	s := l.src
	if !isNewline(s.peek(0)) {
		return "", ExpectedErr(ErrMultiline, `newline after '"""'`, s.pos())
	}
	l.newline()
	var b strings.Builder
	for {
		r := s.peek(0)
		switch {
		case r == eofRune:
			return "", ExpectedErr(ErrUnterminated, closing(`"""`, hashes), start)
		case r == '"' && s.peek(1) == '"' && s.peek(2) == '"' && l.closes(3, hashes):
			for range hashes + 3 {
				s.next()
			}
			return b.String(), nil
		case isNewline(r):
			l.newline()
			b.WriteByte('\n')
		case r == '\\' && escapes:
			s.next()
			b.WriteRune(r)
			switch e := s.peek(0); {
			case isNewline(e):
				l.newline()
				b.WriteByte('\n')
			case e == eofRune:
			default:
				c, err := l.advance()
				if err != nil {
					return "", err
				}
				b.WriteRune(c)
			}
		default:
			c, err := l.advance()
			if err != nil {
				return "", err
			}
			b.WriteRune(c)
		}
	}
}

// dedent removes the indentation of the closing line of a multi-line
// string from each of its lines.
func (l *Lexer) dedent(body string, start *Pos) (string, error) {
	lines := strings.Split(body, "\n")
	prefix := lines[len(lines)-1]
	if !allSpace(prefix) {
		return "", ExpectedErr(ErrMultiline, "closing quotes on their own line", start)
	}
	lines = lines[:len(lines)-1]
	for i, line := range lines {
		if allSpace(line) {
			lines[i] = ""
			continue
		}
		if !strings.HasPrefix(line, prefix) {
			return "", ExpectedErr(ErrMultiline, "indentation matching the closing line", start)
		}
		lines[i] = line[len(prefix):]
	}
	return strings.Join(lines, "\n"), nil
}

func allSpace(s string) bool {
	for _, r := range s {
		if !isSpace(r) {
			return false
		}
	}
	return true
}

func (l *Lexer) offsetPos(start *Pos, contentStart, bad int) *Pos {
	if contentStart == 0 {
		return start
	}
	return &Pos{I: contentStart + bad, D: start.D, Context: start.Context}
}

// collapseSpace removes whitespace escapes, a backslash followed by
// whitespace or newlines, from a multi-line string body. They are
// resolved before dedenting and the other escapes after.
func collapseSpace(body string) string {
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	rs := []rune(body)
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r != '\\' || i+1 >= len(rs) {
			b.WriteRune(r)
			continue
		}
		if n := rs[i+1]; !isSpace(n) && !isNewline(n) {
			b.WriteRune(r)
			b.WriteRune(n)
			i++
			continue
		}
		for i+1 < len(rs) && (isSpace(rs[i+1]) || isNewline(rs[i+1])) {
			i++
		}
	}
	return b.String()
}

// unescape interprets the escape sequences of s. On failure it returns
// the byte index of the offending escape.
func unescape(s string, v format.Version) (string, int, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, 0, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		at := i
		i++
		if i >= len(s) {
			return "", at, ErrEscape
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 's':
			if v == format.V1 {
				return "", at, ErrEscape
			}
			b.WriteByte(' ')
		case '/':
			if v != format.V1 {
				return "", at, ErrEscape
			}
			b.WriteByte('/')
		case 'u':
			r, n, ok := unicodeEscape(s[i+1:])
			if !ok {
				return "", at, ErrEscape
			}
			b.WriteRune(r)
			i += n
		default:
			r, _ := utf8.DecodeRuneInString(s[i:])
			if v == format.V1 || !(isSpace(r) || isNewline(r)) {
				return "", at, ErrEscape
			}
			for i < len(s) {
				r, sz := utf8.DecodeRuneInString(s[i:])
				if !isSpace(r) && !isNewline(r) {
					break
				}
				i += sz
			}
			continue
		}
		i++
	}
	return b.String(), 0, nil
}

// unicodeEscape decodes the "{XXXXXX}" part of a \u escape, returning
// the rune and the number of bytes consumed.
func unicodeEscape(s string) (rune, int, bool) {
	if len(s) < 3 || s[0] != '{' {
		return 0, 0, false
	}
	end := strings.IndexByte(s, '}')
	if end < 2 || end > 7 {
		return 0, 0, false
	}
	x, err := strconv.ParseUint(s[1:end], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	r := rune(x)
	if !utf8.ValidRune(r) {
		return 0, 0, false
	}
	return r, end + 1, true
}
