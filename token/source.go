package token

import (
	"bufio"
	"io"
	"unicode/utf8"
)

const (
	eofRune = -1
	badRune = -2

	contextLen = 12
)

// source is a rune reader with arbitrary lookahead over a byte stream.
// It tracks byte offsets, newlines and the bytes of the token being
// recorded.
type source struct {
	r   *bufio.Reader
	la  []rune
	sz  []int
	off int
	eof bool
	err error

	doc   *PosDoc
	tail  []byte
	rec   []byte
	recOn bool
}

func newSource(r io.Reader) *source {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &source{r: br, doc: &PosDoc{}}
}

func (s *source) fill(n int) {
	for len(s.la) < n && !s.eof && s.err == nil {
		r, sz, err := s.r.ReadRune()
		if err != nil {
			if err == io.EOF {
				s.eof = true
			} else {
				s.err = err
			}
			return
		}
		if r == utf8.RuneError && sz == 1 {
			r = badRune
		}
		s.la = append(s.la, r)
		s.sz = append(s.sz, sz)
	}
}

func (s *source) peek(i int) rune {
	s.fill(i + 1)
	if i < len(s.la) {
		return s.la[i]
	}
	return eofRune
}

func (s *source) next() rune {
	r := s.peek(0)
	if r == eofRune {
		return r
	}
	sz := s.sz[0]
	s.la = s.la[1:]
	s.sz = s.sz[1:]
	s.off += sz

	er := r
	if er == badRune {
		er = utf8.RuneError
	}
	s.tail = utf8.AppendRune(s.tail, er)
	if len(s.tail) > 4*contextLen {
		s.tail = append(s.tail[:0], s.tail[len(s.tail)-contextLen:]...)
	}
	if s.recOn {
		s.rec = utf8.AppendRune(s.rec, er)
	}
	switch r {
	case '\r':
		if s.peek(0) != '\n' {
			s.doc.nl(s.off - 1)
		}
	case '\n', '\u0085', '\u000B', '\u000C', '\u2028', '\u2029':
		s.doc.nl(s.off - 1)
	}
	return r
}

func (s *source) pos() *Pos {
	n := min(len(s.tail), contextLen)
	ctx := make([]byte, n)
	copy(ctx, s.tail[len(s.tail)-n:])
	return &Pos{I: s.off, D: s.doc, Context: ctx}
}

func (s *source) begin() {
	s.rec = s.rec[:0]
	s.recOn = true
}

func (s *source) end() []byte {
	s.recOn = false
	res := make([]byte, len(s.rec))
	copy(res, s.rec)
	return res
}
