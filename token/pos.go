package token

import (
	"fmt"
	"sort"
	"strconv"
)

// PosDoc records the offsets of newlines as a stream is lexed, so that
// byte offsets can be turned into line and column numbers.
type PosDoc struct {
	n []int
}

// nl records a newline ending at byte offset i.
func (p *PosDoc) nl(i int) {
	if len(p.n) > 0 && p.n[len(p.n)-1] >= i {
		return
	}
	p.n = append(p.n, i)
}

// LineCol returns the zero based line and byte column of offset off.
func (p *PosDoc) LineCol(off int) (int, int) {
	if p == nil {
		return 0, off
	}
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	if di == 0 {
		return 0, off
	}
	return di, off - p.n[di-1] - 1
}

// Lines returns the number of newlines seen so far.
func (p *PosDoc) Lines() int {
	return len(p.n)
}

func (p *PosDoc) Pos(i int) *Pos {
	return &Pos{I: i, D: p}
}

type Pos struct {
	I       int
	D       *PosDoc
	Context []byte // bytes preceding this position (for error messages)
}

func (p *Pos) LineCol() (int, int) {
	return p.D.LineCol(p.I)
}

func (p *Pos) Line() int {
	l, _ := p.LineCol()
	return l
}

func (p *Pos) Col() int {
	_, c := p.LineCol()
	return c
}

func (p Pos) String() string {
	sample := "?"
	if len(p.Context) > 0 {
		sample = string(p.Context)
	}
	sample = strconv.Quote(sample)
	sample = sample[1 : len(sample)-1]
	return fmt.Sprintf("`...%s...` at offset %d (line=%d, col=%d)", sample, p.I, p.Line(), p.Col())
}
