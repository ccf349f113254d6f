package parse

import (
	"io"

	"github.com/signadot/go-kdl/format"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/token"
)

// DefaultMaxDepth bounds node nesting unless MaxDepth says otherwise.
const DefaultMaxDepth = 4096

type parseOpts struct {
	version   format.Version
	maxDepth  int
	debug     io.Writer
	positions map[*ir.Node]*token.Pos
	int64Only bool
}

func newOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{maxDepth: DefaultMaxDepth}
	for _, f := range opts {
		f(o)
	}
	return o
}

func (o *parseOpts) numberOpts() []ir.NumberOption {
	if o.int64Only {
		return []ir.NumberOption{ir.Int64Only()}
	}
	return nil
}

type ParseOption func(*parseOpts)

// ParseVersion selects the KDL version of the input. The default,
// format.Auto, honors a leading "/- kdl-version N" node and otherwise
// tries KDL 2 before KDL 1.
func ParseVersion(v format.Version) ParseOption {
	return func(o *parseOpts) { o.version = v }
}

// MaxDepth bounds the nesting of nodes. n <= 0 removes the bound.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}

// ParseDebug writes a trace of the produced events to w.
func ParseDebug(w io.Writer) ParseOption {
	return func(o *parseOpts) { o.debug = w }
}

// ParsePositions records the position of each parsed node in m.
func ParsePositions(m map[*ir.Node]*token.Pos) ParseOption {
	return func(o *parseOpts) { o.positions = m }
}

// Int64Only rejects integers outside the int64 range.
func Int64Only() ParseOption {
	return func(o *parseOpts) { o.int64Only = true }
}
