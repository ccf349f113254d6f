package encode

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/signadot/go-kdl/debug"
	"github.com/signadot/go-kdl/format"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/stream"
	"github.com/signadot/go-kdl/token"
)

type EncState struct {
	indent        int
	version       format.Version
	sortProps     bool
	literals      bool
	emptyChildren bool

	Color func(ir.Type, ColorAttr, string) string
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{
		indent:        4,
		version:       format.V2,
		literals:      true,
		emptyChildren: true,
	}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

// Encode writes doc as KDL text to w. Output is deterministic. Write
// failures, including short writes, are returned as *stream.IOError.
func Encode(doc *ir.Document, w io.Writer, opts ...EncodeOption) error {
	enc := NewEncoder(w, opts...)
	if err := stream.WriteDocument(enc, doc); err != nil {
		return err
	}
	return enc.Flush()
}

type encFrame struct {
	// the node's children block is open
	children bool
}

// Encoder writes KDL text from events. It is a stream.EventSink; Flush
// must be called after the last event.
type Encoder struct {
	es    *EncState
	w     *bufio.Writer
	stack []encFrame
	// a children block was opened and no child written yet
	pendingOpen bool
	props       []*ir.Prop
	err         error
}

func NewEncoder(w io.Writer, opts ...EncodeOption) *Encoder {
	return &Encoder{
		es: newState(opts),
		w:  bufio.NewWriter(stream.NewWriter(w)),
	}
}

func (e *Encoder) WriteEvent(ev *stream.Event) error {
	if e.err != nil {
		return e.err
	}
	if debug.Encode() {
		debug.Logf("encode: %s\n", ev)
	}
	if err := e.writeEvent(ev); err != nil {
		e.err = err
		return err
	}
	return nil
}

func (e *Encoder) orderErr(ev *stream.Event) error {
	return fmt.Errorf("%w: %s at depth %d", stream.ErrEventOrder, ev.Type, len(e.stack))
}

func (e *Encoder) inEntries() bool {
	return len(e.stack) > 0 && !e.stack[len(e.stack)-1].children
}

func (e *Encoder) writeEvent(ev *stream.Event) error {
	es := e.es
	switch ev.Type {
	case stream.EventBeginNode:
		if e.inEntries() {
			return e.orderErr(ev)
		}
		if e.pendingOpen {
			e.pendingOpen = false
			e.writeString(" " + es.color(ir.StringType, SepColor, "{") + "\n")
		}
		e.writeString(strings.Repeat(" ", es.indent*e.depth()))
		if ev.Annotation != nil {
			e.writeString(annotation(es, *ev.Annotation))
		}
		e.writeString(es.color(ir.StringType, NameColor, token.Ident(ev.Name, es.version)))
		e.stack = append(e.stack, encFrame{})
	case stream.EventArgument:
		if !e.inEntries() || ev.Value == nil {
			return e.orderErr(ev)
		}
		s, err := formatValue(es, ev.Value)
		if err != nil {
			return err
		}
		e.writeString(" " + s)
	case stream.EventProperty:
		if !e.inEntries() || ev.Value == nil {
			return e.orderErr(ev)
		}
		if es.sortProps {
			e.props = append(e.props, &ir.Prop{Key: ev.Name, Value: ev.Value})
			return nil
		}
		return e.writeProp(ev.Name, ev.Value)
	case stream.EventBeginChildren:
		if !e.inEntries() {
			return e.orderErr(ev)
		}
		if err := e.flushProps(); err != nil {
			return err
		}
		e.stack[len(e.stack)-1].children = true
		e.pendingOpen = true
	case stream.EventEndChildren:
		if len(e.stack) == 0 || !e.stack[len(e.stack)-1].children {
			return e.orderErr(ev)
		}
		e.stack[len(e.stack)-1].children = false
		if e.pendingOpen {
			e.pendingOpen = false
			if es.emptyChildren {
				e.writeString(" " + es.color(ir.StringType, SepColor, "{}"))
			}
			break
		}
		e.writeString(strings.Repeat(" ", es.indent*e.depth()))
		e.writeString(es.color(ir.StringType, SepColor, "}"))
	case stream.EventEndNode:
		if !e.inEntries() {
			return e.orderErr(ev)
		}
		if err := e.flushProps(); err != nil {
			return err
		}
		e.stack = e.stack[:len(e.stack)-1]
		e.writeString("\n")
	default:
		return e.orderErr(ev)
	}
	return e.err
}

// depth is the number of enclosing children blocks of the next node.
func (e *Encoder) depth() int {
	if e.inEntries() {
		return len(e.stack) - 1
	}
	return len(e.stack)
}

func (e *Encoder) writeProp(key string, v *ir.Value) error {
	s, err := formatValue(e.es, v)
	if err != nil {
		return err
	}
	k := e.es.color(ir.StringType, KeyColor, token.Ident(key, e.es.version))
	e.writeString(" " + k + e.es.color(v.Type, SepColor, "=") + s)
	return nil
}

func (e *Encoder) flushProps() error {
	if len(e.props) == 0 {
		return nil
	}
	slices.SortStableFunc(e.props, func(a, b *ir.Prop) int { return cmp.Compare(a.Key, b.Key) })
	for _, p := range e.props {
		if err := e.writeProp(p.Key, p.Value); err != nil {
			return err
		}
	}
	e.props = e.props[:0]
	return nil
}

func (e *Encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	if _, err := e.w.WriteString(s); err != nil {
		e.err = err
	}
}

// Flush writes buffered output. It fails if a node is still open.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if len(e.stack) != 0 {
		return fmt.Errorf("%w: %d open nodes", stream.ErrIncomplete, len(e.stack))
	}
	if err := e.w.Flush(); err != nil {
		e.err = err
		return err
	}
	return nil
}

var _ stream.EventSink = (*Encoder)(nil)
