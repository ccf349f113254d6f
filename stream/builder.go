package stream

import (
	"errors"
	"fmt"

	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/token"
)

var (
	ErrEventOrder = errors.New("event out of order")
	ErrIncomplete = errors.New("incomplete event stream")
)

type nodeState int

const (
	inEntries nodeState = iota
	inChildren
	afterChildren
)

type buildFrame struct {
	node  *ir.Node
	state nodeState
}

// Builder is an EventSink which assembles an ir.Document.
type Builder struct {
	// Positions, if non-nil, receives the position of each node
	// whose BeginNode event carries one.
	Positions map[*ir.Node]*token.Pos

	doc   *ir.Document
	stack []buildFrame
}

func NewBuilder() *Builder {
	return &Builder{doc: ir.NewDocument()}
}

func (b *Builder) WriteEvent(ev *Event) error {
	var top *buildFrame
	if len(b.stack) > 0 {
		top = &b.stack[len(b.stack)-1]
	}
	switch ev.Type {
	case EventBeginNode:
		if top != nil && top.state != inChildren {
			return b.orderErr(ev)
		}
		n := &ir.Node{Annotation: ev.Annotation, Name: ev.Name}
		if top == nil {
			b.doc.Nodes = append(b.doc.Nodes, n)
		} else {
			top.node.Children = append(top.node.Children, n)
		}
		if b.Positions != nil && ev.Pos != nil {
			b.Positions[n] = ev.Pos
		}
		b.stack = append(b.stack, buildFrame{node: n})
	case EventArgument, EventProperty:
		if top == nil || top.state != inEntries || ev.Value == nil {
			return b.orderErr(ev)
		}
		if ev.Type == EventArgument {
			top.node.Args = append(top.node.Args, ev.Value)
		} else {
			top.node.SetProp(ev.Name, ev.Value)
		}
	case EventBeginChildren:
		if top == nil || top.state != inEntries {
			return b.orderErr(ev)
		}
		top.state = inChildren
		if top.node.Children == nil {
			top.node.Children = []*ir.Node{}
		}
	case EventEndChildren:
		if top == nil || top.state != inChildren {
			return b.orderErr(ev)
		}
		top.state = afterChildren
	case EventEndNode:
		if top == nil || top.state == inChildren {
			return b.orderErr(ev)
		}
		b.stack = b.stack[:len(b.stack)-1]
	default:
		return b.orderErr(ev)
	}
	return nil
}

func (b *Builder) orderErr(ev *Event) error {
	return fmt.Errorf("%w: %s at depth %d", ErrEventOrder, ev.Type, len(b.stack))
}

// Depth returns the number of open nodes.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Document returns the assembled document. It fails if a node is still
// open.
func (b *Builder) Document() (*ir.Document, error) {
	if len(b.stack) != 0 {
		return nil, fmt.Errorf("%w: %d open nodes", ErrIncomplete, len(b.stack))
	}
	return b.doc, nil
}

// Build reads all events of r into a document.
func Build(r EventReader) (*ir.Document, error) {
	b := NewBuilder()
	if err := Copy(b, r); err != nil {
		return nil, err
	}
	return b.Document()
}

// WriteDocument writes the events of d to sink in document order.
// Arguments precede properties.
func WriteDocument(sink EventSink, d *ir.Document) error {
	type frame struct {
		nodes []*ir.Node
		i     int
	}
	stack := []frame{{nodes: d.Nodes}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.i >= len(top.nodes) {
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				break
			}
			if err := sink.WriteEvent(&Event{Type: EventEndChildren}); err != nil {
				return err
			}
			if err := sink.WriteEvent(&Event{Type: EventEndNode}); err != nil {
				return err
			}
			continue
		}
		n := top.nodes[top.i]
		top.i++
		if err := writeEntries(sink, n); err != nil {
			return err
		}
		if n.Children != nil {
			if err := sink.WriteEvent(&Event{Type: EventBeginChildren}); err != nil {
				return err
			}
			stack = append(stack, frame{nodes: n.Children})
			continue
		}
		if err := sink.WriteEvent(&Event{Type: EventEndNode}); err != nil {
			return err
		}
	}
	return nil
}

func writeEntries(sink EventSink, n *ir.Node) error {
	err := sink.WriteEvent(&Event{Type: EventBeginNode, Annotation: n.Annotation, Name: n.Name})
	if err != nil {
		return err
	}
	for _, a := range n.Args {
		if err := sink.WriteEvent(&Event{Type: EventArgument, Value: a}); err != nil {
			return err
		}
	}
	for _, p := range n.Props {
		if err := sink.WriteEvent(&Event{Type: EventProperty, Name: p.Key, Value: p.Value}); err != nil {
			return err
		}
	}
	return nil
}

// Events returns the events of d as a reader.
func Events(d *ir.Document) EventReader {
	rec := &EventRecorder{}
	// an EventRecorder never fails
	_ = WriteDocument(rec, d)
	return rec.Reader()
}

var _ EventSink = (*Builder)(nil)
var _ EventReader = (*SliceEventReader)(nil)
