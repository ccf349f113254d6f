package stream

import (
	"fmt"
	"strings"

	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/token"
)

// Event is a structural event of a KDL document.
//
// A node is the sequence
//
//	BeginNode (Argument | Property)* [BeginChildren node* EndChildren] EndNode
type Event struct {
	Type EventType

	// Annotation is the type annotation of the node (BeginNode).
	Annotation *string
	// Name is the node name (BeginNode) or the property key (Property).
	Name string
	// Value is set for Argument and Property.
	Value *ir.Value

	// Pos is where the event starts in the input, if known.
	Pos *token.Pos
}

func (e *Event) String() string {
	var b strings.Builder
	b.WriteString(e.Type.String())
	switch e.Type {
	case EventBeginNode:
		b.WriteByte(' ')
		if e.Annotation != nil {
			fmt.Fprintf(&b, "(%s)", *e.Annotation)
		}
		b.WriteString(e.Name)
	case EventProperty:
		fmt.Fprintf(&b, " %s=%s", e.Name, valueString(e.Value))
	case EventArgument:
		b.WriteByte(' ')
		b.WriteString(valueString(e.Value))
	}
	return b.String()
}

func valueString(v *ir.Value) string {
	if v == nil {
		return "<nil>"
	}
	s := v.Text()
	if v.Type == ir.StringType {
		s = fmt.Sprintf("%q", s)
	}
	if v.Annotation != nil {
		s = "(" + *v.Annotation + ")" + s
	}
	return s
}

// EventType represents the type of a structural event.
type EventType int

const (
	EventBeginNode EventType = iota
	EventArgument
	EventProperty
	EventBeginChildren
	EventEndChildren
	EventEndNode
)

func (t EventType) String() string {
	switch t {
	case EventBeginNode:
		return "BeginNode"
	case EventArgument:
		return "Argument"
	case EventProperty:
		return "Property"
	case EventBeginChildren:
		return "BeginChildren"
	case EventEndChildren:
		return "EndChildren"
	case EventEndNode:
		return "EndNode"
	default:
		return "Unknown"
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(d []byte) error {
	k := string(d)
	pt, ok := map[string]EventType{
		"BeginNode":     EventBeginNode,
		"Argument":      EventArgument,
		"Property":      EventProperty,
		"BeginChildren": EventBeginChildren,
		"EndChildren":   EventEndChildren,
		"EndNode":       EventEndNode,
	}[k]
	if ok {
		*t = pt
		return nil
	}
	return fmt.Errorf("unknown type %q", k)
}
