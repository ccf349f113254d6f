package ir

import (
	"cmp"
	"math"
	"strings"
)

// Equal reports whether two values denote the same typed value with
// the same annotation. Integers compare numerically regardless of
// representation, NaN equals NaN, and literals are ignored.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.Type != o.Type || !equalAnnotation(v.Annotation, o.Annotation) {
		return false
	}
	return Compare(v, o) == 0
}

func equalAnnotation(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Equal reports whether two nodes and their descendants are equal.
// Properties compare as a mapping, independently of their order.
func (n *Node) Equal(o *Node) bool {
	type pair struct{ a, b *Node }
	stack := []pair{{n, o}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !p.a.equalShallow(p.b) {
			return false
		}
		if p.a == nil {
			continue
		}
		for i := range p.a.Children {
			stack = append(stack, pair{p.a.Children[i], p.b.Children[i]})
		}
	}
	return true
}

func (n *Node) equalShallow(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Name != o.Name || !equalAnnotation(n.Annotation, o.Annotation) {
		return false
	}
	if len(n.Args) != len(o.Args) || len(n.Props) != len(o.Props) {
		return false
	}
	for i, a := range n.Args {
		if !a.Equal(o.Args[i]) {
			return false
		}
	}
	for _, p := range n.Props {
		if !p.Value.Equal(o.Prop(p.Key)) {
			return false
		}
	}
	if (n.Children == nil) != (o.Children == nil) {
		return false
	}
	return len(n.Children) == len(o.Children)
}

func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	if len(d.Nodes) != len(o.Nodes) {
		return false
	}
	for i, n := range d.Nodes {
		if !n.Equal(o.Nodes[i]) {
			return false
		}
	}
	return true
}

// Compare returns an integer comparing two values.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Annotations are not compared.
func Compare(a, b *Value) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}
	switch a.Type {
	case NullType:
		return 0
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case IntegerType:
		if a.Int64 != nil && b.Int64 != nil {
			return cmp.Compare(*a.Int64, *b.Int64)
		}
		return a.Big().Cmp(b.Big())
	case FloatType:
		fa, fb := *a.Float64, *b.Float64
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return 0
		}
		return cmp.Compare(fa, fb)
	case StringType:
		return strings.Compare(a.String, b.String)
	}
	return 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Integer < Float < String
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case IntegerType:
		return 2
	case FloatType:
		return 3
	case StringType:
		return 4
	}
	return 100
}
