package ir

import "errors"

type Prop struct {
	Key   string
	Value *Value
}

// Node is a KDL node. Children is nil when the node has no children
// block and non-nil (possibly empty) when it has one.
type Node struct {
	Annotation *string
	Name       string
	Args       []*Value
	Props      []*Prop
	Children   []*Node
}

func NewNode(name string) *Node {
	return &Node{Name: name}
}

func (n *Node) WithAnnotation(a string) *Node {
	n.Annotation = &a
	return n
}

func (n *Node) AddArg(vs ...*Value) *Node {
	n.Args = append(n.Args, vs...)
	return n
}

func (n *Node) PropIndex(key string) int {
	for i, p := range n.Props {
		if p.Key == key {
			return i
		}
	}
	return -1
}

// Prop returns the value of the property key, or nil.
func (n *Node) Prop(key string) *Value {
	if i := n.PropIndex(key); i >= 0 {
		return n.Props[i].Value
	}
	return nil
}

// SetProp sets a property. Setting an existing key replaces its value
// and keeps its position.
func (n *Node) SetProp(key string, v *Value) *Node {
	if i := n.PropIndex(key); i >= 0 {
		n.Props[i].Value = v
		return n
	}
	n.Props = append(n.Props, &Prop{Key: key, Value: v})
	return n
}

func (n *Node) DelProp(key string) bool {
	i := n.PropIndex(key)
	if i < 0 {
		return false
	}
	n.Props = append(n.Props[:i], n.Props[i+1:]...)
	return true
}

func (n *Node) PropMap() map[string]*Value {
	res := make(map[string]*Value, len(n.Props))
	for _, p := range n.Props {
		res[p.Key] = p.Value
	}
	return res
}

// AddChild appends children, creating the children block if needed.
func (n *Node) AddChild(cs ...*Node) *Node {
	if n.Children == nil {
		n.Children = make([]*Node, 0, len(cs))
	}
	n.Children = append(n.Children, cs...)
	return n
}

// NewChild creates a child named name and returns it.
func (n *Node) NewChild(name string) *Node {
	c := NewNode(name)
	n.AddChild(c)
	return c
}

func (n *Node) HasChildren() bool {
	return n.Children != nil
}

// Child returns the first child named name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (n *Node) ChildrenNamed(name string) []*Node {
	var res []*Node
	for _, c := range n.Children {
		if c.Name == name {
			res = append(res, c)
		}
	}
	return res
}

func (n *Node) cloneShallow() *Node {
	res := &Node{Name: n.Name}
	if n.Annotation != nil {
		a := *n.Annotation
		res.Annotation = &a
	}
	if n.Args != nil {
		res.Args = make([]*Value, len(n.Args))
		for i, a := range n.Args {
			res.Args[i] = a.Clone()
		}
	}
	if n.Props != nil {
		res.Props = make([]*Prop, len(n.Props))
		for i, p := range n.Props {
			res.Props[i] = &Prop{Key: p.Key, Value: p.Value.Clone()}
		}
	}
	return res
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	res := n.cloneShallow()
	type pair struct{ src, dst *Node }
	stack := []pair{{n, res}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.src.Children == nil {
			continue
		}
		p.dst.Children = make([]*Node, len(p.src.Children))
		for i, c := range p.src.Children {
			cc := c.cloneShallow()
			p.dst.Children[i] = cc
			stack = append(stack, pair{c, cc})
		}
	}
	return res
}

// Document is an ordered sequence of top level nodes.
type Document struct {
	Nodes []*Node
}

func NewDocument(nodes ...*Node) *Document {
	return &Document{Nodes: nodes}
}

func (d *Document) Add(nodes ...*Node) *Document {
	d.Nodes = append(d.Nodes, nodes...)
	return d
}

func (d *Document) Clone() *Document {
	res := &Document{Nodes: make([]*Node, len(d.Nodes))}
	for i, n := range d.Nodes {
		res.Nodes[i] = n.Clone()
	}
	return res
}

// SkipChildren may be returned by a WalkFunc to skip the children of
// the node it was called with.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for each node with the chain of its ancestors,
// outermost first. The parents slice is reused between calls.
type WalkFunc func(n *Node, parents []*Node) error

// Walk visits the nodes in document order.
func (d *Document) Walk(f WalkFunc) error {
	return Walk(d.Nodes, f)
}

// Walk visits nodes and their descendants in document order without
// recursion.
func Walk(nodes []*Node, f WalkFunc) error {
	type frame struct {
		nodes []*Node
		i     int
	}
	stack := []frame{{nodes: nodes}}
	var parents []*Node
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.i >= len(top.nodes) {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parents = parents[:len(parents)-1]
			}
			continue
		}
		n := top.nodes[top.i]
		top.i++
		err := f(n, parents)
		if err == SkipChildren {
			continue
		}
		if err != nil {
			return err
		}
		if len(n.Children) > 0 {
			parents = append(parents, n)
			stack = append(stack, frame{nodes: n.Children})
		}
	}
	return nil
}
