package kdl

import (
	"github.com/signadot/go-kdl/debug"
	"github.com/signadot/go-kdl/ir"
)

// Match reports whether node matches pattern:
//
//   - the names are equal, and the annotations if pattern has one;
//   - each argument of pattern matches the argument of node at the same
//     position;
//   - each property of pattern matches the property of node with the
//     same key;
//   - each child of pattern matches a distinct child of node, in order.
//
// A null value in pattern matches any value. Recursion follows the
// pattern, so its depth is bounded by the pattern's.
func Match(node, pattern *ir.Node) bool {
	if debug.Match() {
		debug.Logf("match %q against %q\n", node.Name, pattern.Name)
	}
	if node.Name != pattern.Name {
		return false
	}
	if pattern.Annotation != nil && (node.Annotation == nil || *node.Annotation != *pattern.Annotation) {
		return false
	}
	if len(pattern.Args) > len(node.Args) {
		return false
	}
	for i, pa := range pattern.Args {
		if !matchValue(node.Args[i], pa) {
			return false
		}
	}
	for _, pp := range pattern.Props {
		v := node.Prop(pp.Key)
		if v == nil || !matchValue(v, pp.Value) {
			return false
		}
	}
	_, ok := matchChildren(node, pattern)
	return ok
}

func matchValue(v, pattern *ir.Value) bool {
	if pattern.Type == ir.NullType && pattern.Annotation == nil {
		return true
	}
	return v.Equal(pattern)
}

// matchChildren pairs each child of pattern with the first unused child
// of node it matches, returning the indices of the node's children.
func matchChildren(node, pattern *ir.Node) ([]int, bool) {
	if len(pattern.Children) == 0 {
		return nil, true
	}
	var res []int
	j := 0
	for _, pc := range pattern.Children {
		for j < len(node.Children) && !Match(node.Children[j], pc) {
			j++
		}
		if j == len(node.Children) {
			return nil, false
		}
		res = append(res, j)
		j++
	}
	return res, true
}

// Trim returns a copy of node restricted to what pattern names: its
// matched arguments, the properties pattern has and the children
// pattern matches, each trimmed in turn. node is assumed to match
// pattern.
func Trim(pattern, node *ir.Node) *ir.Node {
	res := &ir.Node{Name: node.Name}
	if node.Annotation != nil {
		a := *node.Annotation
		res.Annotation = &a
	}
	for i := range min(len(pattern.Args), len(node.Args)) {
		res.Args = append(res.Args, node.Args[i].Clone())
	}
	for _, pp := range pattern.Props {
		if v := node.Prop(pp.Key); v != nil {
			res.SetProp(pp.Key, v.Clone())
		}
	}
	if pattern.Children == nil {
		return res
	}
	idx, _ := matchChildren(node, pattern)
	res.Children = []*ir.Node{}
	for i, j := range idx {
		res.Children = append(res.Children, Trim(pattern.Children[i], node.Children[j]))
	}
	return res
}

// MatchDocument returns the top-level nodes of doc which match any node
// of pattern, trimmed to that pattern if trim is set.
func MatchDocument(doc, pattern *ir.Document, trim bool) []*ir.Node {
	var res []*ir.Node
	for _, n := range doc.Nodes {
		for _, p := range pattern.Nodes {
			if !Match(n, p) {
				continue
			}
			if trim {
				res = append(res, Trim(p, n))
			} else {
				res = append(res, n)
			}
			break
		}
	}
	return res
}
