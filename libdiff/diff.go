package libdiff

import (
	"strconv"

	"github.com/signadot/go-kdl/format"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/token"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Change is one difference between two documents. A path locates a
// node as a "/" separated list of name[index] steps, the index counting
// nodes at that level. A deletion has only the From side, an insertion
// only the To side. A Modify change holds both nodes without their
// children: differences among children are separate changes.
type Change struct {
	Op       Op
	FromPath string
	ToPath   string
	From     *ir.Node
	To       *ir.Node
}

// Path returns the path of the changed node on the side it exists,
// preferring the source.
func (c *Change) Path() string {
	if c.FromPath != "" {
		return c.FromPath
	}
	return c.ToPath
}

type level struct {
	fromPath, toPath string
	from, to         []*ir.Node
}

// Diff compares two documents level by level. Nodes at a level are
// aligned on their name and annotation; aligned nodes whose arguments,
// properties or children block differ are modified, the rest are
// inserted or deleted.
func Diff(from, to *ir.Document) []*Change {
	return DiffNodes(from.Nodes, to.Nodes)
}

func DiffNodes(from, to []*ir.Node) []*Change {
	var res []*Change
	stack := []level{{from: from, to: to}}
	for len(stack) > 0 {
		lv := stack[0]
		stack = stack[1:]
		var next []level
		res, next = diffLevel(res, lv)
		stack = append(next, stack...)
	}
	return res
}

func diffLevel(res []*Change, lv level) ([]*Change, []level) {
	m := map[string]rune{}
	fromRunes := summaries(m, lv.from)
	toRunes := summaries(m, lv.to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	var next []level
	fi, ti := 0, 0
	for i := range diffs {
		n := len([]rune(diffs[i].Text))
		switch diffs[i].Type {
		case diffpatch.DiffDelete:
			for range n {
				res = append(res, &Change{Op: Delete, FromPath: step(lv.fromPath, lv.from[fi], fi), From: lv.from[fi]})
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				res = append(res, &Change{Op: Insert, ToPath: step(lv.toPath, lv.to[ti], ti), To: lv.to[ti]})
				ti++
			}
		case diffpatch.DiffEqual:
			for range n {
				a, b := lv.from[fi], lv.to[ti]
				fp, tp := step(lv.fromPath, a, fi), step(lv.toPath, b, ti)
				fi++
				ti++
				if a.Hash() == b.Hash() && a.Equal(b) {
					continue
				}
				if !entriesEqual(a, b) {
					res = append(res, &Change{Op: Modify, FromPath: fp, ToPath: tp, From: shallow(a), To: shallow(b)})
				}
				next = append(next, level{fromPath: fp, toPath: tp, from: a.Children, to: b.Children})
			}
		}
	}
	return res, next
}

func summaries(m map[string]rune, nodes []*ir.Node) []rune {
	rs := make([]rune, len(nodes))
	for i, n := range nodes {
		sum := n.Name
		if n.Annotation != nil {
			sum = "(" + *n.Annotation + ")" + sum
		}
		r, ok := m[sum]
		if !ok {
			r = rune(len(m))
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

func step(path string, n *ir.Node, i int) string {
	s := token.Ident(n.Name, format.V2) + "[" + strconv.Itoa(i) + "]"
	if path == "" {
		return s
	}
	return path + "/" + s
}

func entriesEqual(a, b *ir.Node) bool {
	return shallow(a).Equal(shallow(b)) && (a.Children == nil) == (b.Children == nil)
}

func shallow(n *ir.Node) *ir.Node {
	res := &ir.Node{Name: n.Name, Annotation: n.Annotation, Args: n.Args, Props: n.Props}
	return res.Clone()
}
