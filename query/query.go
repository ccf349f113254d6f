package query

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/go-kdl/ir"
)

// Query is a compiled boolean expression over nodes.
//
// Expressions see these variables for the node at hand:
//
//	name        string           node name
//	annotation  string           node annotation, "" if none
//	args        []any            argument values
//	props       map[string]any   property values
//	path        string           "/" joined names from the top level
//	depth       int              0 for top level nodes
//	children    int              number of children
//	block       bool             whether the node has a children block
//
// and these functions:
//
//	arg(i)      the i-th argument, nil if there is none
//	prop(k)     the property k, nil if there is none
//	child(n)    whether a child is named n
//
// Integers are int64, or their decimal text when they do not fit.
type Query struct {
	src string
	prg *vm.Program
}

func Compile(src string) (*Query, error) {
	prg, err := expr.Compile(src, expr.Env(newEnv(ir.NewNode(""), nil)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", src, err)
	}
	return &Query{src: src, prg: prg}, nil
}

func (q *Query) String() string {
	return q.src
}

// Match evaluates q on n, whose ancestors are parents.
func (q *Query) Match(n *ir.Node, parents []*ir.Node) (bool, error) {
	res, err := expr.Run(q.prg, newEnv(n, parents))
	if err != nil {
		return false, fmt.Errorf("query %q at %s: %w", q.src, nodePath(n, parents), err)
	}
	b, _ := res.(bool)
	return b, nil
}

// Select returns the nodes of doc, at any depth and in document order,
// on which q holds.
func (q *Query) Select(doc *ir.Document) ([]*ir.Node, error) {
	var res []*ir.Node
	err := doc.Walk(func(n *ir.Node, parents []*ir.Node) error {
		ok, err := q.Match(n, parents)
		if err != nil {
			return err
		}
		if ok {
			res = append(res, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func newEnv(n *ir.Node, parents []*ir.Node) map[string]any {
	ann := ""
	if n.Annotation != nil {
		ann = *n.Annotation
	}
	args := make([]any, len(n.Args))
	for i, a := range n.Args {
		args[i] = valueAny(a)
	}
	props := make(map[string]any, len(n.Props))
	for _, p := range n.Props {
		props[p.Key] = valueAny(p.Value)
	}
	return map[string]any{
		"name":       n.Name,
		"annotation": ann,
		"args":       args,
		"props":      props,
		"path":       nodePath(n, parents),
		"depth":      len(parents),
		"children":   len(n.Children),
		"block":      n.Children != nil,
		"arg": func(i int) any {
			if i < 0 || i >= len(args) {
				return nil
			}
			return args[i]
		},
		"prop": func(k string) any {
			return props[k]
		},
		"child": func(name string) bool {
			return n.Child(name) != nil
		},
	}
}

func valueAny(v *ir.Value) any {
	if v.Type == ir.IntegerType && v.Int64 == nil {
		return v.Big().String()
	}
	return v.Any()
}

func nodePath(n *ir.Node, parents []*ir.Node) string {
	parts := make([]string, 0, len(parents)+1)
	for _, p := range parents {
		parts = append(parts, p.Name)
	}
	parts = append(parts, n.Name)
	return strings.Join(parts, "/")
}
