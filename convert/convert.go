package convert

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/signadot/go-kdl/encode"
	"github.com/signadot/go-kdl/format"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/parse"
)

// ToJSON returns the JSON form of doc.
func ToJSON(doc *ir.Document) ([]byte, error) {
	return ir.ToJSON(doc)
}

// ToYAML returns the JSON form of doc written as YAML.
func ToYAML(doc *ir.Document) ([]byte, error) {
	j, err := ir.ToJSON(doc)
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(j)
}

func FromJSON(data []byte) (*ir.Document, error) {
	return ir.FromJSON(data)
}

// FromYAML reads a document from the YAML rendering of its JSON form.
func FromYAML(data []byte) (*ir.Document, error) {
	j, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, err
	}
	return ir.FromJSON(j)
}

// Encode writes doc to w in format f. KDL output takes opts.
func Encode(doc *ir.Document, f format.Format, w io.Writer, opts ...encode.EncodeOption) error {
	var (
		d   []byte
		err error
	)
	switch f {
	case format.KDLFormat:
		return encode.Encode(doc, w, opts...)
	case format.SExprFormat:
		return encode.SExpr(doc, w)
	case format.JSONFormat:
		d, err = ToJSON(doc)
		d = append(d, '\n')
	case format.YAMLFormat:
		d, err = ToYAML(doc)
	default:
		return fmt.Errorf("%w: cannot encode %s", format.ErrBadFormat, f)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// Decode reads a document in format f. KDL input takes opts.
func Decode(data []byte, f format.Format, opts ...parse.ParseOption) (*ir.Document, error) {
	switch f {
	case format.KDLFormat:
		return parse.Parse(data, opts...)
	case format.JSONFormat:
		return FromJSON(data)
	case format.YAMLFormat:
		return FromYAML(data)
	default:
		return nil, fmt.Errorf("%w: cannot decode %s", format.ErrBadFormat, f)
	}
}

// FromData converts plain JSON or YAML data to a KDL document. Mapping
// entries become nodes named by their key; sequences of scalars become
// arguments; other sequences become children named "-"; a scalar is
// the single argument of its node. Mapping order is kept.
func FromData(data []byte) (*ir.Document, error) {
	var x any
	if err := yaml.UnmarshalWithOptions(data, &x, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	doc := ir.NewDocument()
	switch v := x.(type) {
	case nil:
		if len(bytes.TrimSpace(data)) == 0 {
			return doc, nil
		}
	case yaml.MapSlice:
		nodes, err := entryNodes(v)
		if err != nil {
			return nil, err
		}
		return doc.Add(nodes...), nil
	case []any:
		for _, e := range v {
			n, err := dataNode("-", e)
			if err != nil {
				return nil, err
			}
			doc.Add(n)
		}
		return doc, nil
	}
	n, err := dataNode("-", x)
	if err != nil {
		return nil, err
	}
	return doc.Add(n), nil
}

func entryNodes(m yaml.MapSlice) ([]*ir.Node, error) {
	res := make([]*ir.Node, 0, len(m))
	for _, item := range m {
		n, err := dataNode(fmt.Sprint(item.Key), item.Value)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

func dataNode(name string, x any) (*ir.Node, error) {
	n := ir.NewNode(name)
	switch v := x.(type) {
	case yaml.MapSlice:
		cs, err := entryNodes(v)
		if err != nil {
			return nil, err
		}
		return n.AddChild(cs...), nil
	case []any:
		if vals, ok := scalars(v); ok && len(vals) > 0 {
			return n.AddArg(vals...), nil
		}
		n.AddChild()
		for _, e := range v {
			c, err := dataNode("-", e)
			if err != nil {
				return nil, err
			}
			n.AddChild(c)
		}
		return n, nil
	}
	val, err := ir.FromAny(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return n.AddArg(val), nil
}

func scalars(xs []any) ([]*ir.Value, bool) {
	res := make([]*ir.Value, 0, len(xs))
	for _, x := range xs {
		switch x.(type) {
		case yaml.MapSlice, []any:
			return nil, false
		}
		v, err := ir.FromAny(x)
		if err != nil {
			return nil, false
		}
		res = append(res, v)
	}
	return res, true
}
