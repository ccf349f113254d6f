package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// JSON form
//
// A value without annotation is a plain JSON scalar. Floats are written
// in their canonical text, which always has a fraction or an exponent,
// so they decode back as floats. Annotated values and non-finite floats
// use an object:
//
//	{"annotation": "u8", "value": 1}
//	{"float": "-inf"}
//
// A node is an object with "name" and, when present, "annotation",
// "args", "props" (a JSON object in property order) and "children".
// "children" is present exactly when the node has a children block.
// A document is {"nodes": [...]}.

type jsonValue struct {
	Annotation *string          `json:"annotation,omitempty"`
	Value      *json.RawMessage `json:"value,omitempty"`
	Float      string           `json:"float,omitempty"`
}

func (v *Value) MarshalJSON() ([]byte, error) {
	if v.Type == FloatType && !v.IsFinite() {
		f := *v.Float64
		s := "nan"
		switch {
		case math.IsInf(f, 1):
			s = "inf"
		case math.IsInf(f, -1):
			s = "-inf"
		}
		return json.Marshal(&jsonValue{Annotation: v.Annotation, Float: s})
	}
	d, err := v.marshalScalar()
	if err != nil {
		return nil, err
	}
	if v.Annotation == nil {
		return d, nil
	}
	raw := json.RawMessage(d)
	return json.Marshal(&jsonValue{Annotation: v.Annotation, Value: &raw})
}

func (v *Value) marshalScalar() ([]byte, error) {
	switch v.Type {
	case NullType:
		return []byte("null"), nil
	case BoolType:
		return json.Marshal(v.Bool)
	case IntegerType:
		return []byte(v.Big().String()), nil
	case FloatType:
		return []byte(FloatText(*v.Float64)), nil
	case StringType:
		return json.Marshal(v.String)
	}
	return nil, fmt.Errorf("%w: cannot marshal %s", ErrType, v.Type)
}

func (v *Value) UnmarshalJSON(d []byte) error {
	d = bytes.TrimSpace(d)
	if len(d) > 0 && d[0] == '{' {
		jv := &jsonValue{}
		if err := json.Unmarshal(d, jv); err != nil {
			return err
		}
		var res *Value
		switch {
		case jv.Float != "":
			switch jv.Float {
			case "inf":
				res = FromFloat(math.Inf(1))
			case "-inf":
				res = FromFloat(math.Inf(-1))
			case "nan":
				res = FromFloat(math.NaN())
			default:
				return fmt.Errorf("%w: unknown float %q", ErrType, jv.Float)
			}
		case jv.Value != nil:
			res = &Value{}
			if err := res.unmarshalScalar(*jv.Value); err != nil {
				return err
			}
		default:
			res = Null()
		}
		res.Annotation = jv.Annotation
		*v = *res
		return nil
	}
	return v.unmarshalScalar(d)
}

func (v *Value) unmarshalScalar(d []byte) error {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}
	switch y := x.(type) {
	case nil:
		*v = *Null()
	case bool:
		*v = *FromBool(y)
	case string:
		*v = *FromString(y)
	case json.Number:
		n, err := ParseNumber(string(y))
		if err != nil {
			return err
		}
		n.Literal = ""
		*v = *n
	default:
		return fmt.Errorf("%w: %T is not a scalar", ErrType, x)
	}
	return nil
}

type jsonNode struct {
	Annotation *string          `json:"annotation,omitempty"`
	Name       string           `json:"name"`
	Args       []*Value         `json:"args,omitempty"`
	Props      *json.RawMessage `json:"props,omitempty"`
	Children   *[]*Node         `json:"children,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	jn := &jsonNode{
		Annotation: n.Annotation,
		Name:       n.Name,
		Args:       n.Args,
	}
	if len(n.Props) > 0 {
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, p := range n.Props {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(p.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(k)
			buf.WriteByte(':')
			d, err := p.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(d)
		}
		buf.WriteByte('}')
		raw := json.RawMessage(buf.Bytes())
		jn.Props = &raw
	}
	if n.Children != nil {
		jn.Children = &n.Children
	}
	return json.Marshal(jn)
}

func (n *Node) UnmarshalJSON(d []byte) error {
	jn := &jsonNode{}
	if err := json.Unmarshal(d, jn); err != nil {
		return err
	}
	res := Node{Annotation: jn.Annotation, Name: jn.Name, Args: jn.Args}
	for i, a := range res.Args {
		// encoding/json leaves a nil pointer for a JSON null.
		if a == nil {
			res.Args[i] = Null()
		}
	}
	if jn.Props != nil {
		if err := res.unmarshalProps(*jn.Props); err != nil {
			return err
		}
	}
	if jn.Children != nil {
		res.Children = *jn.Children
		if res.Children == nil {
			res.Children = []*Node{}
		}
	}
	*n = res
	return nil
}

// unmarshalProps decodes a JSON object token by token to keep its key
// order. Duplicate keys follow SetProp.
func (n *Node) unmarshalProps(d []byte) error {
	dec := json.NewDecoder(bytes.NewReader(d))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: props must be an object", ErrType)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		v := &Value{}
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("property %q: %w", key, err)
		}
		n.SetProp(key, v)
	}
	_, err = dec.Token()
	return err
}

type jsonDocument struct {
	Nodes []*Node `json:"nodes"`
}

func (d *Document) MarshalJSON() ([]byte, error) {
	nodes := d.Nodes
	if nodes == nil {
		nodes = []*Node{}
	}
	return json.Marshal(&jsonDocument{Nodes: nodes})
}

func (d *Document) UnmarshalJSON(data []byte) error {
	jd := &jsonDocument{}
	if err := json.Unmarshal(data, jd); err != nil {
		return err
	}
	d.Nodes = jd.Nodes
	return nil
}

// ToJSON renders d in its JSON form.
func ToJSON(d *Document) ([]byte, error) {
	return json.Marshal(d)
}

// FromJSON reads a document from its JSON form.
func FromJSON(data []byte) (*Document, error) {
	d := &Document{}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, err
	}
	return d, nil
}
