package ir

// Marshaller is implemented by types which render themselves as a node.
type Marshaller interface {
	MarshalKDL() (*Node, error)
}

type DocumentMarshaller interface {
	MarshalKDLDocument() (*Document, error)
}

// Unmarshaller is implemented by types which read themselves from a
// node.
type Unmarshaller interface {
	UnmarshalKDL(n *Node) error
}

type DocumentUnmarshaller interface {
	UnmarshalKDLDocument(d *Document) error
}

// MarshalNodes appends the nodes of ms to d.
func (d *Document) MarshalNodes(ms ...Marshaller) error {
	nodes, err := marshalAll(ms)
	if err != nil {
		return err
	}
	d.Nodes = append(d.Nodes, nodes...)
	return nil
}

// MarshalChildren appends the nodes of ms to the children of n,
// creating the children block if needed.
func (n *Node) MarshalChildren(ms ...Marshaller) error {
	nodes, err := marshalAll(ms)
	if err != nil {
		return err
	}
	n.AddChild(nodes...)
	return nil
}

func marshalAll(ms []Marshaller) ([]*Node, error) {
	res := make([]*Node, 0, len(ms))
	for _, m := range ms {
		n, err := m.MarshalKDL()
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

type unmarshaller[T any] interface {
	*T
	Unmarshaller
}

// UnmarshalAll decodes each node into a new T, stopping at the first
// error.
func UnmarshalAll[T any, U unmarshaller[T]](nodes []*Node) ([]*T, error) {
	res := make([]*T, 0, len(nodes))
	for _, n := range nodes {
		x := new(T)
		if err := U(x).UnmarshalKDL(n); err != nil {
			return nil, err
		}
		res = append(res, x)
	}
	return res, nil
}
