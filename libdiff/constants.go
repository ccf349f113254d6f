package libdiff

import "fmt"

type Op int

const (
	Delete Op = iota
	Insert
	Modify
)

func (o Op) String() string {
	d, err := o.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (o Op) MarshalText() ([]byte, error) {
	switch o {
	case Delete:
		return []byte("delete"), nil
	case Insert:
		return []byte("insert"), nil
	case Modify:
		return []byte("modify"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a diff op>", o)
	}
}

func (o *Op) UnmarshalText(d []byte) error {
	po, ok := map[string]Op{
		"delete": Delete,
		"insert": Insert,
		"modify": Modify,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unknown diff op %q", d)
	}
	*o = po
	return nil
}
