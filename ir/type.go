package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	IntegerType
	FloatType
	StringType
)

func (t Type) String() string {
	d, err := t.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (t Type) MarshalText() ([]byte, error) {
	switch t {
	case NullType:
		return []byte("null"), nil
	case BoolType:
		return []byte("bool"), nil
	case IntegerType:
		return []byte("integer"), nil
	case FloatType:
		return []byte("float"), nil
	case StringType:
		return []byte("string"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a type>", t)
	}
}

func (t *Type) UnmarshalText(d []byte) error {
	pt, ok := map[string]Type{
		"null":    NullType,
		"bool":    BoolType,
		"integer": IntegerType,
		"float":   FloatType,
		"string":  StringType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unknown type %q", d)
	}
	*t = pt
	return nil
}

func (t Type) IsNumber() bool {
	return t == IntegerType || t == FloatType
}
