package ir

import (
	"fmt"
	"math"
	"math/big"
)

// Value is a KDL scalar: an argument or property value. Which of the
// value fields is meaningful depends on Type.
type Value struct {
	Type       Type
	Annotation *string

	String  string
	Bool    bool
	Int64   *int64
	BigInt  *big.Int
	Float64 *float64

	// Literal is the source text the value was parsed from, if any.
	// It is formatting only and does not take part in equality.
	Literal string
}

func Null() *Value {
	return &Value{Type: NullType}
}

func FromString(s string) *Value {
	return &Value{Type: StringType, String: s}
}

func FromBool(b bool) *Value {
	return &Value{Type: BoolType, Bool: b}
}

func FromInt(i int64) *Value {
	return &Value{Type: IntegerType, Int64: &i}
}

// FromBigInt returns an integer value, stored as an int64 when it fits.
func FromBigInt(b *big.Int) *Value {
	if b.IsInt64() {
		return FromInt(b.Int64())
	}
	return &Value{Type: IntegerType, BigInt: new(big.Int).Set(b)}
}

func FromFloat(f float64) *Value {
	return &Value{Type: FloatType, Float64: &f}
}

// FromAny wraps a Go scalar as a value.
func FromAny(x any) (*Value, error) {
	switch v := x.(type) {
	case nil:
		return Null(), nil
	case *Value:
		return v, nil
	case Value:
		return &v, nil
	case string:
		return FromString(v), nil
	case bool:
		return FromBool(v), nil
	case int:
		return FromInt(int64(v)), nil
	case int8:
		return FromInt(int64(v)), nil
	case int16:
		return FromInt(int64(v)), nil
	case int32:
		return FromInt(int64(v)), nil
	case int64:
		return FromInt(v), nil
	case uint:
		return FromBigInt(new(big.Int).SetUint64(uint64(v))), nil
	case uint8:
		return FromInt(int64(v)), nil
	case uint16:
		return FromInt(int64(v)), nil
	case uint32:
		return FromInt(int64(v)), nil
	case uint64:
		return FromBigInt(new(big.Int).SetUint64(v)), nil
	case float32:
		return FromFloat(float64(v)), nil
	case float64:
		return FromFloat(v), nil
	case *big.Int:
		return FromBigInt(v), nil
	case *big.Float:
		f, _ := v.Float64()
		return FromFloat(f), nil
	default:
		return nil, fmt.Errorf("%w: cannot make a value from %T", ErrType, x)
	}
}

func (v *Value) WithAnnotation(a string) *Value {
	v.Annotation = &a
	return v
}

func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	res := *v
	if v.Annotation != nil {
		a := *v.Annotation
		res.Annotation = &a
	}
	if v.Int64 != nil {
		i := *v.Int64
		res.Int64 = &i
	}
	if v.Float64 != nil {
		f := *v.Float64
		res.Float64 = &f
	}
	if v.BigInt != nil {
		res.BigInt = new(big.Int).Set(v.BigInt)
	}
	return &res
}

// Big returns an integer value as a big.Int.
func (v *Value) Big() *big.Int {
	switch {
	case v.BigInt != nil:
		return v.BigInt
	case v.Int64 != nil:
		return big.NewInt(*v.Int64)
	}
	return new(big.Int)
}

// IsFinite reports whether v is not a float infinity or NaN.
func (v *Value) IsFinite() bool {
	if v.Type != FloatType || v.Float64 == nil {
		return true
	}
	f := *v.Float64
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Any returns v as a plain Go value.
func (v *Value) Any() any {
	switch v.Type {
	case BoolType:
		return v.Bool
	case IntegerType:
		if v.Int64 != nil {
			return *v.Int64
		}
		return v.Big()
	case FloatType:
		if v.Float64 != nil {
			return *v.Float64
		}
		return 0.0
	case StringType:
		return v.String
	}
	return nil
}

// Text renders v for messages: numbers in canonical form, strings as
// they are.
func (v *Value) Text() string {
	switch v.Type {
	case NullType:
		return "null"
	case BoolType:
		if v.Bool {
			return "true"
		}
		return "false"
	case IntegerType:
		return v.Big().String()
	case FloatType:
		return FloatText(*v.Float64)
	}
	return v.String
}
