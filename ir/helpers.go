package ir

import (
	"fmt"
	"math"
	"math/big"
)

// Key selects an argument (by index) or a property (by name).
type Key interface{ ~string | ~int }

// Get looks up an argument or property of n and converts it with fn.
// A missing key yields an error wrapping ErrNotFound.
func Get[K Key, R any](n *Node, key K, fn func(*Value) (R, error)) (R, error) {
	var zero R
	if n == nil {
		return zero, fmt.Errorf("get on nil node: %w", ErrNotFound)
	}
	switch k := any(key).(type) {
	case string:
		v := n.Prop(k)
		if v == nil {
			return zero, fmt.Errorf("property %q of %s: %w", k, n.Name, ErrNotFound)
		}
		return fn(v)
	case int:
		if k < 0 || k >= len(n.Args) {
			return zero, fmt.Errorf("argument %d of %s: %w", k, n.Name, ErrNotFound)
		}
		return fn(n.Args[k])
	}
	panic(fmt.Sprintf("ir.Get: key type %T", key))
}

// Set assigns an argument or property of n. Setting an argument past
// the end pads the arguments with nulls.
func Set[K Key](n *Node, key K, v *Value) error {
	if n == nil {
		return fmt.Errorf("set on nil node")
	}
	switch k := any(key).(type) {
	case string:
		n.SetProp(k, v)
	case int:
		if k < 0 {
			return fmt.Errorf("invalid argument index %d", k)
		}
		for len(n.Args) <= k {
			n.Args = append(n.Args, Null())
		}
		n.Args[k] = v
	default:
		panic(fmt.Sprintf("ir.Set: key type %T", key))
	}
	return nil
}

// GetKV converts the first argument of the first child of n named
// name, the usual shape of a "key value" line.
func GetKV[R any](n *Node, name string, fn func(*Value) (R, error)) (R, error) {
	var zero R
	if n == nil {
		return zero, fmt.Errorf("child %q of nil node: %w", name, ErrNotFound)
	}
	c := n.Child(name)
	if c == nil {
		return zero, fmt.Errorf("child %q of %s: %w", name, n.Name, ErrNotFound)
	}
	if len(c.Args) == 0 {
		return zero, fmt.Errorf("argument of %s.%s: %w", n.Name, name, ErrNotFound)
	}
	return fn(c.Args[0])
}

// CastAll converts each of vs with fn.
func CastAll[T any](vs []*Value, fn func(*Value) (T, error)) ([]T, error) {
	res := make([]T, 0, len(vs))
	for i, v := range vs {
		x, err := fn(v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		res = append(res, x)
	}
	return res, nil
}

// AsPointer lifts a conversion to one that returns a pointer.
func AsPointer[T any](fn func(*Value) (T, error)) func(*Value) (*T, error) {
	return func(v *Value) (*T, error) {
		x, err := fn(v)
		if err != nil {
			return nil, err
		}
		return &x, nil
	}
}

func typeErr(v *Value, want Type) error {
	if v == nil {
		return fmt.Errorf("%w: nil value, want %s", ErrType, want)
	}
	return fmt.Errorf("%w: %s value, want %s", ErrType, v.Type, want)
}

func AsString(v *Value) (string, error) {
	if v == nil || v.Type != StringType {
		return "", typeErr(v, StringType)
	}
	return v.String, nil
}

func AsBool(v *Value) (bool, error) {
	if v == nil || v.Type != BoolType {
		return false, typeErr(v, BoolType)
	}
	return v.Bool, nil
}

func AsNull(v *Value) (struct{}, error) {
	if v == nil || v.Type != NullType {
		return struct{}{}, typeErr(v, NullType)
	}
	return struct{}{}, nil
}

func AsInt64(v *Value) (int64, error) {
	if v == nil || v.Type != IntegerType {
		return 0, typeErr(v, IntegerType)
	}
	if v.Int64 == nil {
		return 0, fmt.Errorf("%w: %s exceeds int64", ErrOverflow, v.Big())
	}
	return *v.Int64, nil
}

func AsInt(v *Value) (int, error) {
	i, err := AsInt64(v)
	if err != nil {
		return 0, err
	}
	if i > math.MaxInt || i < math.MinInt {
		return 0, fmt.Errorf("%w: %d exceeds int", ErrOverflow, i)
	}
	return int(i), nil
}

func AsBigInt(v *Value) (*big.Int, error) {
	if v == nil || v.Type != IntegerType {
		return nil, typeErr(v, IntegerType)
	}
	return new(big.Int).Set(v.Big()), nil
}

// AsFloat64 accepts floats and integers; integers are converted with
// rounding.
func AsFloat64(v *Value) (float64, error) {
	if v == nil {
		return 0, typeErr(v, FloatType)
	}
	switch v.Type {
	case FloatType:
		return *v.Float64, nil
	case IntegerType:
		if v.Int64 != nil {
			return float64(*v.Int64), nil
		}
		f, _ := new(big.Float).SetInt(v.BigInt).Float64()
		return f, nil
	}
	return 0, typeErr(v, FloatType)
}

// AsBigFloat accepts finite floats and integers.
func AsBigFloat(v *Value) (*big.Float, error) {
	if v == nil {
		return nil, typeErr(v, FloatType)
	}
	switch v.Type {
	case FloatType:
		if !v.IsFinite() {
			return nil, fmt.Errorf("%w: %s has no big.Float form", ErrUnrepresentable, v.Text())
		}
		return big.NewFloat(*v.Float64), nil
	case IntegerType:
		return new(big.Float).SetInt(v.Big()), nil
	}
	return nil, typeErr(v, FloatType)
}
