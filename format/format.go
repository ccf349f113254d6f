package format

import (
	"errors"
	"fmt"
)

// Format is an output representation of a KDL document.
type Format int

const (
	KDLFormat Format = iota
	JSONFormat
	YAMLFormat
	SExprFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"k":     KDLFormat,
		"kdl":   KDLFormat,
		"j":     JSONFormat,
		"json":  JSONFormat,
		"y":     YAMLFormat,
		"yaml":  YAMLFormat,
		"s":     SExprFormat,
		"sexp":  SExprFormat,
		"sexpr": SExprFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case KDLFormat:
		return []byte("kdl"), nil
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case SExprFormat:
		return []byte("sexp"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case KDLFormat:
		return ".kdl"
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	case SExprFormat:
		return ".sexp"
	default:
		return ""
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{KDLFormat, JSONFormat, YAMLFormat, SExprFormat}
}
