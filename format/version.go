package format

import (
	"errors"
	"fmt"
)

// Version selects the KDL syntax revision.
type Version int

const (
	// Auto detects the version: a leading `/- kdl-version N` node
	// decides, otherwise KDL 2 is tried first and KDL 1 second.
	Auto Version = iota
	V1
	V2
)

var ErrBadVersion = errors.New("bad kdl version")

func ParseVersion(v string) (Version, error) {
	x, ok := map[string]Version{
		"":     Auto,
		"auto": Auto,
		"1":    V1,
		"v1":   V1,
		"2":    V2,
		"v2":   V2,
	}[v]
	if ok {
		return x, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadVersion, v)
}

func (v Version) String() string {
	d, err := v.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (v Version) MarshalText() ([]byte, error) {
	switch v {
	case Auto:
		return []byte("auto"), nil
	case V1:
		return []byte("1"), nil
	case V2:
		return []byte("2"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a kdl version>", v)
	}
}

func (v *Version) UnmarshalText(d []byte) error {
	pv, err := ParseVersion(string(d))
	if err != nil {
		return err
	}
	*v = pv
	return nil
}

// Resolve returns v, or V2 when v is Auto.
func (v Version) Resolve() Version {
	if v == Auto {
		return V2
	}
	return v
}

func (v Version) IsV1() bool { return v == V1 }
func (v Version) IsV2() bool { return v == V2 }
