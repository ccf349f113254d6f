package format

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	for _, tc := range []struct {
		in string
		v  Version
	}{
		{"", Auto},
		{"auto", Auto},
		{"1", V1},
		{"v2", V2},
	} {
		v, err := ParseVersion(tc.in)
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if v != tc.v {
			t.Errorf("%q: got %s want %s", tc.in, v, tc.v)
		}
	}
	if _, err := ParseVersion("3"); !errors.Is(err, ErrBadVersion) {
		t.Errorf("expected ErrBadVersion, got %v", err)
	}
}

func TestVersionText(t *testing.T) {
	var v Version
	if err := v.UnmarshalText([]byte("1")); err != nil {
		t.Fatal(err)
	}
	d, err := v.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "1" {
		t.Errorf("got %q", d)
	}
	if Auto.Resolve() != V2 {
		t.Errorf("auto should resolve to v2")
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		pf, err := ParseFormat(f.String())
		if err != nil {
			t.Errorf("%s: %v", f, err)
			continue
		}
		if pf != f {
			t.Errorf("got %s want %s", pf, f)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}
