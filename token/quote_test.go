package token

import (
	"strings"
	"testing"

	"github.com/signadot/go-kdl/format"
)

func TestIsBareIdentifier(t *testing.T) {
	tests := []struct {
		in     string
		v      format.Version
		expect bool
	}{
		{"foo", format.V2, true},
		{"-foo", format.V2, true},
		{"foo-bar.baz", format.V2, true},
		{"été", format.V2, true},
		{"", format.V2, false},
		{"1abc", format.V2, false},
		{"-1", format.V2, false},
		{".5x", format.V2, false},
		{"a b", format.V2, false},
		{"a=b", format.V2, false},
		{"true", format.V2, false},
		{"inf", format.V2, false},
		{"inf", format.V1, true},
		{"#x", format.V2, false},
		{"#x", format.V1, true},
		{"r#x", format.V1, false},
		{"a,b", format.V1, false},
		{"a,b", format.V2, true},
	}
	for _, test := range tests {
		got := IsBareIdentifier(test.in, test.v)
		if got != test.expect {
			t.Errorf("%q (v%s): got %t", test.in, test.v, got)
		}
	}
}

func TestQuoteString(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"plain", `"plain"`},
		{"a\"b\\c", `"a\"b\\c"`},
		{"line\nnext\ttab", `"line\nnext\ttab"`},
		{"nel\u0085", `"nel\u{85}"`},
		{"\x01", `"\u{1}"`},
	}
	for _, test := range tests {
		got := QuoteString(test.in, format.V2)
		if got != test.out {
			t.Errorf("%q: got %s want %s", test.in, got, test.out)
		}
		toks, err := Tokenize(strings.NewReader(got))
		if err != nil {
			t.Errorf("%s: %v", got, err)
			continue
		}
		if toks[0].String() != test.in {
			t.Errorf("%s: decoded %q", got, toks[0].String())
		}
	}
}

func TestIdent(t *testing.T) {
	if got := Ident("node", format.V2); got != "node" {
		t.Errorf("got %s", got)
	}
	if got := Ident("two words", format.V2); got != `"two words"` {
		t.Errorf("got %s", got)
	}
}
