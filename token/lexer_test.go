package token

import (
	"errors"
	"strings"
	"testing"

	"github.com/signadot/go-kdl/format"
)

type lexTest struct {
	in    string
	v     format.Version
	types []TokenType
	texts []string
}

func TestLex(t *testing.T) {
	tests := []lexTest{
		{
			in:    `node 1 "two" key=#true`,
			types: []TokenType{TIdent, TNumber, TString, TIdent, TEquals, TKeyword, TEOF},
			texts: []string{"node", "1", "two", "key", "=", "#true", ""},
		},
		{
			in:    "a /* x /* nested */ y */ b // hi\nc",
			types: []TokenType{TIdent, TIdent, TNewline, TIdent, TEOF},
			texts: []string{"a", "b", "\n", "c", ""},
		},
		{
			in:    "a \\ // more\n  b",
			types: []TokenType{TIdent, TIdent, TEOF},
			texts: []string{"a", "b", ""},
		},
		{
			in:    `(u8)0xff_ff;`,
			types: []TokenType{TLParen, TIdent, TRParen, TNumber, TSemi, TEOF},
			texts: []string{"(", "u8", ")", "0xff_ff", ";", ""},
		},
		{
			in:    `#"a\nb"# ##"x"#y"##`,
			types: []TokenType{TString, TString, TEOF},
			texts: []string{`a\nb`, `x"#y`, ""},
		},
		{
			in:    "\"\"\"\n  foo\n    bar\n\n  \"\"\"",
			types: []TokenType{TString, TEOF},
			texts: []string{"foo\n  bar\n", ""},
		},
		{
			in:    "\"\"\"\n  a\\\nb\n  \"\"\"",
			types: []TokenType{TString, TEOF},
			texts: []string{"ab", ""},
		},
		{
			in:    "\"\"\"\n    x\\\"y \\\n  z\n    \"\"\"",
			types: []TokenType{TString, TEOF},
			texts: []string{"x\"y z", ""},
		},
		{
			in:    "#\"\"\"\n  \\n\n  \"\"\"#",
			types: []TokenType{TString, TEOF},
			texts: []string{`\n`, ""},
		},
		{
			in:    `"\u{1F600}\s\t\"\\"`,
			types: []TokenType{TString, TEOF},
			texts: []string{"\U0001F600 \t\"\\", ""},
		},
		{
			in:    "\"a\\   \n   b\"",
			types: []TokenType{TString, TEOF},
			texts: []string{"ab", ""},
		},
		{
			in:    "/-node {\r\n}",
			types: []TokenType{TSlashDash, TIdent, TLCurl, TNewline, TRCurl, TEOF},
			texts: []string{"/-", "node", "{", "\r\n", "}", ""},
		},
		{
			in:    "\ufeffnode #-inf #nan",
			types: []TokenType{TIdent, TKeyword, TKeyword, TEOF},
			texts: []string{"node", "#-inf", "#nan", ""},
		},
		{
			in:    `r#"x"y"# true "a/b\/c" a`,
			v:     format.V1,
			types: []TokenType{TString, TKeyword, TString, TIdent, TEOF},
			texts: []string{`x"y`, "true", "a/b/c", "a", ""},
		},
	}
	for i, test := range tests {
		toks, err := Tokenize(strings.NewReader(test.in), LexVersion(test.v))
		if err != nil {
			t.Errorf("%d: %q: %v", i, test.in, err)
			continue
		}
		if len(toks) != len(test.types) {
			t.Errorf("%d: got %d tokens want %d: %v", i, len(toks), len(test.types), toks)
			continue
		}
		for j, tok := range toks {
			if tok.Type != test.types[j] {
				t.Errorf("%d/%d: type %s want %s", i, j, tok.Type, test.types[j])
			}
			if tok.String() != test.texts[j] {
				t.Errorf("%d/%d: text %q want %q", i, j, tok.String(), test.texts[j])
			}
		}
	}
}

func TestLexSpace(t *testing.T) {
	toks, err := Tokenize(strings.NewReader(`a"b" c/*x*/d`))
	if err != nil {
		t.Fatal(err)
	}
	want := []bool{false, false, true, true}
	for i, w := range want {
		if toks[i].Space != w {
			t.Errorf("token %d (%s): space %t want %t", i, toks[i], toks[i].Space, w)
		}
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		in  string
		v   format.Version
		err error
	}{
		{`"abc`, format.V2, ErrUnterminated},
		{`"a\qb"`, format.V2, ErrEscape},
		{"\"a\nb\"", format.V2, ErrNewline},
		{`"\s"`, format.V1, ErrEscape},
		{`"\u{110000}"`, format.V2, ErrEscape},
		{`node true`, format.V2, ErrBareKeyword},
		{`#maybe`, format.V2, ErrKeyword},
		{`/* open /* */`, format.V2, ErrUnterminated},
		{`a \ b`, format.V2, ErrContinuation},
		{"a \xff", format.V2, ErrUTF8},
		{"a \u200e", format.V2, ErrDisallowed},
		{`"""x"""`, format.V2, ErrMultiline},
		{"\"\"\"\n foo\n  \"\"\"", format.V2, ErrMultiline},
		{"\"\"\"\n  foo \"\"\"", format.V2, ErrMultiline},
		{`#"abc"`, format.V2, ErrUnterminated},
		{`a [b]`, format.V2, ErrUnexpected},
		{`a <b>`, format.V1, ErrUnexpected},
	}
	for _, test := range tests {
		_, err := Tokenize(strings.NewReader(test.in), LexVersion(test.v))
		if err == nil {
			t.Errorf("%q: expected error", test.in)
			continue
		}
		if !errors.Is(err, test.err) {
			t.Errorf("%q: got %v want %v", test.in, err, test.err)
		}
		var le *LexError
		if !errors.As(err, &le) {
			t.Errorf("%q: %T is not a *LexError", test.in, err)
		}
	}
}

func TestLexPositions(t *testing.T) {
	toks, err := Tokenize(strings.NewReader("a\r\nbb ccc\n/*\n*/ d"))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string][2]int{
		"a":   {0, 0},
		"bb":  {1, 0},
		"ccc": {1, 3},
		"d":   {3, 3},
	}
	for _, tok := range toks {
		if tok.Type != TIdent {
			continue
		}
		w := want[tok.String()]
		l, c := tok.Pos.LineCol()
		if l != w[0] || c != w[1] {
			t.Errorf("%s: got %d:%d want %d:%d", tok, l, c, w[0], w[1])
		}
		if tok.Len != len(tok.String()) {
			t.Errorf("%s: len %d", tok, tok.Len)
		}
	}
}

func TestLexComments(t *testing.T) {
	toks, err := Tokenize(strings.NewReader("// a\nb /* c */ d"), LexComments(true))
	if err != nil {
		t.Fatal(err)
	}
	var types []TokenType
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	want := []TokenType{TComment, TNewline, TIdent, TComment, TIdent, TEOF}
	if len(types) != len(want) {
		t.Fatalf("got %v want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("%d: got %s want %s", i, types[i], want[i])
		}
	}
	if !toks[4].Space {
		t.Errorf("token after block comment should be preceded by space")
	}
}
