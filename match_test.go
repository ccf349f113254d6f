package kdl

import (
	"testing"

	"github.com/signadot/go-kdl/encode"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/parse"
)

type matchTest struct {
	in    string
	match string
	res   bool
}

var matchTests = []matchTest{
	{in: `a 1`, match: `a 1`, res: true},
	{in: `a 0`, match: `a 1`, res: false},
	{in: `a 1 2`, match: `a 1`, res: true},
	{in: `a 1`, match: `a 1 2`, res: false},
	{in: `a 1`, match: `b 1`, res: false},
	{in: `a x=1 y=2`, match: `a y=2`, res: true},
	{in: `a y=2`, match: `a x=1 y=2`, res: false},
	{in: `a "anything"`, match: `a #null`, res: true},
	{in: `a x="anything"`, match: `a x=#null`, res: true},
	{in: `a`, match: `a x=#null`, res: false},
	{in: `(t)a`, match: `a`, res: true},
	{in: `a`, match: `(t)a`, res: false},
	{in: "a {\n b 1\n c 2\n}", match: "a {\n c 2\n}", res: true},
	{in: "a {\n b 1\n c 2\n}", match: "a {\n c 2\n b 1\n}", res: false},
	{in: "a {\n b 1\n b 2\n}", match: "a {\n b 1\n b 2\n}", res: true},
	{in: "a {\n b 1\n}", match: "a {\n b 1\n b 1\n}", res: false},
	{in: `a 1.0`, match: `a 1`, res: false},
}

func parseNode(t *testing.T, s string) *ir.Node {
	t.Helper()
	doc, err := parse.ParseString(s)
	if err != nil {
		t.Fatalf("%q: %v", s, err)
	}
	return doc.Nodes[0]
}

func TestMatch(t *testing.T) {
	for _, test := range matchTests {
		res := Match(parseNode(t, test.in), parseNode(t, test.match))
		if res != test.res {
			t.Errorf("match %q against %q: got %t", test.in, test.match, res)
		}
	}
}

func TestTrim(t *testing.T) {
	in := parseNode(t, "a 1 2 x=1 y=2 {\n b 1 {\n  d\n }\n c 2\n}")
	pat := parseNode(t, "a #null y=#null {\n b\n}")
	if !Match(in, pat) {
		t.Fatal("expected match")
	}
	got := encode.NodeString(Trim(pat, in))
	want := "a 1 y=2 {\n    b\n}"
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestMatchDocument(t *testing.T) {
	doc, err := parse.ParseString("a 1\nb 2\na 3\nc")
	if err != nil {
		t.Fatal(err)
	}
	pat, err := parse.ParseString("a\nc")
	if err != nil {
		t.Fatal(err)
	}
	res := MatchDocument(doc, pat, false)
	if len(res) != 3 || res[0].Name != "a" || res[1].Name != "a" || res[2].Name != "c" {
		t.Errorf("got %v", res)
	}
}
