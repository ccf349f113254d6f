package libdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/go-kdl/encode"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/parse"
)

func mustParse(t *testing.T, s string) *ir.Document {
	t.Helper()
	doc, err := parse.ParseString(s)
	if err != nil {
		t.Fatalf("%q: %v", s, err)
	}
	return doc
}

type changeSum struct {
	Op   string
	Path string
}

func sums(cs []*Change) []changeSum {
	res := make([]changeSum, len(cs))
	for i, c := range cs {
		res[i] = changeSum{Op: c.Op.String(), Path: c.Path()}
	}
	return res
}

func TestDiff(t *testing.T) {
	tests := []struct {
		from, to string
		want     []changeSum
	}{
		{from: "a 1\nb 2", to: "a 1\nb 2", want: []changeSum{}},
		{from: "a 1\nb 2", to: "b 2", want: []changeSum{{"delete", "a[0]"}}},
		{
			from: "a 1\nb 2\nc {\n d 1\n}",
			to:   "a 1\nb 3\nc {\n d 2\n e\n}\nf",
			want: []changeSum{
				{"modify", "b[1]"},
				{"insert", "f[3]"},
				{"modify", "c[2]/d[0]"},
				{"insert", "c[2]/e[1]"},
			},
		},
		{from: "a", to: "a {}", want: []changeSum{{"modify", "a[0]"}}},
		{from: "a", to: "(t)a", want: []changeSum{{"delete", "a[0]"}, {"insert", "a[0]"}}},
	}
	for _, test := range tests {
		got := sums(Diff(mustParse(t, test.from), mustParse(t, test.to)))
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%q -> %q: %s", test.from, test.to, diff)
		}
	}
}

func TestReverse(t *testing.T) {
	from := mustParse(t, "a 1\nb 2")
	to := mustParse(t, "b 3\nc")
	got := sums(Reverse(Diff(from, to)))
	want := []changeSum{{"insert", "a[0]"}, {"modify", "b[0]"}, {"delete", "c[1]"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
}

func TestToDocument(t *testing.T) {
	cs := Diff(mustParse(t, "a 1\nb 2 {\n c\n}"), mustParse(t, "b 3 {\n c\n}"))
	want := "delete \"a[0]\" {\n    a 1\n}\nmodify \"b[1]\" {\n    b 2\n    b 3\n}"
	if got := encode.MustString(ToDocument(cs)); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestLines(t *testing.T) {
	got, differs := Lines("a\nb\nc\n", "a\nx\nc\n")
	if !differs {
		t.Error("expected a difference")
	}
	if want := " a\n-b\n+x\n c\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if _, differs := Lines("a\n", "a\n"); differs {
		t.Error("expected no difference")
	}
}
