package encode

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/signadot/go-kdl/format"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/parse"
	"github.com/signadot/go-kdl/stream"
)

func TestCanonicalRoundTrip(t *testing.T) {
	tests := []struct {
		in string
		v  format.Version
	}{
		{in: "node 1 \"two\" key=#true\n"},
		{in: "(t)node (u8)0xff k=(s)\"x\" {\n    child\n}\n"},
		{in: "a {}\nb\n"},
		{in: "a 1.5 2.0E+20 1_000 #inf #-inf #nan #null #false\n"},
		{in: "\"two words\" \"a\\nb\" bare #\"x\"y\"#\n"},
		{in: "a {\n    b {\n        c 1\n    }\n    d\n}\n"},
		{in: "node z=1 a=2\n"},
		{in: "node true null 1 \"x\" {\n    child\n}\n", v: format.V1},
		{in: "node r#\"a\\b\"# 0o17\n", v: format.V1},
	}
	for _, test := range tests {
		doc, err := parse.ParseString(test.in, parse.ParseVersion(test.v))
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		buf := bytes.NewBuffer(nil)
		if err := Encode(doc, buf, EncodeVersion(test.v)); err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if buf.String() != test.in {
			t.Errorf("got\n%s\nwant\n%s", buf.String(), test.in)
		}
	}
}

func sampleDoc() *ir.Document {
	return ir.NewDocument(
		ir.NewNode("server").AddArg(ir.FromString("alpha"), ir.Null()).
			SetProp("port", ir.FromInt(8080)).
			SetProp("ratio", ir.FromFloat(0.25)).
			AddChild(
				ir.NewNode("two words").AddArg(ir.FromFloat(1)),
				ir.NewNode("empty").AddChild(),
				ir.NewNode("tls").WithAnnotation("opt").
					AddArg(ir.FromBool(true).WithAnnotation("flag")),
			),
		ir.NewNode("big").AddArg(ir.FromFloat(1e20), ir.FromFloat(1e-7), ir.FromString("#x")),
	)
}

func TestEncode(t *testing.T) {
	want := `server "alpha" #null port=8080 ratio=0.25 {
    "two words" 1.0
    empty {}
    (opt)tls (flag)#true
}
big 1.0E+20 1.0E-7 "#x"`
	got := MustString(sampleDoc())
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeOptions(t *testing.T) {
	doc := sampleDoc()
	doc.Nodes = doc.Nodes[:1]
	want := `server "alpha" null port=8080 ratio=0.25 {
  "two words" 1.0
  empty
  (opt)tls (flag)true
}`
	got := MustString(doc, EncodeVersion(format.V1), Indent(2), EmitEmptyChildren(false))
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestSortProps(t *testing.T) {
	doc, err := parse.ParseString("n z=1 a=2 m=3 {\n    c y=1 b=2\n}")
	if err != nil {
		t.Fatal(err)
	}
	want := "n a=2 m=3 z=1 {\n    c b=2 y=1\n}"
	if got := MustString(doc, SortProps(true)); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	if got := MustString(doc); got != "n z=1 a=2 m=3 {\n    c y=1 b=2\n}" {
		t.Errorf("document order lost: %s", got)
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		in        string
		from, to  format.Version
		literals  bool
		canonical string
	}{
		{"n 0xff 1.50 1e3", format.V2, format.V2, true, "n 0xff 1.50 1e3"},
		{"n 0xff 1.50 1e3", format.V2, format.V2, false, "n 255 1.5 1000.0"},
		{"n bare #\"raw\"#", format.V2, format.V1, true, `n "bare" "raw"`},
		{"n r\"raw\" true", format.V1, format.V2, true, `n "raw" #true`},
		{"n \"\"\"\n  a\n  b\n  \"\"\"", format.V2, format.V2, true, "n \"\"\"\n  a\n  b\n  \"\"\""},
		{"n \"\"\"\n  a\n  b\n  \"\"\"", format.V2, format.V1, true, `n "a\nb"`},
		{`n "\u{41}"`, format.V2, format.V2, false, `n "A"`},
	}
	for _, test := range tests {
		doc, err := parse.ParseString(test.in, parse.ParseVersion(test.from))
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		got := MustString(doc, EncodeVersion(test.to), EncodeLiterals(test.literals))
		if got != test.canonical {
			t.Errorf("%q: got %s want %s", test.in, got, test.canonical)
		}
	}
}

func TestModifiedLiteral(t *testing.T) {
	doc, err := parse.ParseString("n 0x10")
	if err != nil {
		t.Fatal(err)
	}
	v := doc.Nodes[0].Args[0]
	*v.Int64 = 17
	if got := MustString(doc); got != "n 17" {
		t.Errorf("stale literal: %s", got)
	}
}

func TestProgrammaticRoundTrip(t *testing.T) {
	doc := sampleDoc()
	doc.Nodes[1].AddArg(ir.FromFloat(math.Inf(-1)), ir.FromFloat(math.Copysign(0, -1)))
	text := MustString(doc)
	back, err := parse.ParseString(text)
	if err != nil {
		t.Fatalf("%s: %v", text, err)
	}
	if !back.Equal(doc) {
		t.Errorf("round trip changed document:\n%s\n%s", text, MustString(back))
	}
}

func TestUnrepresentable(t *testing.T) {
	doc := ir.NewDocument(ir.NewNode("n").AddArg(ir.FromFloat(math.NaN())))
	err := Encode(doc, io.Discard, EncodeVersion(format.V1))
	if !errors.Is(err, ir.ErrUnrepresentable) {
		t.Fatalf("got %v", err)
	}
	var ve *ir.ValueError
	if !errors.As(err, &ve) {
		t.Errorf("%T is not a *ir.ValueError", err)
	}
}

func TestShortWrite(t *testing.T) {
	w := stream.WriteFunc(func(p []byte) int {
		return len(p) / 2
	})
	err := Encode(sampleDoc(), w)
	var ioe *stream.IOError
	if !errors.As(err, &ioe) {
		t.Fatalf("got %v", err)
	}
	if !errors.Is(err, io.ErrShortWrite) || ioe.Op != "write" || ioe.Offset != 0 {
		t.Errorf("got %#v", ioe)
	}
}

func TestEncoderEvents(t *testing.T) {
	doc, err := parse.ParseString("a 1 {\n    b k=\"v\"\n}\nc")
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	enc := NewEncoder(buf)
	p := parse.NewParser(strings.NewReader("a 1 {\n    b k=\"v\"\n}\nc"))
	if err := stream.Copy(enc, p); err != nil {
		t.Fatal(err)
	}
	if err := enc.Flush(); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), MustString(doc)+"\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestEncoderOrder(t *testing.T) {
	enc := NewEncoder(io.Discard)
	err := enc.WriteEvent(&stream.Event{Type: stream.EventArgument, Value: ir.FromInt(1)})
	if !errors.Is(err, stream.ErrEventOrder) {
		t.Errorf("got %v", err)
	}
	enc = NewEncoder(io.Discard)
	if err := enc.WriteEvent(&stream.Event{Type: stream.EventBeginNode, Name: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := enc.Flush(); !errors.Is(err, stream.ErrIncomplete) {
		t.Errorf("got %v", err)
	}
}

func TestSExpr(t *testing.T) {
	doc, err := parse.ParseString("(t)a 1 k=(s)\"v\" {\n    b #null\n}\nc 1.5")
	if err != nil {
		t.Fatal(err)
	}
	want := `(document
  (node "a" (type "t") (argument (integer 1)) (property "k" (type "s") (string "v"))
    (children
      (node "b" (argument (null)))))
  (node "c" (argument (float 1.5))))
`
	buf := bytes.NewBuffer(nil)
	if err := SExpr(doc, buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != want {
		t.Errorf("got\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestColors(t *testing.T) {
	doc := ir.NewDocument(ir.NewNode("n").AddArg(ir.FromInt(1)))
	c := &Colors{
		Default: colorDefault,
		Map: map[Colorable]func(string, ...any) string{
			{Type: ir.IntegerType, Attr: ValueColor}: func(s string, _ ...any) string { return "<" + s + ">" },
		},
	}
	if got := MustString(doc, EncodeColors(c)); got != "n <1>" {
		t.Errorf("got %s", got)
	}
	if got := MustString(doc, EncodeColors(c), EncodeColors(nil)); got != "n 1" {
		t.Errorf("got %s", got)
	}
}
