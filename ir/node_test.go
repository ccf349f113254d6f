package ir

import (
	"errors"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sample() *Document {
	a := NewNode("a").AddArg(FromInt(1), FromString("x"))
	a.SetProp("k", FromBool(true))
	a.NewChild("b").NewChild("c").AddArg(Null())
	a.NewChild("b2")
	d := NewNode("d").WithAnnotation("t")
	d.AddChild()
	return NewDocument(a, d)
}

func TestSetProp(t *testing.T) {
	n := NewNode("node")
	n.SetProp("prop", FromInt(1))
	n.SetProp("other", FromInt(3))
	n.SetProp("prop", FromInt(2))
	if len(n.Props) != 2 {
		t.Fatalf("got %d props", len(n.Props))
	}
	if n.Props[0].Key != "prop" || *n.Prop("prop").Int64 != 2 {
		t.Errorf("prop: got %s=%s", n.Props[0].Key, n.Props[0].Value.Text())
	}
	if !n.DelProp("prop") || n.Prop("prop") != nil || n.DelProp("prop") {
		t.Errorf("delete failed")
	}
}

func TestWalk(t *testing.T) {
	var got []string
	err := sample().Walk(func(n *Node, parents []*Node) error {
		var names []string
		for _, p := range parents {
			names = append(names, p.Name)
		}
		got = append(got, strings.Join(append(names, n.Name), "/"))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "a/b", "a/b/c", "a/b2", "d"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("walk (-want +got):\n%s", diff)
	}

	got = nil
	sample().Walk(func(n *Node, _ []*Node) error {
		got = append(got, n.Name)
		if n.Name == "b" {
			return SkipChildren
		}
		return nil
	})
	if diff := cmp.Diff([]string{"a", "b", "b2", "d"}, got); diff != "" {
		t.Errorf("skip (-want +got):\n%s", diff)
	}

	stop := errors.New("stop")
	if err := sample().Walk(func(*Node, []*Node) error { return stop }); err != stop {
		t.Errorf("got %v", err)
	}
}

func TestCloneEqual(t *testing.T) {
	d := sample()
	c := d.Clone()
	if !d.Equal(c) {
		t.Fatal("clone not equal")
	}
	if c.Nodes[1].Children == nil {
		t.Errorf("empty children block lost")
	}
	c.Nodes[0].Children[0].Children[0].Args[0] = FromInt(0)
	if d.Equal(c) {
		t.Errorf("clone shares values")
	}
	if d.Nodes[0].Children[0].Children[0].Args[0].Type != NullType {
		t.Errorf("original modified")
	}

	c = d.Clone()
	c.Nodes[1].Children = nil
	if d.Equal(c) {
		t.Errorf("empty block and no block compare equal")
	}
}

func TestNodeEqualProps(t *testing.T) {
	a := NewNode("n").SetProp("x", FromInt(1)).SetProp("y", FromInt(2))
	b := NewNode("n").SetProp("y", FromInt(2)).SetProp("x", FromInt(1))
	if !a.Equal(b) {
		t.Errorf("property order should not matter")
	}
	if a.Hash() != b.Hash() {
		t.Errorf("hash depends on property order")
	}
	b.SetProp("x", FromString("1"))
	if a.Equal(b) {
		t.Errorf("different values compare equal")
	}
}

func TestValueEqual(t *testing.T) {
	lit, err := ParseNumber("0x10")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		a, b *Value
		eq   bool
	}{
		{"literal ignored", lit, FromInt(16), true},
		{"big vs small", &Value{Type: IntegerType, BigInt: big.NewInt(5)}, FromInt(5), true},
		{"nan", FromFloat(math.NaN()), FromFloat(math.NaN()), true},
		{"zero sign", FromFloat(0), FromFloat(math.Copysign(0, -1)), true},
		{"int vs float", FromInt(1), FromFloat(1), false},
		{"annotation", FromInt(1).WithAnnotation("u8"), FromInt(1), false},
		{"same annotation", FromString("a").WithAnnotation("t"), FromString("a").WithAnnotation("t"), true},
		{"null", Null(), Null(), true},
	}
	for _, test := range tests {
		if got := test.a.Equal(test.b); got != test.eq {
			t.Errorf("%s: equal %t", test.name, got)
		}
		if test.eq && test.a.Hash() != test.b.Hash() {
			t.Errorf("%s: hashes differ", test.name)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Value
		expected int
	}{
		{"Null < Bool", Null(), FromBool(false), -1},
		{"Bool < Integer", FromBool(true), FromInt(0), -1},
		{"Integer < Float", FromInt(10), FromFloat(1), -1},
		{"Float < String", FromFloat(1), FromString(""), -1},
		{"false < true", FromBool(false), FromBool(true), -1},
		{"Int < Int", FromInt(-1), FromInt(2), -1},
		{"Big > Int", FromBigInt(new(big.Int).Lsh(big.NewInt(1), 70)), FromInt(math.MaxInt64), 1},
		{"Float == Float", FromFloat(2.5), FromFloat(2.5), 0},
		{"String > String", FromString("b"), FromString("a"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare = %d, want %d", got, tt.expected)
			}
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("reverse Compare = %d, want %d", got, -tt.expected)
			}
		})
	}
}

func TestDeepClone(t *testing.T) {
	root := NewNode("n")
	n := root
	for range 10000 {
		n = n.NewChild("n")
	}
	c := root.Clone()
	if !root.Equal(c) {
		t.Errorf("deep clone not equal")
	}
	depth := 0
	Walk([]*Node{c}, func(_ *Node, parents []*Node) error {
		depth = max(depth, len(parents))
		return nil
	})
	if depth != 10000 {
		t.Errorf("depth %d", depth)
	}
}
