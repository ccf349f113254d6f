package ir

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"
)

func TestJSONForm(t *testing.T) {
	n := NewNode("a").AddArg(FromInt(1), FromFloat(1), Null())
	n.SetProp("z", FromString("v")).SetProp("b", FromInt(2).WithAnnotation("u8"))
	d, err := json.Marshal(n)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"a","args":[1,1.0,null],"props":{"z":"v","b":{"annotation":"u8","value":2}}}`
	if string(d) != want {
		t.Errorf("got  %s\nwant %s", d, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	a := NewNode("a").WithAnnotation("t")
	a.AddArg(
		FromFloat(math.Inf(-1)),
		FromFloat(math.NaN()).WithAnnotation("f"),
		FromBigInt(new(big.Int).Lsh(big.NewInt(1), 80)),
		FromFloat(2.5e-9),
		FromBool(false),
		Null().WithAnnotation("n"),
	)
	a.SetProp("z", FromInt(1)).SetProp("a", FromString("x\ny"))
	a.NewChild("b").AddChild()
	doc := NewDocument(a, NewNode("c"))

	data, err := ToJSON(doc)
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Equal(back) {
		t.Errorf("round trip differs: %s", data)
	}
	if back.Nodes[0].Props[0].Key != "z" {
		t.Errorf("property order lost")
	}
	if back.Nodes[0].Children[0].Children == nil {
		t.Errorf("empty children block lost")
	}
	if back.Nodes[1].Children != nil {
		t.Errorf("children block invented")
	}
}
