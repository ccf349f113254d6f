package stream

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/go-kdl/ir"
)

func TestReadFunc(t *testing.T) {
	src := strings.NewReader("hello, world")
	rf := ReadFunc(func(p []byte) int {
		n, _ := src.Read(p[:min(len(p), 5)])
		return n
	})
	r := NewReader(rf)
	d, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "hello, world" || r.Offset() != 12 {
		t.Errorf("got %q at %d", d, r.Offset())
	}
}

func TestReadFuncFailure(t *testing.T) {
	calls := 0
	r := NewReader(ReadFunc(func(p []byte) int {
		calls++
		if calls == 1 {
			return copy(p, "abc")
		}
		return -1
	}))
	_, err := io.ReadAll(r)
	var ioe *IOError
	if !errors.As(err, &ioe) {
		t.Fatalf("got %v", err)
	}
	if ioe.Op != "read" || ioe.Offset != 3 || !errors.Is(err, ErrReadFailed) {
		t.Errorf("got %+v", ioe)
	}
	if _, err2 := r.Read(make([]byte, 4)); err2 != err {
		t.Errorf("error not sticky: %v", err2)
	}
}

func TestShortWrite(t *testing.T) {
	var got bytes.Buffer
	calls := 0
	w := NewWriter(WriteFunc(func(p []byte) int {
		calls++
		n := min(len(p), 4)
		got.Write(p[:n])
		return n
	}))
	if _, err := w.Write([]byte("abcd")); err != nil {
		t.Fatal(err)
	}
	n, err := w.Write([]byte("efghij"))
	if n != 4 {
		t.Errorf("wrote %d", n)
	}
	var ioe *IOError
	if !errors.As(err, &ioe) || !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("got %v", err)
	}
	want := IOError{Op: "write", Offset: 4, Want: 6, Got: 4, Err: io.ErrShortWrite}
	if *ioe != want {
		t.Errorf("got %+v want %+v", *ioe, want)
	}
	if _, err := w.Write([]byte("k")); err != ioe {
		t.Errorf("later write: %v", err)
	}
	if calls != 2 {
		t.Errorf("write retried: %d calls", calls)
	}
}

func TestWriteFuncFailure(t *testing.T) {
	w := NewWriter(WriteFunc(func([]byte) int { return -1 }))
	_, err := w.Write([]byte("x"))
	if !errors.Is(err, ErrWriteFailed) {
		t.Errorf("got %v", err)
	}
}

func sampleDoc() *ir.Document {
	a := ir.NewNode("a").WithAnnotation("t").AddArg(ir.FromInt(1))
	a.SetProp("k", ir.FromString("v"))
	a.NewChild("b").AddChild()
	return ir.NewDocument(a, ir.NewNode("c"))
}

func TestEvents(t *testing.T) {
	rec := &EventRecorder{}
	if err := WriteDocument(rec, sampleDoc()); err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, ev := range rec.Events {
		got = append(got, ev.String())
	}
	want := []string{
		"BeginNode (t)a",
		"Argument 1",
		`Property k="v"`,
		"BeginChildren",
		"BeginNode b",
		"BeginChildren",
		"EndChildren",
		"EndNode",
		"EndChildren",
		"EndNode",
		"BeginNode c",
		"EndNode",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}

	doc, err := Build(rec.Reader())
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Equal(sampleDoc()) {
		t.Errorf("rebuilt document differs")
	}
}

func TestBuilderOrder(t *testing.T) {
	tests := []struct {
		name   string
		events []EventType
		err    error
	}{
		{"arg at top", []EventType{EventArgument}, ErrEventOrder},
		{"node in entries", []EventType{EventBeginNode, EventBeginNode}, ErrEventOrder},
		{"entry after children", []EventType{EventBeginNode, EventBeginChildren, EventEndChildren, EventArgument}, ErrEventOrder},
		{"end in children", []EventType{EventBeginNode, EventBeginChildren, EventEndNode}, ErrEventOrder},
		{"open", []EventType{EventBeginNode, EventBeginChildren}, ErrIncomplete},
	}
	for _, test := range tests {
		b := NewBuilder()
		var err error
		for _, et := range test.events {
			ev := &Event{Type: et, Name: "n", Value: ir.Null()}
			if err = b.WriteEvent(ev); err != nil {
				break
			}
		}
		if err == nil {
			_, err = b.Document()
		}
		if !errors.Is(err, test.err) {
			t.Errorf("%s: got %v want %v", test.name, err, test.err)
		}
	}
}

func TestEventTypeText(t *testing.T) {
	for et := EventBeginNode; et <= EventEndNode; et++ {
		d, _ := et.MarshalText()
		var back EventType
		if err := back.UnmarshalText(d); err != nil || back != et {
			t.Errorf("%s: got %s, %v", et, back, err)
		}
	}
}
