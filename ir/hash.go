package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
	"slices"
	"strings"
)

var seed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the value, consistent with Equal.
func (v *Value) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	v.writeHash(&h)
	return h.Sum64()
}

func (v *Value) writeHash(h *maphash.Hash) {
	if v == nil {
		h.WriteByte(0xff)
		return
	}
	h.WriteByte(byte(v.Type))
	if v.Annotation != nil {
		h.WriteByte(1)
		h.WriteString(*v.Annotation)
	} else {
		h.WriteByte(0)
	}
	var b [8]byte
	switch v.Type {
	case BoolType:
		if v.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case IntegerType:
		if i := v.Big(); i.IsInt64() {
			binary.LittleEndian.PutUint64(b[:], uint64(i.Int64()))
			h.Write(b[:])
		} else {
			h.WriteString(i.String())
		}
	case FloatType:
		f := *v.Float64
		if math.IsNaN(f) {
			f = math.NaN()
		}
		if f == 0 {
			f = 0
		}
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
		h.Write(b[:])
	case StringType:
		h.WriteString(v.String)
	}
}

// Hash returns a 64-bit hash of the node and its descendants,
// consistent with Equal.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteString(n.Name)
	h.WriteByte(0)
	if n.Annotation != nil {
		h.WriteByte(1)
		h.WriteString(*n.Annotation)
	}
	for _, a := range n.Args {
		a.writeHash(&h)
	}
	// properties are a mapping: hash them in key order
	props := slices.Clone(n.Props)
	slices.SortFunc(props, func(a, b *Prop) int { return strings.Compare(a.Key, b.Key) })
	for _, p := range props {
		h.WriteString(p.Key)
		h.WriteByte(0)
		p.Value.writeHash(&h)
	}
	if n.Children != nil {
		var b [8]byte
		h.WriteByte('{')
		for _, c := range n.Children {
			// Combine child hashes.
			binary.LittleEndian.PutUint64(b[:], c.Hash())
			h.Write(b[:])
		}
	}
	return h.Sum64()
}
