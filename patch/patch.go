package patch

import (
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/go-kdl/debug"
	"github.com/signadot/go-kdl/ir"
)

var ErrPatch = errors.New("patch failed")

// Patch is an RFC 6902 JSON patch over the JSON form of a document.
// Paths address that form, for instance /nodes/0/props/port or
// /nodes/1/children/-.
type Patch struct {
	ops jsonpatch.Patch
}

// Decode reads a JSON patch.
func Decode(d []byte) (*Patch, error) {
	ops, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return &Patch{ops: ops}, nil
}

// Apply returns a patched copy of doc. Properties of the result are in
// key order.
func (p *Patch) Apply(doc *ir.Document) (*ir.Document, error) {
	if debug.Patch() {
		debug.Logf("json patch with %d ops\n", len(p.ops))
	}
	d, err := ir.ToJSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := p.ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return fromJSON(out)
}

// Merge applies an RFC 7386 merge patch to the JSON form of doc.
// Arrays, among them the nodes and children lists, are replaced as a
// whole. Properties of the result are in key order.
func Merge(doc *ir.Document, mergePatch []byte) (*ir.Document, error) {
	if debug.Patch() {
		debug.Logf("merge patch %s\n", mergePatch)
	}
	d, err := ir.ToJSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, mergePatch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return fromJSON(out)
}

// CreateMerge returns the merge patch turning from into to.
func CreateMerge(from, to *ir.Document) ([]byte, error) {
	a, err := ir.ToJSON(from)
	if err != nil {
		return nil, err
	}
	b, err := ir.ToJSON(to)
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(a, b)
}

func fromJSON(d []byte) (*ir.Document, error) {
	res, err := ir.FromJSON(d)
	if err != nil {
		return nil, fmt.Errorf("%w: result is not a document: %w", ErrPatch, err)
	}
	return res, nil
}
