package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/go-kdl/ir"
)

// MustString encodes doc, panicking on error. Trailing newlines are
// trimmed.
func MustString(doc *ir.Document, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// NodeString encodes a single node, panicking on error.
func NodeString(n *ir.Node, opts ...EncodeOption) string {
	return MustString(ir.NewDocument(n), opts...)
}
