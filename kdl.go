// Package kdl parses and writes KDL documents.
//
// The work is done by the packages below it: token lexes, parse builds
// events and documents, ir holds the document model, encode writes
// text and stream adapts readers, writers and event flows. This package
// ties them together for the common cases.
package kdl

import (
	"io"

	"github.com/signadot/go-kdl/encode"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/parse"
	"github.com/signadot/go-kdl/stream"
)

// ParseDocument reads a whole KDL document from r.
func ParseDocument(r io.Reader, opts ...parse.ParseOption) (*ir.Document, error) {
	return parse.ParseReader(r, opts...)
}

// EmitDocument writes doc to w as KDL text.
func EmitDocument(doc *ir.Document, w io.Writer, opts ...encode.EncodeOption) error {
	return encode.Encode(doc, w, opts...)
}

// Transcode copies a document from r to w as events without building
// a tree, for instance to convert KDL 1 input to KDL 2 output. Only
// an explicit parse.ParseVersion(V1) or (V2), or a leading
// `/- kdl-version` node, streams; under format.Auto the parser
// otherwise records every event of the document before the first one
// is written.
func Transcode(r io.Reader, w io.Writer, popts []parse.ParseOption, eopts ...encode.EncodeOption) error {
	p := parse.NewParser(r, popts...)
	enc := encode.NewEncoder(w, eopts...)
	if err := stream.Copy(enc, p); err != nil {
		return err
	}
	return enc.Flush()
}
