// Package parse parses KDL text into ir documents or structural events.
//
// # Usage
//
//	doc, err := parse.ParseString(`node 1 key="value" { child }`)
//	if err != nil {
//	    return err
//	}
//
//	// KDL 1 input
//	doc, err := parse.Parse(data, parse.ParseVersion(format.V1))
//
// By default the version is detected: a first node "/- kdl-version 1"
// or "/- kdl-version 2" decides it, otherwise the input is parsed as
// KDL 2 and, if that fails on its syntax, as KDL 1. Detection buffers
// the events of the whole document; pass an explicit version to stream.
//
// # Events
//
// A [Parser] is a stream.EventReader:
//
//	p := parse.NewParser(r)
//	for {
//	    ev, err := p.ReadEvent()
//	    if err == io.EOF {
//	        break
//	    }
//	    ...
//	}
//
// # Errors
//
// Parsing stops at the first error. Malformed tokens are reported as
// *token.LexError, malformed numbers as *ir.ValueError, structural
// problems as *ParseError and input failures as *stream.IOError.
// Nodes nested deeper than MaxDepth (DefaultMaxDepth unless set) fail
// with ErrDepth.
//
// # Related Packages
//
//   - github.com/signadot/go-kdl/ir - document representation
//   - github.com/signadot/go-kdl/encode - encode documents as KDL text
//   - github.com/signadot/go-kdl/token - tokenization
package parse
