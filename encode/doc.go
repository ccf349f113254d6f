// Package encode writes KDL documents as text.
//
// # Usage
//
//	doc := ir.NewDocument(
//	    ir.NewNode("server").AddArg(ir.FromString("alpha")).
//	        SetProp("port", ir.FromInt(8080)),
//	)
//	err := encode.Encode(doc, os.Stdout)
//
//	// KDL 1 output, two space indent, sorted properties
//	err = encode.Encode(doc, os.Stdout,
//	    encode.EncodeVersion(format.V1), encode.Indent(2), encode.SortProps(true))
//
// # Literals
//
// Values parsed from text remember their source text in ir.Value.Literal.
// The encoder writes that text back when it still lexes, in the output
// version, as the same value. So 0xff stays 0xff and 1.50 stays 1.50
// across a round trip. EncodeLiterals(false) forces the canonical form:
// decimal integers, floats with a fraction or a signed 'E' exponent, and
// double quoted strings.
//
// # Streaming
//
// An Encoder is a stream.EventSink, so events from a parse.Parser can be
// written without building a document. Call Flush after the last event.
//
// Write failures are reported as *stream.IOError. A short write is fatal.
//
// # Related Packages
//
//   - github.com/signadot/go-kdl/ir - document model
//   - github.com/signadot/go-kdl/parse - parse text to documents or events
package encode
