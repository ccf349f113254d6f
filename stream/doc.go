// Package stream connects the KDL parser and encoder to byte streams
// and to each other.
//
// # Byte streams
//
// [ReadFunc] and [WriteFunc] turn callback style capabilities into an
// io.Reader and io.Writer: a read returning 0 is the end of the stream,
// a negative count is a failure and a write returning fewer bytes than
// it was given is a short write. [Reader] and [Writer] track offsets and
// report failures as [*IOError]. A short write is fatal and never
// retried:
//
//	w := stream.NewWriter(stream.WriteFunc(cb))
//	if err := encode.Encode(doc, w); err != nil {
//	    var ioe *stream.IOError
//	    if errors.As(err, &ioe) { ... }
//	}
//
// # Events
//
// A document is also a sequence of [Event]s. The parser is an
// [EventReader], the encoder and [Builder] are [EventSink]s, and
// [WriteDocument] replays an ir.Document as events, so a document can
// be transcoded without building a tree:
//
//	err := stream.Copy(encoder, parser)
package stream
