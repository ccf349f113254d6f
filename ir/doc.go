// Package ir provides the in-memory representation of KDL documents.
//
// # Overview
//
// A [Document] is an ordered list of [Node]s. A node has an optional type
// annotation, a name, ordered arguments, properties and an optional
// children block. Arguments and property values are [Value]s, a tagged
// union over null, bool, integer, float and string:
//
//   - NullType: no payload
//   - BoolType: Bool
//   - IntegerType: Int64, or BigInt when the value exceeds int64
//   - FloatType: Float64, including infinities and NaN
//   - StringType: String
//
// Values parsed from text carry the source text in Literal. Literal is
// a formatting hint: the encoder reuses it when it still denotes the
// value, and it never takes part in Equal, Compare or Hash.
//
// # Properties
//
// Props is ordered and keyed. [Node.SetProp] replaces the value of an
// existing key in place, which is how duplicate keys in a document are
// resolved: the last value wins and the first position is kept.
//
// # Children
//
// Children is nil when a node has no children block and non-nil when
// it has one, even an empty one.
//
// # Traversal
//
// [Walk], [Node.Clone] and [Node.Equal] use explicit stacks so that
// deeply nested documents cannot exhaust the goroutine stack.
// [Node.Hash] recurses.
//
// # Helpers
//
// [Get], [Set], [GetKV] and the As* conversions read typed data out of
// nodes, and [UnmarshalAll] decodes node lists into Go values
// implementing [Unmarshaller]:
//
//	port, err := ir.GetKV(host, "port", ir.AsInt)
//
// # JSON
//
// Documents, nodes and values have a JSON form, see [ToJSON].
package ir
