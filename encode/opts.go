package encode

import "github.com/signadot/go-kdl/format"

type EncodeOption func(*EncState)

// Indent sets the number of spaces per nesting level (default 4).
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = max(n, 0) }
}

// EncodeVersion selects the output syntax. format.Auto writes KDL 2.
func EncodeVersion(v format.Version) EncodeOption {
	return func(es *EncState) { es.version = v.Resolve() }
}

// SortProps writes the properties of each node sorted by key instead
// of in document order.
func SortProps(v bool) EncodeOption {
	return func(es *EncState) { es.sortProps = v }
}

// EncodeLiterals controls whether values keep their source text when
// it still denotes them in the output version (default true). Turning
// it off gives the canonical form of every value.
func EncodeLiterals(v bool) EncodeOption {
	return func(es *EncState) { es.literals = v }
}

// EmitEmptyChildren controls whether an empty children block is written
// as "{}" (default true). Without it, an empty block is dropped.
func EmitEmptyChildren(v bool) EncodeOption {
	return func(es *EncState) { es.emptyChildren = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}

// VersionFromOpts extracts the output version from encode options.
func VersionFromOpts(opts ...EncodeOption) format.Version {
	return newState(opts).version
}
