package encode

import (
	"math"
	"strings"

	"github.com/signadot/go-kdl/format"
	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/token"
)

func annotation(es *EncState, a string) string {
	return es.color(ir.StringType, AnnotationColor, "("+token.Ident(a, es.version)+")")
}

// formatValue renders v, with its annotation, under the state's
// version and colors.
func formatValue(es *EncState, v *ir.Value) (string, error) {
	text, err := ValueText(v, es.version, es.literals)
	if err != nil {
		return "", err
	}
	text = es.color(v.Type, ValueColor, text)
	if v.Annotation != nil {
		return annotation(es, *v.Annotation) + text, nil
	}
	return text, nil
}

// ValueText renders v without its annotation. When literals is set and
// v.Literal still denotes v in version ver, the literal is returned
// as is. Infinities and NaN have no KDL 1 form and give an
// *ir.ValueError wrapping ir.ErrUnrepresentable.
func ValueText(v *ir.Value, ver format.Version, literals bool) (string, error) {
	ver = ver.Resolve()
	if literals && v.Literal != "" && LiteralDenotes(v.Literal, v, ver) {
		return v.Literal, nil
	}
	switch v.Type {
	case ir.NullType:
		return keyword("null", ver), nil
	case ir.BoolType:
		if v.Bool {
			return keyword("true", ver), nil
		}
		return keyword("false", ver), nil
	case ir.IntegerType:
		return v.Big().String(), nil
	case ir.FloatType:
		f := 0.0
		if v.Float64 != nil {
			f = *v.Float64
		}
		var kw string
		switch {
		case math.IsNaN(f):
			kw = "nan"
		case math.IsInf(f, 1):
			kw = "inf"
		case math.IsInf(f, -1):
			kw = "-inf"
		default:
			return ir.FloatText(f), nil
		}
		if ver == format.V1 {
			return "", &ir.ValueError{Err: ir.ErrUnrepresentable, Literal: "#" + kw}
		}
		return "#" + kw, nil
	default:
		return token.QuoteString(v.String, ver), nil
	}
}

func keyword(k string, v format.Version) string {
	if v == format.V1 {
		return k
	}
	return "#" + k
}

// LiteralDenotes reports whether lit lexes, under version v, as exactly
// one value token meaning the same as val.
func LiteralDenotes(lit string, val *ir.Value, v format.Version) bool {
	toks, err := token.Tokenize(strings.NewReader(lit), token.LexVersion(v))
	if err != nil || len(toks) != 2 || toks[1].Type != token.TEOF {
		return false
	}
	tok := toks[0]
	if tok.Pos.I != 0 || tok.Len != len(lit) {
		return false
	}
	switch tok.Type {
	case token.TString:
		return val.Type == ir.StringType && tok.String() == val.String
	case token.TIdent:
		return v == format.V2 && val.Type == ir.StringType && tok.String() == val.String
	case token.TNumber:
		n, err := ir.ParseNumber(lit)
		if err != nil || n.Type != val.Type {
			return false
		}
		return ir.Compare(n, val) == 0 && !negZeroMismatch(n, val)
	}
	return false
}

// negZeroMismatch tells 0.0 from -0.0, which compare equal.
func negZeroMismatch(a, b *ir.Value) bool {
	if a.Type != ir.FloatType || a.Float64 == nil || b.Float64 == nil {
		return false
	}
	return math.Signbit(*a.Float64) != math.Signbit(*b.Float64)
}
