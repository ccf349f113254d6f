package token

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/signadot/go-kdl/format"
)

// IsBareIdentifier reports whether s can be written without quotes as
// a node name, property key or type annotation.
func IsBareIdentifier(s string, v format.Version) bool {
	v = v.Resolve()
	if s == "" || !utf8.ValidString(s) {
		return false
	}
	if keywords(v)[s] {
		return false
	}
	var rs [3]rune
	n := 0
	for _, r := range s {
		if !isIdentChar(r, v) {
			return false
		}
		if n < 3 {
			rs[n] = r
			n++
		}
	}
	for i := n; i < 3; i++ {
		rs[i] = eofRune
	}
	if looksNumeric(rs[0], rs[1], rs[2], v) {
		return false
	}
	if v == format.V1 {
		if rs[0] == 'r' && rs[1] == '#' {
			return false
		}
	}
	return true
}

// Ident renders s as an identifier, quoting it only when required.
func Ident(s string, v format.Version) string {
	if IsBareIdentifier(s, v) {
		return s
	}
	return QuoteString(s, v)
}

// QuoteString renders s as a quoted KDL string.
func QuoteString(s string, v format.Version) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r == utf8.RuneError || isNewline(r) || isDisallowed(r) {
				fmt.Fprintf(&b, `\u{%x}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
