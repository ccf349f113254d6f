package token

import "github.com/signadot/go-kdl/format"

func isNewline(r rune) bool {
	switch r {
	case '\n', '\r', '\u0085', '\u000B', '\u000C', '\u2028', '\u2029':
		return true
	}
	return false
}

func isSpace(r rune) bool {
	switch r {
	case '\t', ' ', '\u00A0', '\u1680', '\u202F', '\u205F', '\u3000':
		return true
	}
	return r >= '\u2000' && r <= '\u200A'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSign(r rune) bool {
	return r == '+' || r == '-'
}

// isDisallowed reports code points which may not appear literally
// anywhere in a document.
func isDisallowed(r rune) bool {
	switch {
	case r <= 0x08:
		return r >= 0
	case r >= 0x0E && r <= 0x1F:
		return true
	case r == 0x7F:
		return true
	case r >= 0xD800 && r <= 0xDFFF:
		return true
	case r == 0x200E, r == 0x200F:
		return true
	case r >= 0x202A && r <= 0x202E:
		return true
	case r >= 0x2066 && r <= 0x2069:
		return true
	case r == 0xFEFF:
		return true
	}
	return false
}

func isIdentChar(r rune, v format.Version) bool {
	if r < 0 || isSpace(r) || isNewline(r) || isDisallowed(r) {
		return false
	}
	switch r {
	case '\\', '/', '(', ')', '{', '}', ';', '[', ']', '"', '=':
		return false
	}
	if v == format.V1 {
		switch r {
		case '<', '>', ',':
			return false
		}
		return true
	}
	return r != '#'
}

// looksNumeric reports whether an identifier-like word starting with
// r0, r1, r2 must be read as a number.
func looksNumeric(r0, r1, r2 rune, v format.Version) bool {
	switch {
	case isDigit(r0):
		return true
	case isSign(r0) && isDigit(r1):
		return true
	case v != format.V1 && r0 == '.' && isDigit(r1):
		return true
	case v != format.V1 && isSign(r0) && r1 == '.' && isDigit(r2):
		return true
	}
	return false
}

func keywords(v format.Version) map[string]bool {
	if v == format.V1 {
		return v1Keywords
	}
	return v2Keywords
}

var (
	v1Keywords = map[string]bool{"true": true, "false": true, "null": true}
	v2Keywords = map[string]bool{
		"true": true, "false": true, "null": true,
		"inf": true, "-inf": true, "nan": true,
	}
)
