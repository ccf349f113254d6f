package ir

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

type numberOpts struct {
	int64Only bool
}

type NumberOption func(*numberOpts)

// Int64Only makes integers outside the int64 range an ErrOverflow
// instead of a big.Int.
func Int64Only() NumberOption {
	return func(o *numberOpts) { o.int64Only = true }
}

// ParseNumber converts a KDL numeric literal to a value. A decimal
// literal with a fraction or an exponent is a float; anything else is
// an integer. Digit separators '_' must sit between digits.
func ParseNumber(lit string, opts ...NumberOption) (*Value, error) {
	o := &numberOpts{}
	for _, f := range opts {
		f(o)
	}
	s := lit
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}
	radix := 10
	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'x':
			radix = 16
		case 'o':
			radix = 8
		case 'b':
			radix = 2
		}
		if radix != 10 {
			s = s[2:]
		}
	}
	if radix != 10 {
		digits, err := cleanDigits(lit, s, radix)
		if err != nil {
			return nil, err
		}
		return makeInt(lit, sign+digits, radix, o)
	}

	mant, exp, hasExp := cutAny(s, "eE")
	intPart, frac, hasFrac := strings.Cut(mant, ".")
	intDigits, err := cleanDigits(lit, intPart, 10)
	if err != nil {
		return nil, err
	}
	if !hasFrac && !hasExp {
		return makeInt(lit, sign+intDigits, 10, o)
	}
	clean := sign + intDigits
	if hasFrac {
		fracDigits, err := cleanDigits(lit, frac, 10)
		if err != nil {
			return nil, err
		}
		clean += "." + fracDigits
	}
	if hasExp {
		expSign := ""
		if exp != "" && (exp[0] == '+' || exp[0] == '-') {
			expSign = exp[:1]
			exp = exp[1:]
		}
		expDigits, err := cleanDigits(lit, exp, 10)
		if err != nil {
			return nil, err
		}
		clean += "e" + expSign + expDigits
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0) {
			return nil, valueErr(ErrOverflow, lit, "exceeds float64")
		}
		if !errors.Is(err, strconv.ErrRange) {
			return nil, valueErr(ErrMalformedNumber, lit, "")
		}
	}
	v := FromFloat(f)
	v.Literal = lit
	return v, nil
}

func makeInt(lit, digits string, radix int, o *numberOpts) (*Value, error) {
	b, ok := new(big.Int).SetString(digits, radix)
	if !ok {
		return nil, valueErr(ErrMalformedNumber, lit, "")
	}
	if !b.IsInt64() && o.int64Only {
		return nil, valueErr(ErrOverflow, lit, "exceeds int64")
	}
	v := FromBigInt(b)
	v.Literal = lit
	return v, nil
}

// cleanDigits validates a digit group and strips its separators.
func cleanDigits(lit, s string, radix int) (string, error) {
	if s == "" {
		return "", valueErr(ErrMalformedNumber, lit, "missing digits")
	}
	if s[0] == '_' || s[len(s)-1] == '_' {
		return "", valueErr(ErrMalformedNumber, lit, "'_' must separate digits")
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			continue
		}
		if digitVal(c) >= radix {
			return "", valueErr(ErrMalformedNumber, lit, "invalid digit %q", c)
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}

func digitVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 99
}

func cutAny(s, chars string) (string, string, bool) {
	i := strings.IndexAny(s, chars)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

// FloatText is the canonical text of a finite float: it always has a
// fraction or an exponent, and large or small magnitudes use an
// exponent written with 'E' and an explicit sign.
func FloatText(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-5 || abs >= 1e16) {
		s := strconv.FormatFloat(f, 'E', -1, 64)
		mant, exp, _ := strings.Cut(s, "E")
		if !strings.Contains(mant, ".") {
			mant += ".0"
		}
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "E" + exp[:1] + digits
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
