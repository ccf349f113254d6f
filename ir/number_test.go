package ir

import (
	"errors"
	"math"
	"testing"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		lit   string
		typ   Type
		text  string
		isBig bool
	}{
		{"12", IntegerType, "12", false},
		{"-12", IntegerType, "-12", false},
		{"+7", IntegerType, "7", false},
		{"1_000_000", IntegerType, "1000000", false},
		{"0xff_ff", IntegerType, "65535", false},
		{"0xFF", IntegerType, "255", false},
		{"-0o17", IntegerType, "-15", false},
		{"0b1010", IntegerType, "10", false},
		{"99999999999999999999", IntegerType, "99999999999999999999", true},
		{"1.5", FloatType, "1.5", false},
		{"1.5e3", FloatType, "1500.0", false},
		{"1E-2", FloatType, "0.01", false},
		{"1e10", FloatType, "10000000000.0", false},
		{"1_0.2_5", FloatType, "10.25", false},
		{"-0.0", FloatType, "-0.0", false},
	}
	for _, test := range tests {
		v, err := ParseNumber(test.lit)
		if err != nil {
			t.Errorf("%s: %v", test.lit, err)
			continue
		}
		if v.Type != test.typ {
			t.Errorf("%s: type %s want %s", test.lit, v.Type, test.typ)
		}
		if got := v.Text(); got != test.text {
			t.Errorf("%s: got %s want %s", test.lit, got, test.text)
		}
		if (v.BigInt != nil) != test.isBig {
			t.Errorf("%s: big %t", test.lit, v.BigInt != nil)
		}
		if v.Literal != test.lit {
			t.Errorf("%s: literal %q", test.lit, v.Literal)
		}
	}
}

func TestParseNumberErrors(t *testing.T) {
	tests := []struct {
		lit  string
		opts []NumberOption
		err  error
	}{
		{"1_2_", nil, ErrMalformedNumber},
		{"_1", nil, ErrMalformedNumber},
		{"1_.0", nil, ErrMalformedNumber},
		{"1._5", nil, ErrMalformedNumber},
		{"1.", nil, ErrMalformedNumber},
		{".5", nil, ErrMalformedNumber},
		{"1e", nil, ErrMalformedNumber},
		{"0x", nil, ErrMalformedNumber},
		{"0xg1", nil, ErrMalformedNumber},
		{"0b102", nil, ErrMalformedNumber},
		{"0X1", nil, ErrMalformedNumber},
		{"12abc", nil, ErrMalformedNumber},
		{"1e400", nil, ErrOverflow},
		{"99999999999999999999", []NumberOption{Int64Only()}, ErrOverflow},
	}
	for _, test := range tests {
		_, err := ParseNumber(test.lit, test.opts...)
		if err == nil {
			t.Errorf("%s: expected error", test.lit)
			continue
		}
		if !errors.Is(err, test.err) {
			t.Errorf("%s: got %v want %v", test.lit, err, test.err)
		}
		var ve *ValueError
		if !errors.As(err, &ve) {
			t.Errorf("%s: %T is not a *ValueError", test.lit, err)
		} else if ve.Literal != test.lit {
			t.Errorf("%s: literal %q", test.lit, ve.Literal)
		}
	}
}

func TestFloatText(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{1.5, "1.5"},
		{-3.25, "-3.25"},
		{123456.789, "123456.789"},
		{1e-5, "0.00001"},
		{1e-6, "1.0E-6"},
		{1.5e-7, "1.5E-7"},
		{1e16, "1.0E+16"},
		{-2.5e20, "-2.5E+20"},
		{math.MaxFloat64, "1.7976931348623157E+308"},
	}
	for _, test := range tests {
		if got := FloatText(test.f); got != test.want {
			t.Errorf("%g: got %s want %s", test.f, got, test.want)
		}
		v, err := ParseNumber(test.want)
		if err != nil {
			t.Errorf("%s: %v", test.want, err)
			continue
		}
		if v.Type != FloatType || *v.Float64 != test.f {
			t.Errorf("%s: reparsed as %s %s", test.want, v.Type, v.Text())
		}
	}
}
