package token

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpected   = errors.New("unexpected character")
	ErrUnterminated = errors.New("unterminated")
	ErrEscape       = errors.New("invalid escape")
	ErrNewline      = errors.New("newline in single-line string")
	ErrDisallowed   = errors.New("disallowed code point")
	ErrUTF8         = errors.New("invalid utf-8")
	ErrKeyword      = errors.New("invalid keyword")
	ErrBareKeyword  = errors.New("bare keyword")
	ErrMultiline    = errors.New("malformed multi-line string")
	ErrContinuation = errors.New("malformed line continuation")
)

// LexError is a malformed token. Lexing does not recover: the first
// LexError ends the token stream.
type LexError struct {
	Err      error
	Pos      *Pos
	Expected string
}

func (e *LexError) Unwrap() error {
	return e.Err
}

func (e *LexError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
	}
	return fmt.Sprintf("%s at %s: expected %s", e.Err.Error(), e.Pos.String(), e.Expected)
}

func ExpectedErr(e error, what string, p *Pos) error {
	return &LexError{Err: e, Pos: p, Expected: what}
}

func UnexpectedErr(what string, p *Pos) error {
	return &LexError{Err: fmt.Errorf("%w %s", ErrUnexpected, what), Pos: p}
}
