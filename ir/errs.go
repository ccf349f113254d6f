package ir

import (
	"errors"
	"fmt"

	"github.com/signadot/go-kdl/token"
)

var (
	ErrNotFound = errors.New("not found")
	ErrType     = errors.New("wrong type")

	ErrMalformedNumber = errors.New("malformed number")
	ErrOverflow        = errors.New("numeric overflow")
	// ErrUnrepresentable is returned when a value has no syntax in the
	// requested KDL version, such as #inf in KDL 1.
	ErrUnrepresentable = errors.New("value not representable")
)

// ValueError reports a literal which does not denote a valid value.
type ValueError struct {
	Err     error
	Literal string
	Pos     *token.Pos
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

func (e *ValueError) Error() string {
	if e.Pos == nil {
		return fmt.Sprintf("%s: %q", e.Err.Error(), e.Literal)
	}
	return fmt.Sprintf("%s: %q at %s", e.Err.Error(), e.Literal, e.Pos.String())
}

func valueErr(e error, lit string, msg string, args ...any) *ValueError {
	if msg != "" {
		e = fmt.Errorf("%w: %s", e, fmt.Sprintf(msg, args...))
	}
	return &ValueError{Err: e, Literal: lit}
}
