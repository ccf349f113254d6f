package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/go-kdl/ir"
	"github.com/signadot/go-kdl/stream"
	"github.com/signadot/go-kdl/token"
)

var (
	ErrSyntax = errors.New("syntax error")
	ErrDepth  = errors.New("maximum nesting depth exceeded")
)

// ParseError reports malformed document structure. Context names the
// construct being parsed.
type ParseError struct {
	Pos     *token.Pos
	Context string
	Err     error
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Error() string {
	if e.Pos == nil {
		return fmt.Sprintf("%s: %s", e.Context, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s at %s", e.Context, e.Err.Error(), e.Pos.String())
}

func syntaxErr(tok *token.Token, ctx, msg string, args ...any) *ParseError {
	return &ParseError{
		Pos:     tok.Pos,
		Context: ctx,
		Err:     fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(msg, args...)),
	}
}

// ErrorPos returns the input position an error refers to, if any.
func ErrorPos(err error) *token.Pos {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Pos
	}
	var le *token.LexError
	if errors.As(err, &le) {
		return le.Pos
	}
	var ve *ir.ValueError
	if errors.As(err, &ve) {
		return ve.Pos
	}
	return nil
}

// isSyntax reports whether err is about the text of the input, as
// opposed to reading it or exceeding limits.
func isSyntax(err error) bool {
	var ioe *stream.IOError
	if errors.As(err, &ioe) || errors.Is(err, ErrDepth) {
		return false
	}
	return ErrorPos(err) != nil
}
