package token

import (
	"fmt"
)

type TokenType int

const (
	TEOF TokenType = iota
	TNewline
	TSemi
	TLCurl
	TRCurl
	TLParen
	TRParen
	TEquals
	TSlashDash
	TIdent
	TString
	TNumber
	TKeyword
	TComment
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TEOF:       "TEOF",
		TNewline:   "TNewline",
		TSemi:      "TSemi",
		TLCurl:     "TLCurl",
		TRCurl:     "TRCurl",
		TLParen:    "TLParen",
		TRParen:    "TRParen",
		TEquals:    "TEquals",
		TSlashDash: "TSlashDash",
		TIdent:     "TIdent",
		TString:    "TString",
		TNumber:    "TNumber",
		TKeyword:   "TKeyword",
		TComment:   "TComment",
	}[t]
}

// IsString reports whether tokens of type t decode to text and may
// therefore serve as a node name, property key or type annotation.
func (t TokenType) IsString() bool {
	return t == TIdent || t == TString
}

// IsValue reports whether tokens of type t start a value.
func (t TokenType) IsValue() bool {
	switch t {
	case TIdent, TString, TNumber, TKeyword:
		return true
	}
	return false
}

type Token struct {
	Type TokenType
	Pos  *Pos
	// Len is the length in bytes of the token in the source.
	Len int
	// Space is set when node-space (whitespace, a block comment or a
	// line continuation) immediately precedes the token.
	Space bool
	Bytes []byte
	// Value is the decoded text of identifiers and strings.
	Value *string
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

func (t *Token) String() string {
	if t.Value != nil {
		return *t.Value
	}
	return string(t.Bytes)
}
