package main

import (
	"context"
	"strings"
	"unicode/utf16"

	"github.com/signadot/go-kdl/format"
	"github.com/signadot/go-kdl/token"
	"go.lsp.dev/protocol"
)

var tokenLegend = []protocol.SemanticTokenTypes{
	protocol.SemanticTokenComment,
	protocol.SemanticTokenKeyword,
	protocol.SemanticTokenString,
	protocol.SemanticTokenNumber,
	protocol.SemanticTokenOperator,
	protocol.SemanticTokenProperty,
}

var modifierLegend = []protocol.SemanticTokenModifiers{
	protocol.SemanticTokenModifierDefinition,
	protocol.SemanticTokenModifierModification,
}

const (
	stComment uint32 = iota
	stKeyword
	stString
	stNumber
	stOperator
	stProperty
)

const (
	smDefinition uint32 = 1 << iota
	smModification
)

type tokenInfo struct {
	line, char, length uint32
	tokenType          uint32
	modifiers          uint32
}

// classify lexes content and assigns a semantic type to each token.
// Lexing stops at the first error; the tokens before it are kept.
//
// Node names are keywords with the definition modifier, property keys
// are properties and type annotations are plain keywords. A slashdash
// is reported as a comment with the modification modifier.
func classify(content string, v format.Version) []tokenInfo {
	lx := token.NewLexer(strings.NewReader(content), token.LexVersion(v), token.LexComments(true))
	var toks []*token.Token
	for {
		tok, err := lx.Next()
		if err != nil || tok.Type == token.TEOF {
			break
		}
		toks = append(toks, tok)
	}

	var res []tokenInfo
	nodeStart := true
	inParen := false
	for i, tok := range toks {
		var tt, mods uint32
		switch tok.Type {
		case token.TNewline:
			nodeStart = true
			continue
		case token.TComment:
			tt = stComment
		case token.TSlashDash:
			tt, mods = stComment, smModification
		case token.TSemi, token.TLCurl, token.TRCurl:
			tt = stOperator
			nodeStart = true
		case token.TLParen:
			tt = stOperator
			inParen = true
		case token.TRParen:
			tt = stOperator
			inParen = false
		case token.TEquals:
			tt = stOperator
		case token.TNumber:
			tt = stNumber
			nodeStart = false
		case token.TKeyword:
			tt = stKeyword
			nodeStart = false
		case token.TIdent, token.TString:
			switch {
			case inParen:
				tt = stKeyword
			case nodeStart:
				tt, mods = stKeyword, smDefinition
				nodeStart = false
			case i+1 < len(toks) && toks[i+1].Type == token.TEquals:
				tt = stProperty
			default:
				tt = stString
			}
		default:
			continue
		}
		ti, ok := place(content, tok)
		if !ok {
			continue
		}
		ti.tokenType, ti.modifiers = tt, mods
		res = append(res, ti)
	}
	return res
}

// place computes the LSP position and length of tok. Tokens spanning
// lines are cut at the end of their first line.
func place(content string, tok *token.Token) (tokenInfo, bool) {
	start, end := tok.Pos.I, tok.Pos.I+tok.Len
	if start < 0 || end > len(content) || start >= end {
		return tokenInfo{}, false
	}
	text := content[start:end]
	if i, _ := nextNewline(text); i >= 0 {
		text = text[:i]
	}
	if text == "" {
		return tokenInfo{}, false
	}
	line, col := tok.Pos.LineCol()
	pos := lspPosition(content, line, col)
	return tokenInfo{
		line:   pos.Line,
		char:   pos.Character,
		length: uint32(len(utf16.Encode([]rune(text)))),
	}, true
}

// encodeTokens produces the relative encoding of LSP semantic tokens:
// five integers per token, with line and start character relative to
// the previous token.
func encodeTokens(infos []tokenInfo) []uint32 {
	data := make([]uint32, 0, 5*len(infos))
	var prevLine, prevChar uint32
	for _, ti := range infos {
		deltaLine := ti.line - prevLine
		deltaChar := ti.char
		if deltaLine == 0 {
			deltaChar = ti.char - prevChar
		}
		data = append(data, deltaLine, deltaChar, ti.length, ti.tokenType, ti.modifiers)
		prevLine, prevChar = ti.line, ti.char
	}
	return data
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{
		Data: encodeTokens(classify(doc.content, doc.kdl)),
	}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	r := params.Range
	var in []tokenInfo
	for _, ti := range classify(doc.content, doc.kdl) {
		if ti.line < r.Start.Line || ti.line > r.End.Line {
			continue
		}
		in = append(in, ti)
	}
	return &protocol.SemanticTokens{Data: encodeTokens(in)}, nil
}
