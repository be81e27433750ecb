// token.go -
// Copyright (C) 2020  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package tokenizer

import (
	"strconv"
	"strings"
)

// TokenType is used to enumerate different types of token
type TokenType int

// The different token types used by this package.
const (
	TokenText TokenType = iota
	TokenNumber
	TokenCommand
	TokenSymbol
	TokenPunct
	TokenLBrack
	TokenRBrack
	TokenLCurly
	TokenRCurly
	TokenLParen
	TokenRParen
	TokenLQuote
	TokenRQuote
	TokenLDQuote
	TokenRDQuote
	TokenVBar
	TokenSpace
	TokenSuper
	TokenSub
	TokenLGroup
	TokenRGroup
	TokenStartInlineMath
	TokenEndInlineMath
	TokenStartDisplayMath
	TokenEndDisplayMath
)

var typeNames = [...]string{
	TokenText:             "Text",
	TokenNumber:           "Number",
	TokenCommand:          "Command",
	TokenSymbol:           "Symbol",
	TokenPunct:            "Punct",
	TokenLBrack:           "LBrack",
	TokenRBrack:           "RBrack",
	TokenLCurly:           "LCurly",
	TokenRCurly:           "RCurly",
	TokenLParen:           "LParen",
	TokenRParen:           "RParen",
	TokenLQuote:           "LQuote",
	TokenRQuote:           "RQuote",
	TokenLDQuote:          "LDQuote",
	TokenRDQuote:          "RDQuote",
	TokenVBar:             "VBar",
	TokenSpace:            "Space",
	TokenSuper:            "Super",
	TokenSub:              "Sub",
	TokenLGroup:           "LGroup",
	TokenRGroup:           "RGroup",
	TokenStartInlineMath:  "StartInlineMath",
	TokenEndInlineMath:    "EndInlineMath",
	TokenStartDisplayMath: "StartDisplayMath",
	TokenEndDisplayMath:   "EndDisplayMath",
}

func (tp TokenType) String() string {
	if tp < 0 || int(tp) >= len(typeNames) {
		return "TokenType(" + strconv.Itoa(int(tp)) + ")"
	}
	return typeNames[tp]
}

// hasPayload reports whether tokens of this type carry user text,
// rather than a fixed glyph.
func (tp TokenType) hasPayload() bool {
	return tp == TokenText || tp == TokenNumber || tp == TokenCommand
}

// Token contains information about a single lexical unit in the
// document.
type Token struct {
	// Type describes which kind of token this is.
	Type TokenType

	// For TokenText and TokenNumber, this is the literal run of
	// characters.  For TokenCommand, this is the name of the command,
	// without the leading backslash.  For TokenSymbol and TokenPunct,
	// this is the single character.  For all other token types, Name
	// holds the source glyph the token was read from, e.g. "$" or "\\["
	// for TokenStartInlineMath, or the whitespace run for TokenSpace.
	Name string
}

func (tok *Token) String() string {
	if tok.Type.hasPayload() || tok.Type == TokenSymbol || tok.Type == TokenPunct {
		return tok.Type.String() + "(" + strconv.Quote(tok.Name) + ")"
	}
	return tok.Type.String()
}

// TokenList is the result of tokenizing a document.
type TokenList []*Token

func (toks TokenList) String() string {
	res := make([]string, len(toks))
	for i, tok := range toks {
		res[i] = tok.String()
	}
	return "[" + strings.Join(res, ", ") + "]"
}

// Source returns the text the tokens were read from.  Whitespace
// inside mathematics is discarded by the tokenizer and so cannot be
// recovered.
func (toks TokenList) Source() string {
	var res []string
	for _, tok := range toks {
		if tok.Type == TokenCommand {
			res = append(res, "\\"+tok.Name)
		} else {
			res = append(res, tok.Name)
		}
	}
	return strings.Join(res, "")
}
